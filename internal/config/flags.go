package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

const flagSetName = "report-buddy-server"

// NetAddress is a host:port flag value. An empty host listens on all
// interfaces.
type NetAddress struct {
	Host string
	Port int
}

// String returns host:port, or "" when the address is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. IPv6 hosts must be bracketed.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer up to 65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP-address provided: %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// listFlag collects comma-separated values. Repeating the flag appends.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

// ParseFlags parses command-line arguments (without the program name).
//
// Flags:
//
//	-a                  HTTP address host:port
//	-grpc-address       gRPC health address host:port
//	-d                  database DSN
//	-c, -config         JSON config file path
//	-env                runtime environment
//	-request-timeout    per-request timeout, e.g. 30s
//	-allowed-origins    comma-separated CORS origins
//	-trusted-proxies    comma-separated proxy IPs or CIDRs
//	-identity-mode      firebase or local
//	-llm-provider       openai, compat or gemini
//	-llm-model          model name
//	-llm-base-url       provider endpoint override
//	-rate-limit-backend memory or redis
//	-redis-address      redis host:port for the redis backend
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		httpAddress, grpcAddress NetAddress
		origins, proxies         listFlag
		cfg                      StructuredConfig
	)

	fs := flag.NewFlagSet(flagSetName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&httpAddress, "a", "HTTP address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC health address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.Env, "env", "", "Runtime environment (development, production)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Var(&origins, "allowed-origins", "Comma-separated CORS origins")
	fs.Var(&proxies, "trusted-proxies", "Comma-separated trusted proxy IPs or CIDRs")
	fs.StringVar(&cfg.Identity.Mode, "identity-mode", "", "Token verification mode (firebase, local)")
	fs.StringVar(&cfg.LLM.Provider, "llm-provider", "", "LLM provider (openai, compat, gemini)")
	fs.StringVar(&cfg.LLM.Model, "llm-model", "", "LLM model name")
	fs.StringVar(&cfg.LLM.BaseURL, "llm-base-url", "", "LLM endpoint override")
	fs.StringVar(&cfg.RateLimit.Backend, "rate-limit-backend", "", "Rate limiter backend (memory, redis)")
	fs.StringVar(&cfg.RateLimit.RedisAddress, "redis-address", "", "Redis address for the redis limiter")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	cfg.Server.AllowedOrigins = origins
	cfg.Server.TrustedProxies = proxies

	return &cfg, nil
}
