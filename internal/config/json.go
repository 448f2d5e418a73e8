package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
// Durations are written as strings ("30s", "15m").
type StructuredJSONConfig struct {
	App struct {
		Env         string `json:"env"`
		FrontendURL string `json:"frontend_url"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxBodyBytes   int64    `json:"max_body_bytes"`
		AllowedOrigins []string `json:"allowed_origins"`
		TrustedProxies []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	Identity struct {
		Mode      string `json:"mode"`
		ProjectID string `json:"project_id"`
		JWKSURL   string `json:"jwks_url"`
		SignKey   string `json:"sign_key"`
		Issuer    string `json:"issuer"`
	} `json:"identity,omitempty"`

	LLM struct {
		Provider string   `json:"provider"`
		APIKey   string   `json:"api_key"`
		BaseURL  string   `json:"base_url"`
		Model    string   `json:"model"`
		Timeout  Duration `json:"timeout"`
	} `json:"llm,omitempty"`

	Billing struct {
		SecretKey     string `json:"secret_key"`
		WebhookSecret string `json:"webhook_secret"`
		PriceID       string `json:"price_id"`
		ProPriceID    string `json:"pro_price_id"`
		SuccessURL    string `json:"success_url"`
		CancelURL     string `json:"cancel_url"`
		ReturnURL     string `json:"return_url"`
	} `json:"billing,omitempty"`

	RateLimit struct {
		Backend       string     `json:"backend"`
		RedisAddress  string     `json:"redis_address"`
		RedisPassword string     `json:"redis_password"`
		RedisPrefix   string     `json:"redis_prefix"`
		General       jsonWindow `json:"general"`
		AI            jsonWindow `json:"ai"`
		Auth          jsonWindow `json:"auth"`
	} `json:"rate_limit,omitempty"`

	Workers struct {
		LimiterSweepInterval Duration `json:"limiter_sweep_interval"`
	} `json:"workers,omitempty"`
}

type jsonWindow struct {
	Limit  int      `json:"limit"`
	Period Duration `json:"period"`
}

func (w jsonWindow) window() Window {
	return Window{Limit: w.Limit, Period: time.Duration(w.Period)}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:         jsonCfg.App.Env,
			FrontendURL: jsonCfg.App.FrontendURL,
			Version:     jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxBodyBytes:   jsonCfg.Server.MaxBodyBytes,
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
			TrustedProxies: jsonCfg.Server.TrustedProxies,
		},
		Identity: Identity{
			Mode:      jsonCfg.Identity.Mode,
			ProjectID: jsonCfg.Identity.ProjectID,
			JWKSURL:   jsonCfg.Identity.JWKSURL,
			SignKey:   jsonCfg.Identity.SignKey,
			Issuer:    jsonCfg.Identity.Issuer,
		},
		LLM: LLM{
			Provider: jsonCfg.LLM.Provider,
			APIKey:   jsonCfg.LLM.APIKey,
			BaseURL:  jsonCfg.LLM.BaseURL,
			Model:    jsonCfg.LLM.Model,
			Timeout:  time.Duration(jsonCfg.LLM.Timeout),
		},
		Billing: Billing{
			SecretKey:     jsonCfg.Billing.SecretKey,
			WebhookSecret: jsonCfg.Billing.WebhookSecret,
			PriceID:       jsonCfg.Billing.PriceID,
			ProPriceID:    jsonCfg.Billing.ProPriceID,
			SuccessURL:    jsonCfg.Billing.SuccessURL,
			CancelURL:     jsonCfg.Billing.CancelURL,
			ReturnURL:     jsonCfg.Billing.ReturnURL,
		},
		RateLimit: RateLimit{
			Backend:       jsonCfg.RateLimit.Backend,
			RedisAddress:  jsonCfg.RateLimit.RedisAddress,
			RedisPassword: jsonCfg.RateLimit.RedisPassword,
			RedisPrefix:   jsonCfg.RateLimit.RedisPrefix,
			General:       jsonCfg.RateLimit.General.window(),
			AI:            jsonCfg.RateLimit.AI.window(),
			Auth:          jsonCfg.RateLimit.Auth.window(),
		},
		Workers: Workers{
			LimiterSweepInterval: time.Duration(jsonCfg.Workers.LimiterSweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
