// Command devtoken prints a bearer token accepted by a server running in
// local identity mode. It reads IDENTITY_SIGN_KEY and IDENTITY_ISSUER from
// the environment or a .env file.
//
//	devtoken -uid officer-1 -email officer@example.com -ttl 8h
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var (
		identity models.Identity
		ttl      time.Duration
	)

	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	fs.StringVar(&identity.UID, "uid", "", "user id (token subject)")
	fs.StringVar(&identity.Email, "email", "", "email claim")
	fs.StringVar(&identity.Name, "name", "", "display name claim")
	fs.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if identity.UID == "" || identity.Email == "" {
		return errors.New("-uid and -email are required")
	}

	cfg, err := config.GetLocalIdentityConfig()
	if err != nil {
		return err
	}

	token, err := utils.GenerateIdentityToken(cfg.Issuer, identity, ttl, cfg.SignKey)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
