// Command admintoken prints an admin bearer token signed with the configured
// api.jwt_signing_key.
package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/pflag"

	"github.com/vietanh2810/eloquence-api/internal/config"
	"github.com/vietanh2810/eloquence-api/internal/pkg/jwthelper"
)

func main() {
	configPath := pflag.StringP("config", "c", "./cmd/app/config.yml", "path of the API config file")
	subject := pflag.StringP("subject", "s", "admin", "token subject")
	ttl := pflag.Duration("ttl", 12*time.Hour, "token lifetime")
	pflag.Parse()

	if err := run(*configPath, *subject, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, subject string, ttl time.Duration) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	token, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), subject, jwthelper.RoleAdmin, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token -> %w", err)
	}

	fmt.Println(token)

	return nil
}
