// Command create-admin provisions an administrator account. Admins cannot be
// created over HTTP.
//
//	create-admin -email root@example.com -password s3cret
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/service"
	"github.com/seon98/Trip-Backend/internal/infrastructure/config"
	"github.com/seon98/Trip-Backend/internal/infrastructure/db/mysql"
	"github.com/seon98/Trip-Backend/internal/pkg/password"
	"github.com/seon98/Trip-Backend/pkg/logger"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	pw := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *pw == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *email, *pw); err != nil {
		fmt.Fprintln(os.Stderr, "create-admin:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, email, pw string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "create-admin"})

	if cfg.MySQL.DSN == "" {
		return errors.New("MYSQL_DSN is required; the in-memory store does not outlive this command")
	}
	db, err := mysql.Open(ctx, mysql.Config{DSN: cfg.MySQL.DSN, MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()
	if err := mysql.EnsureSchema(ctx, db); err != nil {
		return err
	}

	tokens, err := service.NewTokenService(service.TokenConfig{Secret: cfg.Auth.SecretKey, Algorithm: cfg.Auth.Algorithm})
	if err != nil {
		return err
	}
	auth := service.NewAuthService(mysql.NewUserRepository(db), password.New(password.DefaultParams), tokens, log)

	user, err := auth.RegisterAdmin(ctx, email, pw)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return fmt.Errorf("user %s already exists", domain.NormalizeEmail(email))
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Errorf("%q is not a valid email address", email)
	case err != nil:
		return err
	}

	log.Info().Int64("id", user.ID).Str("email", user.Email).Msg("admin user created")
	return nil
}
