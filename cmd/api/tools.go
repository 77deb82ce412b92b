package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"entityapi/internal/auth"
	"entityapi/internal/config"
	"entityapi/internal/database"
	"entityapi/internal/database/migration"
	"entityapi/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		log := logger.New(cfg.LogLevel, time.Local)
		defer func() { _ = log.Sync() }()

		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return errors.Wrap(err, "connect database")
		}
		defer db.Close()

		return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
	},
}

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for --subject using the configured JWT secret.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		svc, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		token, exp, err := svc.Generate(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash suitable for AUTH_PASSWORD_HASH.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "token subject (required)")
	_ = tokenCmd.MarkFlagRequired("subject")
}
