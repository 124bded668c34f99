package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"estatehub/internal/app/bootstrap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := bootstrap.BuildAPI(ctx)
			if err != nil {
				return fmt.Errorf("bootstrap api: %w", err)
			}
			defer func() { _ = app.Close() }()
			return app.Run(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes for the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap.RunMigrations(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Storage is up to date.")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register an admin account",
		Long:  "Registers an admin account in the configured storage. The usual email, phone and password rules apply.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := bootstrap.AdminInput{}
			input.FullName, _ = cmd.Flags().GetString("name")
			input.Email, _ = cmd.Flags().GetString("email")
			input.Phone, _ = cmd.Flags().GetString("phone")
			input.Password, _ = cmd.Flags().GetString("password")
			if strings.TrimSpace(input.Email) == "" || input.Password == "" {
				return errors.New("--email and --password are required")
			}

			userID, err := bootstrap.SeedAdmin(commandContext(cmd), input)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", input.Email, userID)
			return nil
		},
	}
	cmd.Flags().String("name", "Administrator", "full name")
	cmd.Flags().String("email", "", "login email")
	cmd.Flags().String("phone", "", "contact phone")
	cmd.Flags().String("password", "", "login password")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
