package main

import (
	"errors"
	"fmt"
	"strings"

	"roomledger/internal/models"
	"roomledger/internal/repositories"
	"roomledger/internal/services"
	"roomledger/pkg/database"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, pool, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := database.Migrate(cmd.Context(), pool, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", len(applied))
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed NAME...",
		Short: "Create rooms that do not exist yet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, pool, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := repositories.NewStore(pool)
			created, err := services.NewRoomService(store.Rooms, store.Tenants, logger).Seed(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d room(s) created\n", created, len(args))
			return nil
		},
	}
}

func userCmd(configPath *string) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var email, name string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}

			_, _, pool, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer pool.Close()

			user := &models.User{ID: uuid.New(), Email: email}
			if n := strings.TrimSpace(name); n != "" {
				user.Name = &n
			}
			if err := repositories.NewStore(pool).Users.Create(cmd.Context(), user); err != nil {
				if errors.Is(err, repositories.ErrUniqueViolation) {
					return fmt.Errorf("user %s already exists", email)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s created\n", user.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&email, "email", "", "email address")
	addCmd.Flags().StringVar(&name, "name", "", "display name")

	userCmd.AddCommand(addCmd)
	return userCmd
}
