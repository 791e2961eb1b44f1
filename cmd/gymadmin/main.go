package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/gymapi/internal/config"
	"github.com/2beens/gymapi/internal/db"
	"github.com/2beens/gymapi/internal/users"
	"github.com/2beens/gymapi/pkg"
)

// gym admin cli: admins cannot register through the API, they are seeded from here

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gymadmin",
		Short:         "Gym API administration tasks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(seedAdminCmd())
	root.AddCommand(hashPasswordCmd())
	return root
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := pkg.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var (
		env        string
		configPath string
		email      string
		name       string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin user if it does not exist yet",
		Long: `Create the admin user if it does not exist yet.
The password can be given with --password or the GYM_ADMIN_PASSWORD env var.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("GYM_ADMIN_PASSWORD")
			}

			cfg, err := config.Load(env, configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
				DBHost:     cfg.PostgresHost,
				DBPort:     cfg.PostgresPort,
				DBUser:     cfg.PostgresUser,
				DBPassword: os.Getenv("GYM_DB_PASS"),
				DBName:     cfg.PostgresDBName,
			})
			if err != nil {
				return fmt.Errorf("new db pool: %w", err)
			}
			defer dbPool.Close()

			return seedAdmin(ctx, users.NewRepo(dbPool), email, name, password, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	cmd.Flags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "Administrador", "admin name")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

type adminStore interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	Add(ctx context.Context, user users.User) (*users.User, error)
}

func seedAdmin(ctx context.Context, store adminStore, email, name, password string, out io.Writer) error {
	email = pkg.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("valid admin email is required")
	}
	if len(password) < 8 {
		return errors.New("admin password must have at least 8 characters")
	}
	if len(password) > pkg.MaxPasswordBytes {
		return pkg.ErrPasswordTooLong
	}

	existing, err := store.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != users.RoleAdmin {
			return fmt.Errorf("user %s exists with role [%s]", email, existing.Role)
		}
		_, err = fmt.Fprintf(out, "admin %s already exists (id %d)\n", email, existing.ID)
		return err
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return fmt.Errorf("get user: %w", err)
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin, err := store.Add(ctx, users.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("add admin: %w", err)
	}

	log.Debugf("admin user %d created", admin.ID)
	_, err = fmt.Fprintf(out, "admin %s created (id %d)\n", email, admin.ID)
	return err
}
