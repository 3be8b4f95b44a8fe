package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/focusboard/internal/adapters/repository"
	"github.com/taskmaster/focusboard/internal/application/services"
	"github.com/taskmaster/focusboard/internal/infrastructure/config"
	"github.com/taskmaster/focusboard/internal/infrastructure/database"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/infrastructure/server"
	"github.com/taskmaster/focusboard/internal/ports"
)

// Set at build time with -ldflags "-X ...commands.Version=..."
var (
	Version   = "dev"
	GitCommit = "development"
	BuildDate = "unknown"
)

const shutdownTimeout = 15 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Focusboard API server",
		Long:  "Start the Focusboard API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *database.Migrator) error {
				applied, err := mg.Up()
				if err != nil {
					return err
				}
				report(cmd, "up", applied)
				return nil
			})
		},
	})

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withMigrator(func(mg *database.Migrator) error {
				applied, err := mg.Down(steps)
				if err != nil {
					return err
				}
				report(cmd, "down", applied)
				return nil
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 rolls back everything)")
	migrateCmd.AddCommand(downCmd)

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(mg *database.Migrator) error {
				version, dirty, err := mg.Version()
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the system",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new password user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			req := ports.RegisterRequest{Email: email, Password: password}
			if name != "" {
				req.Name = &name
			}

			return withApp(func(cfg *config.Config, db *database.DB, log *logger.Logger) error {
				userService := services.NewUserService(repository.NewUserRepository(db.DB), services.NewValidator(), log)
				user, err := userService.CreateUser(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "User created successfully:\n")
				fmt.Fprintf(out, "  ID: %s\n", user.ID)
				fmt.Fprintf(out, "  Email: %s\n", user.Email)
				if user.Name != nil {
					fmt.Fprintf(out, "  Name: %s\n", *user.Name)
				}
				return nil
			})
		},
	}

	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("name", "", "Display name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewTokensCommand creates the refresh token maintenance command
func NewTokensCommand() *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Refresh token maintenance",
	}

	tokensCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired and revoked refresh tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(cfg *config.Config, db *database.DB, log *logger.Logger) error {
				removed, err := repository.NewAuthRepository(db.DB).CleanupExpiredTokens(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d refresh tokens\n", removed)
				return nil
			})
		},
	})

	return tokensCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Focusboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Focusboard %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Sync()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database); err != nil {
			return err
		}
		appLogger.Infow("Database migrations applied")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	deps, err := server.BuildDependencies(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer deps.Close()

	srv, err := server.New(cfg, db, appLogger, deps)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infow("Starting Focusboard API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
		)
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Infow("Server stopped")
	return nil
}

func withMigrator(fn func(mg *database.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mg, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(mg)
}

func withApp(fn func(cfg *config.Config, db *database.DB, log *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(cfg, db, appLogger)
}

func report(cmd *cobra.Command, direction string, applied bool) {
	if !applied {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
}
