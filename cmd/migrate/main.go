// migrate aplica el esquema embebido y crea el usuario administrador de plataforma.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
//	go run ./cmd/migrate create-admin --email admin@fertipos.in --password secreto123
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/jhoicas/fertipos-api/internal/application/auth"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/fertipos-api/pkg/config"
	"github.com/jhoicas/fertipos-api/pkg/logger"
)

// platformDomain tienda interna que agrupa a los administradores.
const platformDomain = "platform"

var (
	rootCmd = &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones de base de datos de fertipos-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runGoose(cmd.Context(), "up") },
	}
	downCmd = &cobra.Command{
		Use:   "down",
		Short: "Revierte la última migración aplicada",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runGoose(cmd.Context(), "down") },
	}
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de cada migración",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runGoose(cmd.Context(), "status") },
	}
	adminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Crea el usuario administrador de plataforma",
		RunE:  runCreateAdmin,
	}

	adminEmail    string
	adminPassword string
	adminName     string
)

func init() {
	adminCmd.Flags().StringVar(&adminEmail, "email", "", "email del administrador")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "contraseña (mínimo 8 caracteres)")
	adminCmd.Flags().StringVar(&adminName, "name", "Platform Admin", "nombre visible")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd, adminCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGoose(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	db, err := openDB(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Str("command", command).Msg("ejecutando migraciones")
	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func openDB(cfg config.DBConfig) (*sql.DB, error) {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	db, err := goose.OpenDBWithDriver("pgx", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("goose: abrir DB: %w", err)
	}
	return db, nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	if len(adminPassword) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	admin, err := auth.NewUser("", strings.ToLower(strings.TrimSpace(adminEmail)), adminPassword, adminName, access.RoleAdmin)
	if err != nil {
		return err
	}

	tx := postgres.NewTxRunner(pool)
	err = tx.RunOnboarding(ctx, func(tenants repository.TenantRepository, users repository.UserRepository) error {
		shop, err := tenants.GetByDomain(ctx, platformDomain)
		if err != nil {
			return err
		}
		if shop == nil {
			now := time.Now()
			shop = &entity.Tenant{
				ID:               uuid.New().String(),
				ShopName:         "Fertipos Platform",
				ShopDomain:       platformDomain,
				OwnerName:        adminName,
				Email:            adminEmail,
				SubscriptionPlan: entity.PlanPremium,
				IsActive:         true,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := tenants.Create(ctx, shop); err != nil {
				return err
			}
		}
		admin.TenantID = shop.ID
		return users.Create(ctx, admin)
	})
	if err != nil {
		return fmt.Errorf("crear administrador: %w", err)
	}
	log.Info().Str("email", admin.Email).Str("user_id", admin.ID).Msg("administrador creado")
	return nil
}
