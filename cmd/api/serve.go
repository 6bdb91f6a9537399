package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kruetzmann2110/demandas/internal/application/usecases"
	"github.com/kruetzmann2110/demandas/internal/config"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/cache"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/database"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/localauth"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/updater"
	"github.com/kruetzmann2110/demandas/internal/interfaces/http/handlers"
	"github.com/kruetzmann2110/demandas/internal/interfaces/http/routes"
)

const (
	catalogTTL      = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o servidor HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Updater.CheckOnStart {
		checkOnStart(ctx, cfg.Updater)
	}

	db, err := database.SetupDatabase(cfg.Database)
	if err != nil {
		logger.Error("❌ Error setting up database", zap.Error(err))
		return err
	}
	defer func() { _ = database.Close(db) }()

	localUsers, err := localauth.Load(cfg.Auth.LocalAuthFile)
	if err != nil {
		logger.Warn("⚠️ Arquivo de autenticação local ignorado", zap.Error(err))
	}
	if localUsers.Len() == 0 {
		logger.Info("ℹ️ Sem usuários locais; permissões vêm só do banco e dos administradores de fallback")
	}

	useCases := usecases.NewUseCases(db, localUsers, cache.New(catalogTTL), usecases.Options{
		DefaultUser:        cfg.Auth.DefaultUser,
		AdminFallbackUsers: cfg.Auth.AdminFallbackUsers,
		LookupTimeout:      cfg.Auth.LookupTimeout,
		CatalogTTL:         catalogTTL,
	})

	app := routes.NewApp(handlers.NewHandlers(useCases, os.Getenv("USERNAME")), cfg.CORSAllowOrigins)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Server is running", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("🛑 Encerrando servidor")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// checkOnStart nunca impede a subida do servidor.
func checkOnStart(ctx context.Context, cfg config.UpdaterConfig) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	out, err := updater.New(cfg).Run(ctx)
	if err != nil {
		zap.L().Warn("⚠️ Atualização automática não aplicada, seguindo com a versão local",
			zap.String("state", out.Check.State.String()),
			zap.Error(err))
	}
}
