package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kruetzmann2110/demandas/internal/config"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/logging"
)

var rootCmd = &cobra.Command{
	Use:   "demandas",
	Short: "Sistema de Demandas",
	Long: `API do Sistema de Demandas: cadastro e acompanhamento de demandas,
timeline de eventos, permissões por papel e atualização automática a partir do GitHub.

Sem subcomando, inicia o servidor HTTP (equivalente a "demandas serve").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, checkUpdatesCmd, testConnectivityCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap carrega a configuração e instala o logger global do processo.
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("❌ Erro de configuração: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
