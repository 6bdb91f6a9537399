package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kruetzmann2110/demandas/internal/infrastructure/updater"
)

var checkUpdatesCmd = &cobra.Command{
	Use:   "check-updates",
	Short: "Verifica e aplica atualizações publicadas no repositório",
	RunE:  runCheckUpdates,
}

var testConnectivityCmd = &cobra.Command{
	Use:   "test-connectivity",
	Short: "Testa o acesso à API do repositório e ao descritor de versão",
	RunE:  runTestConnectivity,
}

func runCheckUpdates(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out, err := updater.New(cfg.Updater).Run(cmd.Context())

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Versão local: %s\n", out.Check.Local)
	if out.Check.Remote != nil {
		fmt.Fprintf(w, "Versão remota: %s\n", out.Check.Remote.Version)
	}
	fmt.Fprintf(w, "Estado: %s\n", out.Check.State)

	if out.Sync != nil {
		for _, f := range out.Sync.Files {
			status := "✅"
			if f.Err != nil {
				status = "❌ " + f.Err.Error()
			}
			fmt.Fprintf(w, "  %s -> %s %s\n", f.Remote, f.Local, status)
		}
	}
	if out.Applied {
		fmt.Fprintln(w, "🎉 Atualização aplicada")
	}
	return err
}

func runTestConnectivity(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	probes, err := updater.New(cfg.Updater).TestConnectivity(cmd.Context())

	w := cmd.OutOrStdout()
	for _, p := range probes {
		if p.Err != nil {
			fmt.Fprintf(w, "❌ %s (%s): %v\n", p.Name, p.URL, p.Err)
			continue
		}
		fmt.Fprintf(w, "✅ %s (%s): %d bytes\n", p.Name, p.URL, p.Bytes)
	}
	return err
}
