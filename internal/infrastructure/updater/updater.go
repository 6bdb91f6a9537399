package updater

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kruetzmann2110/demandas/internal/config"
	"go.uber.org/zap"
)

const (
	descriptorName = "versao.json"
	recordSource   = "GitHub"
)

// Outcome resume uma execução completa de verificação + sincronização.
type Outcome struct {
	Check   CheckResult
	Sync    *SyncReport
	Applied bool
}

// Updater liga o Checker ao Synchronizer: com atualização disponível, baixa
// e aplica os arquivos e só então grava o novo version.json.
type Updater struct {
	cfg     config.UpdaterConfig
	checker *Checker
	sync    *Synchronizer
	http    client
	now     func() time.Time
}

func New(cfg config.UpdaterConfig) *Updater {
	http := client{timeout: cfg.Timeout, insecure: cfg.InsecureTLS}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Updater{
		cfg:     cfg,
		checker: newChecker(baseURL+"/"+descriptorName, versionFilePath(cfg), cfg.CurrentVersion, http),
		sync:    newSynchronizer(baseURL, cfg.InstallDir, cfg.Pause, http),
		http:    http,
		now:     time.Now,
	}
}

// Run nunca impede a inicialização: falha de rede ou download incompleto
// são reportados em Outcome/erro e o sistema segue com a versão local.
func (u *Updater) Run(ctx context.Context) (Outcome, error) {
	check := u.checker.Check(ctx)
	outcome := Outcome{Check: check}

	if !check.UpdateDue() {
		return outcome, check.Err
	}

	report, err := u.sync.Sync(ctx, u.cfg.Files)
	outcome.Sync = &report
	if err != nil {
		for _, f := range report.Failed() {
			zap.L().Warn("❌ Arquivo não atualizado", zap.String("arquivo", f.Remote), zap.Error(f.Err))
		}
		return outcome, err
	}

	rec := Record{
		Version:    check.Remote.Version,
		UpdatedAt:  u.now().UTC(),
		Changelog:  check.Remote.Changelog,
		Source:     recordSource,
		Repository: repositoryName(u.cfg),
	}
	if err := WriteRecord(versionFilePath(u.cfg), rec); err != nil {
		return outcome, fmt.Errorf("arquivos aplicados mas registro de versão não gravado: %w", err)
	}

	outcome.Applied = true
	zap.L().Info("🎉 Sistema atualizado", zap.String("version", rec.Version), zap.String("repository", rec.Repository))
	return outcome, nil
}

// Probe é o resultado de uma sonda de conectividade.
type Probe struct {
	Name  string
	URL   string
	Err   error
	Bytes int
}

// TestConnectivity sonda a API do repositório e o descritor de versão.
func (u *Updater) TestConnectivity(ctx context.Context) ([]Probe, error) {
	targets := []Probe{
		{Name: "repository-api", URL: u.cfg.APIURL},
		{Name: "version-descriptor", URL: strings.TrimRight(u.cfg.BaseURL, "/") + "/" + descriptorName},
	}

	var errs []error
	for i := range targets {
		if err := ctx.Err(); err != nil {
			targets[i].Err = err
			errs = append(errs, err)
			continue
		}
		if targets[i].URL == "" {
			continue
		}
		body, err := u.http.get(targets[i].URL, map[string]string{"Accept": "application/vnd.github.v3+json"})
		targets[i].Bytes = len(body)
		if err != nil {
			targets[i].Err = err
			errs = append(errs, fmt.Errorf("%s: %w", targets[i].Name, err))
		}
	}
	return targets, errors.Join(errs...)
}

func versionFilePath(cfg config.UpdaterConfig) string {
	if filepath.IsAbs(cfg.VersionFile) {
		return cfg.VersionFile
	}
	return filepath.Join(cfg.InstallDir, cfg.VersionFile)
}

// https://api.github.com/repos/owner/repo -> owner/repo
func repositoryName(cfg config.UpdaterConfig) string {
	if i := strings.Index(cfg.APIURL, "/repos/"); i >= 0 {
		return strings.Trim(cfg.APIURL[i+len("/repos/"):], "/")
	}
	return cfg.BaseURL
}
