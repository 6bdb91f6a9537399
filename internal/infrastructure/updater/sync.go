package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kruetzmann2110/demandas/internal/config"
	"go.uber.org/zap"
)

// ErrIncomplete indica que algum download falhou e nada foi substituído.
var ErrIncomplete = errors.New("download incompleto; nenhum arquivo foi substituído")

// FileResult registra o desfecho de um arquivo.
type FileResult struct {
	Remote     string
	Local      string
	Size       int
	BackupPath string
	Err        error
}

// SyncReport lista os arquivos na ordem em que foram processados.
type SyncReport struct {
	Files     []FileResult
	Committed bool
}

func (r SyncReport) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Synchronizer baixa os arquivos em sequência para uma área de staging e só
// substitui os arquivos locais quando todos os downloads terminaram bem.
type Synchronizer struct {
	baseURL    string
	installDir string
	pause      time.Duration
	http       client
	now        func() time.Time
}

func newSynchronizer(baseURL, installDir string, pause time.Duration, http client) *Synchronizer {
	return &Synchronizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		installDir: installDir,
		pause:      pause,
		http:       http,
		now:        time.Now,
	}
}

type staged struct {
	index  int
	target string
	path   string
}

// Sync processa files estritamente em sequência. Falhas de download são
// registradas e o processamento continua; com qualquer falha a área de
// staging é descartada e ErrIncomplete é devolvido.
func (s *Synchronizer) Sync(ctx context.Context, files []config.FileMapping) (SyncReport, error) {
	report := SyncReport{Files: make([]FileResult, len(files))}

	stagingDir := filepath.Join(s.installDir, ".update-staging-"+uuid.NewString())
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return report, fmt.Errorf("não foi possível criar área de staging: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	var ready []staged
	for i, f := range files {
		report.Files[i] = FileResult{Remote: f.Remote, Local: f.Local}

		if err := ctx.Err(); err != nil {
			report.Files[i].Err = err
			continue
		}

		if i > 0 && s.pause > 0 {
			select {
			case <-time.After(s.pause):
			case <-ctx.Done():
				report.Files[i].Err = ctx.Err()
				continue
			}
		}

		target, err := s.localPath(f.Local)
		if err != nil {
			report.Files[i].Err = err
			continue
		}

		body, err := s.http.get(s.baseURL+"/"+strings.TrimLeft(f.Remote, "/"), nil)
		if err != nil {
			zap.L().Warn("❌ Falha no download", zap.String("arquivo", f.Remote), zap.Error(err))
			report.Files[i].Err = err
			continue
		}

		path := filepath.Join(stagingDir, strconv.Itoa(i))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			report.Files[i].Err = err
			continue
		}

		report.Files[i].Size = len(body)
		ready = append(ready, staged{index: i, target: target, path: path})
		zap.L().Info("📥 Baixado", zap.String("arquivo", f.Remote), zap.Int("bytes", len(body)))
	}

	if len(ready) != len(files) {
		return report, ErrIncomplete
	}

	if err := s.commit(ready, &report); err != nil {
		return report, err
	}
	report.Committed = true
	return report, nil
}

type swapped struct {
	target string
	backup string
}

// commit faz backup de cada arquivo existente e move o arquivo novo para o
// lugar. Se uma troca falhar, as já feitas são desfeitas.
func (s *Synchronizer) commit(ready []staged, report *SyncReport) error {
	var done []swapped

	for _, item := range ready {
		backup, err := s.swap(item)
		if err != nil {
			report.Files[item.index].Err = err
			if rbErr := rollback(done); rbErr != nil {
				zap.L().Error("❌ Falha ao desfazer atualização parcial", zap.Error(rbErr))
				return fmt.Errorf("falha ao aplicar %s: %w (rollback: %v)", item.target, err, rbErr)
			}
			return fmt.Errorf("falha ao aplicar %s: %w", item.target, err)
		}
		report.Files[item.index].BackupPath = backup
		done = append(done, swapped{target: item.target, backup: backup})
	}

	for _, d := range done {
		zap.L().Info("✅ Arquivo atualizado", zap.String("arquivo", d.target), zap.String("backup", d.backup))
	}
	return nil
}

func (s *Synchronizer) swap(item staged) (string, error) {
	if err := os.MkdirAll(filepath.Dir(item.target), 0o755); err != nil {
		return "", err
	}

	backup := ""
	if _, err := os.Stat(item.target); err == nil {
		backup = item.target + ".backup-" + strconv.FormatInt(s.now().UnixMilli(), 10)
		if err := copyFile(item.target, backup); err != nil {
			return "", fmt.Errorf("backup: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.Rename(item.path, item.target); err != nil {
		return backup, err
	}
	return backup, nil
}

// rollback restaura os backups em ordem inversa; arquivos que não existiam
// antes são removidos.
func rollback(done []swapped) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		d := done[i]
		if d.backup == "" {
			if err := os.Remove(d.target); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if err := copyFile(d.backup, d.target); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// localPath impede que uma entrada do manifesto escape de installDir.
func (s *Synchronizer) localPath(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", fmt.Errorf("caminho local inválido %q", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("caminho local fora do diretório de instalação %q", rel)
	}
	return filepath.Join(s.installDir, clean), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
