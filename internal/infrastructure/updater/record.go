package updater

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// Descriptor é o versao.json publicado no repositório remoto.
type Descriptor struct {
	Version   string `json:"version"`
	Changelog string `json:"changelog,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Record é o version.json local, reescrito a cada atualização aplicada.
type Record struct {
	Version    string    `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
	Changelog  string    `json:"changelog,omitempty"`
	Source     string    `json:"source"`
	Repository string    `json:"repository"`
}

// ReadRecord devolve (nil, nil) quando ainda não há registro local.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("registro de versão inválido em %s: %w", path, err)
	}
	return &rec, nil
}

// WriteRecord grava em arquivo temporário no mesmo diretório e renomeia,
// de modo que o registro antigo só é substituído por um arquivo completo.
func WriteRecord(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".version-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
