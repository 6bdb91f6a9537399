package localauth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kruetzmann2110/demandas/internal/domain/entities"
	"go.uber.org/zap"
)

// Entry é um usuário do arquivo users-auth.json.
type Entry struct {
	Name  string        `json:"name"`
	Role  entities.Role `json:"role"`
	Email string        `json:"email,omitempty"`
	Tema  string        `json:"tema,omitempty"`
}

type file struct {
	Users    map[string]Entry       `json:"users"`
	Themes   map[string]interface{} `json:"themes"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Store é carregado uma vez na inicialização e só é lido depois disso.
type Store struct {
	users  map[string]Entry
	themes int
}

// Empty é o store usado quando o arquivo não existe ou não pôde ser lido.
func Empty() *Store {
	return &Store{users: map[string]Entry{}}
}

// Load lê o arquivo de autenticação local. Arquivo ausente não é erro;
// arquivo inválido devolve o store vazio junto com o erro.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		zap.L().Warn("⚠️ Arquivo de autenticação local não encontrado", zap.String("path", path))
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("erro ao ler arquivo de autenticação: %w", err)
	}

	var parsed file
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Empty(), fmt.Errorf("erro ao interpretar arquivo de autenticação: %w", err)
	}

	store := &Store{users: make(map[string]Entry, len(parsed.Users)), themes: len(parsed.Themes)}
	for key, entry := range parsed.Users {
		if entry.Name == "" {
			entry.Name = key
		}
		store.users[strings.ToLower(strings.TrimSpace(key))] = entry
	}

	zap.L().Info("✅ Arquivo de autenticação carregado",
		zap.Int("usuarios", store.Len()),
		zap.Int("temas", store.themes))
	return store, nil
}

// FindUser busca pela chave sem diferenciar maiúsculas.
func (s *Store) FindUser(name string) (entities.User, bool) {
	entry, ok := s.users[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return entities.User{}, false
	}
	return entities.User{Name: entry.Name, Role: entry.Role}, true
}

// Len é o número de usuários válidos carregados.
func (s *Store) Len() int {
	return len(s.users)
}
