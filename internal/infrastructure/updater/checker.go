package updater

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// State é o estado do verificador de versão.
type State int

const (
	Unchecked State = iota
	Checking
	UpToDate
	UpdateAvailable
	CheckFailed
)

func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checking:
		return "checking"
	case UpToDate:
		return "up-to-date"
	case UpdateAvailable:
		return "update-available"
	case CheckFailed:
		return "check-failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CheckResult é o resultado de uma verificação.
type CheckResult struct {
	State  State
	Local  string
	Remote *Descriptor
	Err    error
}

// UpdateDue é verdadeiro apenas quando o remoto é estritamente mais novo.
func (r CheckResult) UpdateDue() bool {
	return r.State == UpdateAvailable
}

// Checker busca o descritor remoto e compara com a versão local.
// CheckFailed não é terminal: Check pode ser chamado de novo.
type Checker struct {
	descriptorURL string
	fallback      string
	versionFile   string
	tempDir       string
	http          client

	mu    sync.Mutex
	state State
}

func newChecker(descriptorURL, versionFile, fallbackVersion string, http client) *Checker {
	return &Checker{
		descriptorURL: descriptorURL,
		fallback:      fallbackVersion,
		versionFile:   versionFile,
		http:          http,
		state:         Unchecked,
	}
}

func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checker) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	zap.L().Debug("updater: transição de estado", zap.Stringer("from", from), zap.Stringer("to", to))
}

// LocalVersion lê o version.json local; sem registro, usa a versão embarcada.
func (c *Checker) LocalVersion() string {
	rec, err := ReadRecord(c.versionFile)
	if err != nil {
		zap.L().Warn("⚠️ Registro de versão local ilegível, usando versão embarcada", zap.Error(err))
		return c.fallback
	}
	if rec == nil || rec.Version == "" {
		return c.fallback
	}
	return rec.Version
}

// Check executa Checking -> UpToDate | UpdateAvailable | CheckFailed.
func (c *Checker) Check(ctx context.Context) CheckResult {
	c.transition(Checking)
	local := c.LocalVersion()

	fail := func(err error) CheckResult {
		c.transition(CheckFailed)
		zap.L().Warn("⚠️ Não foi possível verificar atualizações, continuando com versão local",
			zap.String("local", local), zap.Error(err))
		return CheckResult{State: CheckFailed, Local: local, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	desc, err := c.fetchDescriptor()
	if err != nil {
		return fail(err)
	}

	newer, err := IsNewer(desc.Version, local)
	if err != nil {
		return fail(err)
	}

	if !newer {
		c.transition(UpToDate)
		zap.L().Info("✅ Sistema já está na versão mais recente", zap.String("local", local), zap.String("remote", desc.Version))
		return CheckResult{State: UpToDate, Local: local, Remote: desc}
	}

	c.transition(UpdateAvailable)
	zap.L().Info("🆕 Nova versão disponível",
		zap.String("local", local),
		zap.String("remote", desc.Version),
		zap.String("changelog", desc.Changelog))
	return CheckResult{State: UpdateAvailable, Local: local, Remote: desc}
}

// fetchDescriptor baixa o descritor para um arquivo temporário que é removido
// em qualquer caminho de saída.
func (c *Checker) fetchDescriptor() (*Descriptor, error) {
	body, err := c.http.get(c.descriptorURL, nil)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(c.tempDir, "versao-*.json")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(body); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return nil, err
	}

	var desc Descriptor
	if err := json.NewDecoder(tmp).Decode(&desc); err != nil {
		return nil, fmt.Errorf("descritor de versão inválido: %w", err)
	}
	if desc.Version == "" {
		return nil, fmt.Errorf("descritor de versão sem campo version")
	}
	return &desc, nil
}
