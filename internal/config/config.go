package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config é montada uma única vez na inicialização e injetada nos componentes.
type Config struct {
	Port             string
	CORSAllowOrigins string
	LogLevel         string
	LogFormat        string

	Database DatabaseConfig
	Auth     AuthConfig
	Updater  UpdaterConfig
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	Timezone        string
}

type AuthConfig struct {
	LocalAuthFile      string
	DefaultUser        string
	AdminFallbackUsers []string
	LookupTimeout      time.Duration
}

type UpdaterConfig struct {
	CheckOnStart   bool
	BaseURL        string
	APIURL         string
	InstallDir     string
	VersionFile    string
	CurrentVersion string
	Timeout        time.Duration
	Pause          time.Duration
	InsecureTLS    bool
	Files          []FileMapping
}

// FileMapping liga um caminho remoto (relativo a BaseURL) ao arquivo local (relativo a InstallDir).
type FileMapping struct {
	Remote string `yaml:"remote"`
	Local  string `yaml:"local"`
}

type manifest struct {
	Files []FileMapping `yaml:"files"`
}

// DefaultFiles é a lista usada quando nenhum manifesto é informado.
func DefaultFiles() []FileMapping {
	return []FileMapping{
		{Remote: "web/js/app.js", Local: "web/js/app.js"},
		{Remote: "web/css/style.css", Local: "web/css/style.css"},
		{Remote: "web/index.html", Local: "web/index.html"},
	}
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (Config, error) {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	cfg := Config{
		Port:             getenv("PORT", "3000"),
		CORSAllowOrigins: getenv("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		LogFormat:        getenv("LOG_FORMAT", "console"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
			URL:             os.Getenv("DATABASE_URL"),
			SQLitePath:      getenv("SQLITE_PATH", "demandas.db"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxIdleTime: getDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
			Timezone:        getenv("DB_TIMEZONE", "America/Sao_Paulo"),
		},
		Auth: AuthConfig{
			LocalAuthFile:      getenv("LOCAL_AUTH_FILE", "users-auth.json"),
			DefaultUser:        getenv("DEFAULT_USER", "G0040925"),
			AdminFallbackUsers: getList("ADMIN_FALLBACK_USERS", []string{"G0040925"}),
			LookupTimeout:      getDuration("LOOKUP_TIMEOUT", 10*time.Second),
		},
		Updater: UpdaterConfig{
			CheckOnStart:   getBool("UPDATE_CHECK_ON_START", true),
			BaseURL:        strings.TrimRight(getenv("UPDATE_BASE_URL", "https://raw.githubusercontent.com/kruetzmann2110/demandas/main/releases"), "/"),
			APIURL:         getenv("UPDATE_API_URL", "https://api.github.com/repos/kruetzmann2110/demandas"),
			InstallDir:     getenv("UPDATE_INSTALL_DIR", "."),
			VersionFile:    getenv("UPDATE_VERSION_FILE", "version.json"),
			CurrentVersion: getenv("APP_VERSION", "2.0.0"),
			Timeout:        getDuration("UPDATE_TIMEOUT", 30*time.Second),
			Pause:          getDuration("UPDATE_PAUSE", 500*time.Millisecond),
			InsecureTLS:    getBool("UPDATE_INSECURE_TLS", false),
			Files:          DefaultFiles(),
		},
	}

	if path := os.Getenv("UPDATE_MANIFEST"); path != "" {
		files, err := LoadManifest(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Updater.Files = files
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadManifest lê a lista de arquivos do atualizador a partir de um YAML.
func LoadManifest(path string) ([]FileMapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read update manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse update manifest: %w", err)
	}
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("update manifest %s lists no files", path)
	}
	for i, f := range m.Files {
		if f.Remote == "" {
			return nil, fmt.Errorf("update manifest entry %d: remote is required", i)
		}
		if f.Local == "" {
			m.Files[i].Local = f.Remote
		}
	}
	return m.Files, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, "postgresql":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is not defined in the environment")
		}
	case DriverSQLite, "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	b, err := strconv.ParseBool(getenv(key, ""))
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
