// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/lumio.yaml`.
  3. Environment variables prefixed `LUMIO_`, where `__` maps to “.”
     (e.g., `LUMIO_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  Values prefixed `vault:` are
resolved through the supplied secret resolver before validation, so the
cached Config only ever holds plain strings.

Notes
-----
  - `rootDir()` climbs the cwd tree until it finds `conf/lumio.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  - Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const vaultPrefix = "vault:"

var current atomic.Pointer[Config]

// SecretResolver resolves a `vault:mount/path#key` reference to its plain
// value.  internal/vault provides the production implementation.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves LUMIO_ROOT or climbs directories until conf/lumio.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("LUMIO_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "lumio.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches the Config.  secrets may be nil when no `vault:` references exist.
func Load(ctx context.Context, secrets SecretResolver) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "lumio.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// Env overrides: LUMIO_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("LUMIO_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "LUMIO_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = filepath.Join(root, "data")
	}

	if err := resolveSecrets(ctx, &cfg, secrets); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"data_dir", cfg.Paths.DataDir,
	)
	return &cfg, nil
}

// resolveSecrets replaces every `vault:`-prefixed value in place.  Only the
// fields that may legitimately hold secrets are inspected.
func resolveSecrets(ctx context.Context, cfg *Config, secrets SecretResolver) error {
	refs := []*string{
		&cfg.Admin.PasswordHash,
		&cfg.Security.CSRFKey,
		&cfg.Security.SessionKey,
		&cfg.Archive.DSN,
		&cfg.SMTP.Password,
	}
	for _, field := range refs {
		if !strings.HasPrefix(*field, vaultPrefix) {
			continue
		}
		if secrets == nil {
			return fmt.Errorf("config: %q requires a secret resolver", *field)
		}
		plain, err := secrets.Resolve(ctx, strings.TrimPrefix(*field, vaultPrefix))
		if err != nil {
			return err
		}
		*field = plain
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }
