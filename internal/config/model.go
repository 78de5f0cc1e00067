// internal/config/model.go
//
// Typed configuration model for the Lumio web engine.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                         – dotenv values,
//   - `conf/lumio.yaml`                       – primary static file,
//   - `LUMIO_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling, so downstream code only
// ever sees plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml`
//     tags unless configured otherwise.
//   - The `Paths.Root` field is filled at runtime; YAML must not set it.
package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site carries deployment-level identity used as a last-resort fallback when
// the content store has no SiteSettings yet.
type Site struct {
	Name string `koanf:"name" validate:"required"`
}

//
// Admin section
//

// Admin configures the single editor account.  PasswordHash is a bcrypt hash;
// store the secret portion in Vault and reference it as `vault:path#key`.
type Admin struct {
	Email        string `koanf:"email"         validate:"required,email"`
	PasswordHash string `koanf:"password_hash" validate:"required"`
}

//
// Security section
//

// Security holds the HMAC keys for CSRF tokens and session cookies.  Both
// accept `vault:` references.  Empty keys fall back to ephemeral random keys
// generated at boot, which invalidate sessions on restart.
type Security struct {
	CSRFKey    string `koanf:"csrf_key"`
	SessionKey string `koanf:"session_key"`
}

//
// Archive section
//

// Archive configures the optional MySQL sink for accepted form submissions.
// An empty DSN disables the sink; the JSON snapshot remains the system of
// record either way.
type Archive struct {
	DSN string `koanf:"dsn"`
}

//
// SMTP section
//

// SMTP configures outbound notification mail for new enquiries.  An empty
// host disables sending and the mailer degrades to log-only.
type SMTP struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	NotifyTo string `koanf:"notify_to"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind GeoLite2-City database used to tag
// access logs with a country code.  Empty path disables the lookup.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime.  The loader discovers Root (repo root or
// LUMIO_ROOT override); DataDir defaults to `<root>/data` and holds the
// content snapshot plus uploaded media.
type Paths struct {
	Root    string // LUMIO_ROOT or discovered parent
	DataDir string `koanf:"data_dir"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Admin    Admin    `koanf:"admin"`
	Security Security `koanf:"security"`
	Archive  Archive  `koanf:"archive"`
	SMTP     SMTP     `koanf:"smtp"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"paths"`
}
