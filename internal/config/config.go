package config

import (
	"time"

	"github.com/google/uuid"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Pool     PoolConfig     `yaml:"pool"`
	Time     TimeConfig     `yaml:"time"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps requests per client IP; 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL connection settings. The DSN carries the
// privileged service credential; it has no default and its absence aborts
// startup before any allocation logic runs.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// PoolConfig holds emergency pool allocation settings.
type PoolConfig struct {
	// TargetSize is the nominal number of pool records per month. It is a
	// floor, not a cap: a run attempts every resolved combination, so the
	// pool may exceed this when many series are active.
	TargetSize int `yaml:"target_size" env:"POOL_TARGET_SIZE" env-default:"3"`

	// LockStaleAfter is how long a held lock may go unreleased before it is
	// presumed abandoned and force-cleared.
	LockStaleAfter time.Duration `yaml:"lock_stale_after" env:"POOL_LOCK_STALE_AFTER" env-default:"5m"`

	// LockRetryAfter is the single backoff interval before re-reading a
	// freshly held lock.
	LockRetryAfter time.Duration `yaml:"lock_retry_after" env:"POOL_LOCK_RETRY_AFTER" env-default:"30s"`

	// LockFailOpen makes an unreadable or missing lock row behave as free so
	// a broken lock table never deadlocks scheduled runs. Set false to abort
	// the run instead.
	LockFailOpen bool `yaml:"lock_fail_open" env:"POOL_LOCK_FAIL_OPEN" env-default:"true"`

	// ReservationExpiryYears is how far out pool reservations expire; pool
	// records do not use the short interactive reservation timeout.
	ReservationExpiryYears int `yaml:"reservation_expiry_years" env:"POOL_RESERVATION_EXPIRY_YEARS" env-default:"10"`

	// RunnerID and RunnerName identify scheduled runs in the lock row and
	// audit trail.
	RunnerID   string `yaml:"runner_id"   env:"POOL_RUNNER_ID"   env-default:"00000000-0000-0000-0000-000000000001"`
	RunnerName string `yaml:"runner_name" env:"POOL_RUNNER_NAME" env-default:"pool-runner"`
}

// TimeConfig holds the local time zone used to derive "today" for schedule
// checks. Zone is an IANA name; when empty, OffsetMinutes is applied to UTC.
type TimeConfig struct {
	Zone          string `yaml:"zone"           env:"TIME_ZONE"           env-default:""`
	OffsetMinutes int    `yaml:"offset_minutes" env:"TIME_OFFSET_MINUTES" env-default:"420"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RunnerUUID returns the parsed runner identity. Valid after Load, which
// rejects unparseable values.
func (p PoolConfig) RunnerUUID() uuid.UUID {
	id, _ := uuid.Parse(p.RunnerID)
	return id
}

// Location resolves the configured local time zone.
func (c TimeConfig) Location() (*time.Location, error) {
	if c.Zone != "" {
		return time.LoadLocation(c.Zone)
	}
	return time.FixedZone("local-offset", c.OffsetMinutes*60), nil
}
