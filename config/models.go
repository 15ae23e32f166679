package config

import "time"

// Config holds the configuration of the application
// Use LoadConfig to create a new instance
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Upstreams UpstreamsConfig `mapstructure:"upstreams" yaml:"upstreams"`
	Proxy     ProxyConfig     `mapstructure:"proxy"     yaml:"proxy"`
	UI        UIConfig        `mapstructure:"ui"        yaml:"ui"`
	Log       LogConfig       `mapstructure:"log"       yaml:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port" validate:"gte=1,lte=65535"`
	// CustomHeaders are added to every shell response. Values prefixed
	// with "env:" are resolved from the environment at request time.
	CustomHeaders map[string]string `mapstructure:"custom_headers" yaml:"custom_headers,omitempty"`
}

// UpstreamsConfig names the two origins the gateway fronts: the new API
// service and the legacy monolith being strangled.
type UpstreamsConfig struct {
	API    UpstreamConfig `mapstructure:"api"    yaml:"api"`
	Legacy UpstreamConfig `mapstructure:"legacy" yaml:"legacy"`
}

type UpstreamConfig struct {
	// Origin is the scheme://host[:port] requests are forwarded to.
	// An empty API origin enables the built-in dev stub.
	Origin  string        `mapstructure:"origin"  yaml:"origin"  validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
	// InsecureSkipVerify disables TLS verification for self-signed
	// certificates on the legacy side.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

type ProxyConfig struct {
	BreakerFailureThreshold uint          `mapstructure:"breaker_failure_threshold" yaml:"breaker_failure_threshold"`
	BreakerCooldown         time.Duration `mapstructure:"breaker_cooldown" yaml:"breaker_cooldown" validate:"gte=0"`
	ProbeInterval           time.Duration `mapstructure:"probe_interval"   yaml:"probe_interval"   validate:"gte=0"`
	ProbeTimeout            time.Duration `mapstructure:"probe_timeout"    yaml:"probe_timeout"    validate:"gte=0"`
}

type UIConfig struct {
	// Dev serves templates and static assets from disk and live-reloads
	// connected browsers on change.
	Dev bool `mapstructure:"dev" yaml:"dev"`
	// SessionSecret signs the session cookie. A random secret is
	// generated at startup when empty, which invalidates sessions on
	// restart.
	SessionSecret string        `mapstructure:"session_secret" yaml:"session_secret,omitempty"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"gte=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File switches logging from stdout to a rotating file when set.
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
}
