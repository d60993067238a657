// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	GHL     GHLConfig     `mapstructure:"ghl"`
	Email   EmailConfig   `mapstructure:"email"`
	ADF     ADFConfig     `mapstructure:"adf"`
	Dedupe  DedupeConfig  `mapstructure:"dedupe"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name         string `mapstructure:"name"`
	Version      string `mapstructure:"version"`
	Environment  string `mapstructure:"environment"`
	BatchOnStart bool   `mapstructure:"batch_on_start"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// GHLConfig holds settings for the GoHighLevel contacts API.
type GHLConfig struct {
	APIKey     string `mapstructure:"api_key"`
	LocationID string `mapstructure:"location_id"`
	BaseURL    string `mapstructure:"base_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// EmailConfig holds settings for outbound delivery to the import mailbox.
type EmailConfig struct {
	Provider      string `mapstructure:"provider"` // "smtp" or "ses"
	FromAddress   string `mapstructure:"from_address"`
	AppPassword   string `mapstructure:"app_password"`
	ImportAddress string `mapstructure:"import_address"`
	Subject       string `mapstructure:"subject"`

	SMTP struct {
		Host    string `mapstructure:"host"`
		Port    int    `mapstructure:"port"`
		UseTLS  bool   `mapstructure:"use_tls"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"smtp"`

	SES struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"ses"`
}

// ADFConfig holds the output dialect and the static vendor/provider blocks
// the DriveCentric dialect emits per deployment.
type ADFConfig struct {
	Dialect    string `mapstructure:"dialect"` // "generic" or "drivecentric"
	OutputPath string `mapstructure:"output_path"`

	Vendor struct {
		Name        string `mapstructure:"name"`
		ContactName string `mapstructure:"contact_name"`
	} `mapstructure:"vendor"`

	Provider struct {
		Name    string `mapstructure:"name"`
		Service string `mapstructure:"service"`
	} `mapstructure:"provider"`
}

// DedupeConfig controls the seen-lead set. With an empty redis address the
// relay falls back to the in-memory set.
type DedupeConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
	TTL       int    `mapstructure:"ttl"` // minutes, redis backing only
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
