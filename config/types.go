package config

// ServerConfig names one tracking server endpoint
type ServerConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url" validate:"omitempty,url,startswith=ws"`
}

// ConnectionConfig tunes the WebSocket connection
type ConnectionConfig struct {
	HandshakeTimeoutMS int   `yaml:"handshakeTimeoutMS" validate:"gte=0"`
	WriteTimeoutMS     int   `yaml:"writeTimeoutMS" validate:"gte=0"`
	ReadLimitBytes     int64 `yaml:"readLimitBytes" validate:"gte=0"`
}

// MetricsConfig enables the metrics and health listener when Listen is set
type MetricsConfig struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// LoggingConfig selects log level and output format
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
	File   string `yaml:"file"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Servers    []ServerConfig   `yaml:"servers" validate:"dive"`
	Connection ConnectionConfig `yaml:"connection"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}
