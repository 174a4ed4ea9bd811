package config

// Config represents the full bridge configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Asana configuration
	Asana AsanaConfig `yaml:"asana" mapstructure:"asana"`

	// Chat platform configuration
	Chat ChatConfig `yaml:"chat" mapstructure:"chat"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Logging configuration
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// PublicURL is the externally reachable base URL, used when
	// registering Asana webhooks and building OAuth redirect URIs.
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

// AsanaConfig configures access to the Asana API
type AsanaConfig struct {
	// WorkspaceGID is required for all workspace-scoped queries.
	WorkspaceGID string `yaml:"workspace_gid" mapstructure:"workspace_gid"`

	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
}

// ChatConfig configures the chat platform adapter
type ChatConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	BotToken  string `yaml:"bot_token" mapstructure:"bot_token"`
	BotUserID string `yaml:"bot_user_id" mapstructure:"bot_user_id"`

	// NotifyRoom is the room webhook notifications are posted to.
	NotifyRoom string `yaml:"notify_room" mapstructure:"notify_room"`
}

// StorageConfig configures the credential store
type StorageConfig struct {
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// HasWorkspace reports whether a workspace GID is configured.
// Absence is a user-visible error condition, not a crash.
func (c *Config) HasWorkspace() bool {
	return c.Asana.WorkspaceGID != ""
}
