package config

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8088",
		},
		Chat: ChatConfig{
			NotifyRoom: "general",
		},
		Storage: StorageConfig{
			DBPath: "~/.taskbridge/taskbridge.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
