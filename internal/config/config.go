// Package config provides YAML-based configuration loading for the
// SnakeRush server and frontends.
package config

// Config is the root configuration document.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Game        GameConfig        `yaml:"game"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	SSH         SSHConfig         `yaml:"ssh"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GameConfig configures the grid every new game is created on.
type GameConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LeaderboardConfig configures score persistence.
type LeaderboardConfig struct {
	// Path to the leaderboard JSON document. A leading ~ expands to the
	// home directory.
	Path string `yaml:"path"`
}

// SSHConfig configures the SSH play server.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key"`
	// IdleTimeoutMinutes closes idle SSH sessions after this many minutes.
	IdleTimeoutMinutes int `yaml:"idle_timeout_minutes"`
}
