package config

import (
	_ "embed"
)

//go:embed defaults/snakerush.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"*"},
		},
		Game: GameConfig{
			Width:  20,
			Height: 20,
		},
		Leaderboard: LeaderboardConfig{
			Path: "~/.snakerush/leaderboard.json",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
	}
}
