package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tushaaaaaarr/SnakeRush/internal/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH play server",
	Long: `Start an SSH server that lets users connect and play snake.

Each connection gets its own game. The SSH username becomes the player
name, and all users share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakerush/host_key

Examples:
  snakerush ssh                           # Listen on :23235 with auto-generated key
  snakerush ssh --ssh :2222               # Listen on port 2222
  snakerush ssh --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh alice@localhost -p 23235`,
	Run: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
}

func runSSH(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	srv, err := tui.NewSSHServer(cfg, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SnakeRush SSH server on %s\n", cfg.SSH.Address)
	fmt.Println("Connect with: ssh <name>@localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
