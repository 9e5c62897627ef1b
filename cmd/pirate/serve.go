package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/game"
	"github.com/arcade-cab/whackapirate/internal/platform/tui"
	"github.com/arcade-cab/whackapirate/internal/report"
	"github.com/arcade-cab/whackapirate/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeReport bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server for remote play",
	Long: `Start an SSH server that lets users connect and play a simulated
cabinet. Every session gets its own fleet, buttons and lights; the real
hardware is never shared with remote players.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pirate/host_key

Examples:
  pirate serve                           # Listen on :23234 with auto-generated key
  pirate serve --ssh :2222               # Listen on port 2222
  pirate serve --host-key ./my_host_key  # Use specific host key
  pirate serve --report                  # Report remote match outcomes too

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeReport, "report", false, "Deliver match reports for remote sessions")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	env.Apply(&gameCfg)

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	// Remote matches only report when asked to, so bench servers don't
	// spam the automation platform.
	var reporter game.Reporter
	var journal *storage.Store
	if flagServeReport {
		journal, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
			journal = nil
		}
		reporter = report.NewClient(gameCfg.Report, journal, newLogger(flagLogFile))
	}

	server, err := tui.NewSSHServer(srvCfg, gameCfg, reporter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting whack-a-pirate SSH server on %s\n", srvCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	if journal != nil {
		journal.Close()
	}
	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
