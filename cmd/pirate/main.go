// pirate is the control program for a whack-a-pirate arcade cabinet.
// It runs the game loop against the cabinet's button deck and light
// strip, or against a simulated cabinet in the terminal.
//
// Usage:
//
//	pirate play              - Run the game (simulated cabinet by default)
//	pirate serve             - Start SSH server for remote play
//	pirate reports           - Show the report delivery journal
//	pirate hardware          - Probe the input device and light strip
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible fleet layout
//	--config <path>    - Path to a tuning config YAML
//	--db <path>        - Set journal database path (default: ~/.pirate/journal.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pirate",
	Short: "Whack-a-Pirate - arcade cabinet control program",
	Long: `Whack-a-Pirate runs the cabinet game loop: pirates pop up on the
button deck, the player smacks them before the window closes, and the
last crew standing wins.

Available commands:
  play      - Run the game (keyboard-simulated cabinet by default)
  serve     - Start SSH server for remote play
  reports   - View the match report delivery journal
  hardware  - Probe the input device and light strip

Examples:
  pirate play
  pirate play --hardware
  pirate serve --ssh :2222
  pirate reports -i`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the fleet layout (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pirate/journal.db", "Path to the delivery journal database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(hardwareCmd)
}
