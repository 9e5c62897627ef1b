package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

var flagHardwareFlash bool

var hardwareCmd = &cobra.Command{
	Use:   "hardware",
	Short: "Probe the input device and light strip",
	Long: `Open the configured input device and light strip and report their
health. With --flash, walk the lights so a tech can spot dead LEDs.

Examples:
  pirate hardware
  pirate hardware --flash
  pirate hardware --config ./configs/pirate.yaml`,
	Run: runHardware,
}

func init() {
	hardwareCmd.Flags().BoolVar(&flagHardwareFlash, "flash", false, "Walk each light in turn, then blackout")
}

func runHardware(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	env.Apply(&cfg)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pirate",
	})

	fmt.Printf("Input device: %s\n", cfg.Hardware.DevicePath)
	fmt.Printf("Light strip:  %s\n", cfg.Hardware.LEDPath)

	port, err := hardware.OpenDevice(cfg.Hardware, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input device: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Health:       %s\n", port.HealthCheck())

	if flagHardwareFlash {
		fmt.Println("Walking lights...")
		for i := 0; i < cfg.Hardware.Buttons; i++ {
			if lightErr := port.SetIndicator(i, true); lightErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: light %d failed: %v\n", i+1, lightErr)
			}
			time.Sleep(200 * time.Millisecond)
			//nolint:errcheck // Already reported on the on-path
			port.SetIndicator(i, false)
		}
		//nolint:errcheck // Blackout is best-effort
		port.SetAllIndicators(false)
	}
}
