package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/event"
	"github.com/arcade-cab/whackapirate/internal/game"
	"github.com/arcade-cab/whackapirate/internal/hardware"
	"github.com/arcade-cab/whackapirate/internal/platform/tui"
	"github.com/arcade-cab/whackapirate/internal/report"
	"github.com/arcade-cab/whackapirate/internal/storage"
)

var (
	flagHardware bool
	flagHeadless bool
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the game",
	Long: `Run the game loop. By default the cabinet is simulated and the
keyboard stands in for the button deck.

Controls:
  1-9          - Cabinet buttons, row by row
  Space/Enter  - Start button
  Q/Ctrl+C     - Quit

With --hardware the loop reads the real input device and drives the
light strip instead. Setting PIRATE_SIM_HARDWARE=true forces the
simulated cabinet even when --hardware is given.

With --headless there is no terminal view at all: the loop runs on a
wall-clock ticker and the cabinet lights are the only display. This is
how an installed cabinet runs under a service manager.

Examples:
  pirate play
  pirate play --hardware
  pirate play --hardware --headless
  pirate play --config ./configs/pirate.yaml --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagHardware, "hardware", false, "Use the real input device and light strip")
	playCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the terminal view")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.pirate/pirate.log", "Log file path (keeps logs off the game screen)")
}

func runPlay(_ *cobra.Command, _ []string) {
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

	logger := newLogger(flagLogFile)

	// Open the delivery journal
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		// Continue without journaling - game still works
		journal = nil
	}

	reporter := report.NewClient(cfg.Report, journal, logger)

	// Get terminal size for the view
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := config.DefaultRuntime()
	rt.ScreenW = width
	rt.ScreenH = height
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	// Pick the cabinet port. The env toggle wins over the flag so a
	// bench cabinet can be forced into simulation without re-flagging.
	var (
		port hardware.Port
		sim  *hardware.SimPort
	)
	if flagHardware && !env.SimHardware {
		device, devErr := hardware.OpenDevice(cfg.Hardware, logger)
		if devErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening input device: %v\n", devErr)
			os.Exit(1)
		}
		port = device
	} else {
		sim = hardware.NewSimPort(cfg.Hardware.Buttons)
		port = sim
	}

	bus := event.NewDispatcher(logger)
	queue := hardware.NewQueue(hardware.DefaultQueueDepth)

	var feed *tui.EventFeed
	if !flagHeadless {
		feed = tui.NewEventFeed(bus, 6)
	}

	driver := game.NewDriver(game.Params{
		Config:   cfg,
		Runtime:  rt,
		Logger:   logger,
		Bus:      bus,
		Port:     port,
		Queue:    queue,
		Reporter: reporter,
	})

	ctx, cancel := context.WithCancel(context.Background())
	poller := hardware.NewPoller(port, queue, logger)
	poller.Start(ctx)

	var runErr error
	if flagHeadless {
		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		logger.Info("running headless", "fps", rt.TickRate)
		driver.Run(runCtx, rt.TickInterval())
		stop()
	} else {
		model := tui.NewModel(driver, sim, feed, cfg.Hardware, rt, nil)
		runErr = tui.Run(model)
	}

	cancel()
	<-poller.Done()
	if feed != nil {
		feed.Close()
	}

	// Let in-flight report deliveries finish before closing the journal.
	reporter.Wait()

	//nolint:errcheck // Best-effort teardown on exit
	port.Close()
	if journal != nil {
		journal.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger opens the log file and builds the cabinet logger. The game
// owns the terminal, so logs go to a file; if the file cannot be opened
// logs fall back to stderr.
func newLogger(path string) *log.Logger {
	out := os.Stderr
	if path != "" {
		if strings.HasPrefix(path, "~/") {
			if home, homeErr := os.UserHomeDir(); homeErr == nil {
				path = filepath.Join(home, path[2:])
			}
		}
		//nolint:errcheck // Best-effort log directory creation
		os.MkdirAll(filepath.Dir(path), 0o755)
		if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); openErr == nil {
			out = f
		}
	}

	return log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pirate",
	})
}
