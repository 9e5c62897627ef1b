package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcade-cab/whackapirate/internal/platform/tui"
	"github.com/arcade-cab/whackapirate/internal/storage"
)

var (
	flagReportsLimit       int
	flagReportsPending     bool
	flagReportsInteractive bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show the report delivery journal",
	Long: `Display the match report delivery journal: every attempted delivery
to the automation platform, whether it landed, and why it failed if not.

Examples:
  pirate reports
  pirate reports --pending
  pirate reports -i`,
	Run: runReports,
}

func init() {
	reportsCmd.Flags().IntVar(&flagReportsLimit, "limit", 20, "Number of journal entries to show")
	reportsCmd.Flags().BoolVar(&flagReportsPending, "pending", false, "Show only undelivered reports")
	reportsCmd.Flags().BoolVarP(&flagReportsInteractive, "interactive", "i", false, "Browse the journal interactively")
}

func runReports(_ *cobra.Command, _ []string) {
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	if flagReportsInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if runErr := tui.RunReports(journal, width, height); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	var entries []storage.DeliveryEntry
	if flagReportsPending {
		entries, err = journal.Undelivered(flagReportsLimit)
	} else {
		entries, err = journal.Recent(flagReportsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Report deliveries")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Journal is empty.")
		fmt.Println()
		fmt.Println("Finish a match with reporting enabled to record deliveries.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-6s  %-8s  %-5s  %-5s  %-17s  %s\n", "ID", "Score", "Outcome", "Sent", "Tries", "When", "Error")
	fmt.Printf("  %-5s  %-6s  %-8s  %-5s  %-5s  %-17s  %s\n", "--", "-----", "-------", "----", "-----", "----", "-----")

	for _, e := range entries {
		sent := "no"
		if e.Delivered {
			sent = "yes"
		}
		fmt.Printf("  %-5d  %-6d  %-8s  %-5s  %-5d  %-17s  %s\n",
			e.ID, e.Score, e.Outcome, sent, e.Attempts,
			e.CreatedAt.Format("2006-01-02 15:04"), e.Error)
	}
}
