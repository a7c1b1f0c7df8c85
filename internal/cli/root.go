// Package cli defines the rollcall command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Attendance pipeline for identity-matched camera observations",
	Long: `Rollcall turns a noisy stream of identity-matched camera detections into
a deduplicated, period-aware, lateness-annotated attendance ledger, and
reconstructs per-person attendance status from that ledger on demand.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
