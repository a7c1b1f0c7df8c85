package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sehajsb/rollcall/internal/config"
	"github.com/sehajsb/rollcall/internal/render"
	"github.com/sehajsb/rollcall/internal/rollcall/service"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

var replayCmd = &cobra.Command{
	Use:   "replay <observations.json>",
	Short: "Feed a recorded observation stream through the pipeline",
	Long: `Replay reads a JSON array of observations and runs each one through the
full pipeline (period resolution, lateness, dedup gate, ledger append)
exactly as if a camera had streamed them, then prints the resulting report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read observations: %w", err)
	}

	var observations []types.ObservationRequest
	if err := json.Unmarshal(data, &observations); err != nil {
		return fmt.Errorf("parse observations: %w", err)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "rollcall ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	p, err := openPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer p.close()

	counts := make(map[string]int)
	for _, obs := range observations {
		resp, err := p.ingest.Observe(ctx, obs)
		if err != nil {
			// A malformed observation is dropped, not fatal to the replay.
			if errors.Is(err, service.ErrInvalidSourceID) || errors.Is(err, service.ErrInvalidIdentity) {
				counts["malformed"]++
				continue
			}
			return fmt.Errorf("observe: %w", err)
		}
		counts[resp.Reason]++
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Replayed %d observations: %d recorded, %d cooldown, %d unknown identity, %d low confidence, %d malformed\n",
		len(observations), counts[service.ReasonRecorded], counts[service.ReasonCooldown],
		counts[service.ReasonUnknownIdentity], counts[service.ReasonLowConfidence], counts["malformed"])

	rows, err := p.report.Rows(ctx)
	if err != nil {
		return err
	}
	return render.PrintReport(w, rows, render.TableOut)
}
