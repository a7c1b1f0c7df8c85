package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sehajsb/rollcall/internal/config"
	"github.com/sehajsb/rollcall/internal/render"
	"github.com/sehajsb/rollcall/internal/rollcall/report"
)

var (
	reportOutput string
	reportDetail string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the attendance report from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.OutOrStdout())
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "table", "output format: table, json or csv")
	reportCmd.Flags().StringVarP(&reportDetail, "detail", "d", "", "expand one identity's detail panel")
	rootCmd.AddCommand(reportCmd)
}

func runReport(w io.Writer) error {
	out, err := render.ParseOutput(reportOutput)
	if err != nil {
		return err
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "rollcall ", log.LstdFlags|log.LUTC)

	ctx := context.Background()
	p, err := openPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer p.close()

	if reportDetail != "" {
		var focus report.Focus
		if expanded := focus.Toggle(reportDetail); expanded {
			return printDetail(ctx, w, p, focus.Current())
		}
		return nil
	}

	rows, err := p.report.Rows(ctx)
	if err != nil {
		return err
	}
	return render.PrintReport(w, rows, out)
}

func printDetail(ctx context.Context, w io.Writer, p *pipeline, identity string) error {
	rec, status, found, err := p.report.Detail(ctx, identity)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no record for %q and not on the roster", identity)
	}

	fmt.Fprintf(w, "Name:       %s\n", rec.Identity)
	fmt.Fprintf(w, "Status:     %s\n", status)
	if rec.Period != "" {
		fmt.Fprintf(w, "Period:     %s\n", rec.Period)
	}
	if rec.ObservedAt != nil {
		fmt.Fprintf(w, "Observed:   %s\n", rec.ObservedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Confidence: %.0f%%\n", rec.Confidence*100)
	}
	if rec.SourceID != "" {
		fmt.Fprintf(w, "Source:     %s\n", rec.SourceID)
	}
	return nil
}
