package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sehajsb/rollcall/internal/calendar"
	"github.com/sehajsb/rollcall/internal/config"
	dbpkg "github.com/sehajsb/rollcall/internal/db"
	"github.com/sehajsb/rollcall/internal/rollcall/gate"
	"github.com/sehajsb/rollcall/internal/rollcall/service"
	"github.com/sehajsb/rollcall/internal/rollcall/store/sqlite"
)

// pipeline bundles everything a command needs to ingest observations and
// build reports against the durable ledger.
type pipeline struct {
	db     *sql.DB
	writer *dbpkg.Worker

	ingest    *service.IngestService
	heartbeat *service.HeartbeatService
	report    *service.ReportService
	pruner    *service.HeartbeatPruner
}

// openPipeline opens the database and wires the full service stack the way
// every rollcall command uses it.
func openPipeline(ctx context.Context, cfg config.Config, logger *log.Logger) (*pipeline, error) {
	conn, err := dbpkg.Open(ctx, dbpkg.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.Env == "dev" {
		if err := dbpkg.SeedDev(ctx, conn, dbpkg.SeedDevOptions{KnownSources: cfg.KnownSources}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("seed dev db: %w", err)
		}
	}

	cal, err := calendar.Load(cfg.CalendarPath)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	writer := dbpkg.NewWorker(conn)

	sourceStore := sqlite.NewSourceStore(conn, writer)
	eventStore := sqlite.NewAttendanceEventStore(conn, writer)
	heartbeatStore := sqlite.NewHeartbeatStore(conn, writer)

	registry := service.NewSourceRegistry(sourceStore)
	dedupGate := gate.New(time.Duration(cfg.CooldownMinutes) * time.Minute)

	p := &pipeline{
		db:     conn,
		writer: writer,

		ingest:    service.NewIngestService(registry, cal, dedupGate, eventStore, cfg.MinConfidence),
		heartbeat: service.NewHeartbeatService(heartbeatStore, registry),
		report:    service.NewReportService(eventStore, cfg.Roster),
		pruner: service.NewHeartbeatPruner(heartbeatStore, service.PrunerConfig{
			RetentionDays: cfg.HeartbeatRetentionDays,
			IntervalHours: cfg.PruneIntervalHours,
		}, logger),
	}
	return p, nil
}

func (p *pipeline) close() {
	p.writer.Close()
	_ = p.db.Close()
}
