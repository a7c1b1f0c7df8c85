package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/rollcall.db"

	// Period calendar. Empty = embedded default table.
	CalendarPath string

	// Pipeline. Grace windows live in the calendar file, not here.
	CooldownMinutes int      // dedup gate window
	MinConfidence   float64  // observations below this are dropped
	Roster          []string // identities reported Absent when never seen
	KnownSources    []string

	// Heartbeat retention
	HeartbeatRetentionDays int // 0 = keep forever
	PruneIntervalHours     int // how often the pruner runs (default 6)
}

func FromEnv() Config {
	addr := getenvDefault("ROLLCALL_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("ROLLCALL_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("ROLLCALL_DB_PATH", "./data/rollcall.db")
	calendarPath := strings.TrimSpace(os.Getenv("ROLLCALL_CALENDAR_PATH"))

	cooldown := getenvInt("ROLLCALL_COOLDOWN_MINUTES", 10)
	minConfidence := getenvFloat("ROLLCALL_MIN_CONFIDENCE", 0.45)

	roster := splitCSV(os.Getenv("ROLLCALL_ROSTER"))
	knownSources := splitCSV(os.Getenv("ROLLCALL_KNOWN_SOURCES"))

	retentionDays := getenvInt("ROLLCALL_HEARTBEAT_RETENTION_DAYS", 30)
	pruneInterval := getenvInt("ROLLCALL_PRUNE_INTERVAL_HOURS", 6)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,

		CalendarPath: calendarPath,

		CooldownMinutes: cooldown,
		MinConfidence:   minConfidence,
		Roster:          roster,
		KnownSources:    knownSources,

		HeartbeatRetentionDays: retentionDays,
		PruneIntervalHours:     pruneInterval,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
