package calendar

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default period table: the standard eight-period school day.
//
//go:embed periods.yaml
var defaultPeriodsYAML []byte

type calendarFile struct {
	GraceMinutes int          `yaml:"grace_minutes"`
	Periods      []periodItem `yaml:"periods"`
}

type periodItem struct {
	Name         string `yaml:"name"`
	Start        string `yaml:"start"` // "HH:MM"
	End          string `yaml:"end"`   // "HH:MM"
	GraceMinutes int    `yaml:"grace_minutes"`
}

// Load reads a period table from a YAML file. An empty path loads the
// embedded default table.
func Load(path string) (*Calendar, error) {
	data := defaultPeriodsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read calendar file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse builds a Calendar from YAML bytes.
func Parse(data []byte) (*Calendar, error) {
	var f calendarFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse calendar yaml: %w", err)
	}
	if len(f.Periods) == 0 {
		return nil, fmt.Errorf("calendar has no periods")
	}

	periods := make([]Period, 0, len(f.Periods))
	for _, item := range f.Periods {
		start, err := parseClock(item.Start)
		if err != nil {
			return nil, fmt.Errorf("period %q start: %w", item.Name, err)
		}
		end, err := parseClock(item.End)
		if err != nil {
			return nil, fmt.Errorf("period %q end: %w", item.Name, err)
		}
		periods = append(periods, Period{
			Name:  item.Name,
			Start: start,
			End:   end,
			Grace: time.Duration(item.GraceMinutes) * time.Minute,
		})
	}

	return New(periods, time.Duration(f.GraceMinutes)*time.Minute)
}

// parseClock converts an "HH:MM" string to an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
