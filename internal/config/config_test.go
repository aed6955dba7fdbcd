package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pharma-scheduler/internal/domain/appointment"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/Bogota", cfg.Timezone)
	assert.Equal(t, "data/agenda.xlsx", cfg.AgendaFile)
	assert.Equal(t, "sqlite", cfg.AuditDBDriver)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, domain.DefaultSchedule(), cfg.Schedule)
	assert.Equal(t, domain.DefaultHighCostMedications, cfg.HighCost)
	assert.False(t, cfg.SeedSampleData)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MIN_LEAD_HOURS", "4")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("AUDIT_DB_DRIVER", "none")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 4*time.Hour, cfg.Schedule.MinLead)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, "none", cfg.AuditDBDriver)
}

func TestLoadScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weekday:
  open: "07:00"
  close: "18:00"
lunch:
  start: "12:30"
  end: "13:30"
min_lead: 90m
high_cost:
  - insulina
  - etanercept
`), 0o644))
	t.Setenv("SCHEDULE_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.Window{Open: "07:00", Close: "18:00"}, cfg.Schedule.Weekday)
	assert.Equal(t, domain.DefaultSchedule().Saturday, cfg.Schedule.Saturday)
	assert.Equal(t, "12:30", cfg.Schedule.LunchStart)
	assert.Equal(t, "13:30", cfg.Schedule.LunchEnd)
	assert.Equal(t, 90*time.Minute, cfg.Schedule.MinLead)
	assert.Equal(t, []string{"insulina", "etanercept"}, cfg.HighCost)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"audit driver":     {"AUDIT_DB_DRIVER": "mongo"},
		"postgres no url":  {"AUDIT_DB_DRIVER": "postgres", "DATABASE_URL": ""},
		"negative lead":    {"MIN_LEAD_HOURS": "-1"},
		"timezone":         {"TIMEZONE": "Mars/Olympus"},
		"missing schedule": {"SCHEDULE_FILE": filepath.Join(t.TempDir(), "nope.yaml")},
		"non-positive ttl": {"SESSION_TTL": "0s"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBadScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte("saturday:\n  open: \"25:00\"\n  close: \"12:00\"\n"), 0o644))
	t.Setenv("SCHEDULE_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
