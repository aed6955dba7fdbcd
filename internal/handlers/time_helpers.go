package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/pharma-scheduler/internal/dates"
	"github.com/BruksfildServices01/pharma-scheduler/internal/httperr"
)

// resolveDate turns "hoy", "mañana" and friends into YYYY-MM-DD in the
// pharmacy's zone. Other input is only trimmed.
func resolveDate(raw string, now time.Time) string {
	return dates.ResolveRelative(strings.TrimSpace(raw), now)
}

// parseStep reads a slot step in minutes. Empty means the default.
func parseStep(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 5 || n > 240 {
		return 0, httperr.Invalid("step", "el intervalo debe estar entre 5 y 240 minutos")
	}
	return time.Duration(n) * time.Minute, nil
}
