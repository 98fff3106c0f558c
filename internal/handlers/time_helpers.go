package handlers

import (
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// --------------------------------------------------
// Datas chegam no fuso padrão da clínica
// --------------------------------------------------

// parseDate aceita "2006-01-02". Vazio → nil.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(dateLayout, raw, timezone.Current())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseDateTime aceita RFC3339 ou "2006-01-02 15:04:05" (horário local).
func parseDateTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateTimeLayout, raw, timezone.Current())
}
