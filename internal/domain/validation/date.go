package validation

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout formato de data de calendário aceito na API.
const DateLayout = "2006-01-02"

// ParseDate interpreta "AAAA-MM-DD" como data de calendário (meia-noite UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q", s)
	}
	return t, nil
}

// ParseOptionalDate devolve nil para vazio.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseTimestamp aceita RFC3339 (com ou sem fração) ou uma data de calendário.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return ParseDate(s)
}

// FormatDate formata data de calendário; nil vira "".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
