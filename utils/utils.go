package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

func ParseFloat(s string) float64 {
	val, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return val
}

func ParseInt(s string) int {
	val, _ := strconv.Atoi(strings.TrimSpace(s))
	return val
}

// DisplayDateTime is the stored human-readable form of camp timestamps.
const DisplayDateTime = "January 2, 2006 3:04 PM"

// FormatDateTime normalizes the date strings the client sends (RFC3339,
// "2006-01-02 15:04" or bare "2006-01-02") into DisplayDateTime form.
// Strings that parse as none of those are stored as-is.
func FormatDateTime(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayDateTime)
		}
	}
	return s
}
