// Package timeutil converts between clock strings such as "1:02:03" and
// whole seconds.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration formats seconds as M:SS, or H:MM:SS from one hour up.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseDuration parses H:MM:SS, M:SS or a plain number of seconds.
func ParseDuration(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty duration")
	}

	total := 0
	for _, part := range strings.Split(text, ":") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("expected H:MM:SS, M:SS or seconds, got %q", text)
		}
		total = total*60 + n
	}
	if strings.Count(text, ":") > 2 {
		return 0, fmt.Errorf("expected H:MM:SS, M:SS or seconds, got %q", text)
	}
	return total, nil
}
