package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/termtext"
)

const truncateIndicator = "..."

// maxItemsShown is how many items an entity row lists before eliding.
const maxItemsShown = 8

// formatEntity renders one producer or consumer row, e.g.
// "P1 (2): 17, 40".
func formatEntity(prefix string, e apiclient.Entity) string {
	if len(e.Items) == 0 {
		return fmt.Sprintf("%s%d (%d): -", prefix, e.ID, e.Count)
	}
	items := make([]string, 0, min(len(e.Items), maxItemsShown))
	for i, it := range e.Items {
		if i == maxItemsShown {
			break
		}
		items = append(items, termtext.Clean(string(it)))
	}
	text := fmt.Sprintf("%s%d (%d): %s", prefix, e.ID, e.Count, strings.Join(items, ", "))
	if len(e.Items) > maxItemsShown {
		text += fmt.Sprintf(" +%d", len(e.Items)-maxItemsShown)
	}
	return text
}

// formatAge formats how long ago t was, relative to now.
func formatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if now.IsZero() || !now.After(t) {
		return t.Format("15:04:05")
	}
	secs := int(now.Sub(t).Seconds())
	if secs < 1 {
		return t.Format("15:04:05")
	}
	return fmt.Sprintf("%s (%ds ago)", t.Format("15:04:05"), secs)
}

// truncate shortens text to maxLen runes, adding indicator if truncated.
func truncate(s string, maxLen int) string {
	s = termtext.Clean(s)
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateIndicator) {
		return truncateIndicator
	}
	runes := []rune(s)
	return string(runes[:maxLen-len(truncateIndicator)]) + truncateIndicator
}
