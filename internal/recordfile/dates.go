package recordfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spanish month names as rendered by the exporting application's es-ES
// locale. The short forms follow the same locale ("sept", not "sep").
var longMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var shortMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

var monthNumbers = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,
}

// formatLongDate renders "2 de diciembre de 2025, 19:41".
func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d, %02d:%02d",
		t.Day(), longMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// formatShortDate renders "2 dic 2025, 19:41" for check-in lines.
func formatShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %02d:%02d",
		t.Day(), shortMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// Layouts tried before falling back to the Spanish long-date pattern. These
// cover ISO timestamps and the plain forms a hand-edited file may carry.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

var spanishDatePattern = regexp.MustCompile(`(?i)(\d+)\s+de\s+(\p{L}+)\s+de\s+(\d+),?\s*(\d+):(\d+)`)

// ParseDate parses a "Fecha:" value. Generic layouts are attempted first,
// then the Spanish long-date form produced by the exporter. The boolean
// reports whether any parse succeeded; callers that keep the original
// behavior substitute the current time when it is false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return parseSpanishDate(s)
}

// parseSpanishDate handles "<day> de <month> de <year>, <HH>:<MM>". Unknown
// month names fall back to January, matching the original month table lookup.
func parseSpanishDate(s string) (time.Time, bool) {
	m := spanishDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	month, ok := monthNumbers[strings.ToLower(m[2])]
	if !ok {
		month = time.January
	}
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local), true
}
