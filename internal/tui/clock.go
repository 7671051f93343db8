package tui

import (
	"fmt"
	"strings"
	"time"
)

// 5-row glyphs for the big clock; index 10 is the colon
var glyphs = [11][5]string{
	{" ███ ", "█   █", "█   █", "█   █", " ███ "},
	{"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	{" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	{" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	{"█   █", "█   █", "█████", "    █", "    █"},
	{"█████", "█    ", "████ ", "    █", "████ "},
	{" ███ ", "█    ", "████ ", "█   █", " ███ "},
	{"█████", "    █", "   █ ", "  █  ", " █   "},
	{" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	{" ███ ", "█   █", " ████", "    █", " ███ "},
	{"     ", "  █  ", "     ", "  █  ", "     "},
}

// ClockText formats d as mm:ss, or hh:mm:ss from one hour up
func ClockText(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// BigClockLines renders d as five equally wide lines of block digits
func BigClockLines(d time.Duration) []string {
	var rows [5][]string
	for _, r := range ClockText(d) {
		idx := 10
		if r >= '0' && r <= '9' {
			idx = int(r - '0')
		}
		for i := range rows {
			rows[i] = append(rows[i], glyphs[idx][i])
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = strings.Join(rows[i], " ")
	}
	return out
}
