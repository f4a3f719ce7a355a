package parsing

import "strings"

// Lines splits raw text into trimmed, non-empty lines in reading order.
func Lines(raw string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Vendor treats the first line of a receipt as the business name.
func Vendor(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
