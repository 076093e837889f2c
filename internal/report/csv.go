package report

import (
	"bytes"
	"encoding/csv"
	"regexp"
	"strings"
)

// separatorCellRe matches one Markdown header-separator cell, e.g. "---" or ":--:".
var separatorCellRe = regexp.MustCompile(`^:?-+:?$`)

// ExtractCSV converts the pipe tables of a Markdown report into CSV text.
// Lines not starting with a pipe are dropped, as are header-separator rows.
// This mirrors what the export surface downstream does with report text.
func ExtractCSV(markdown string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := splitTableRow(line)
		if isSeparatorRow(cells) {
			continue
		}
		_ = w.Write(cells)
	}

	w.Flush()
	return buf.String()
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}
