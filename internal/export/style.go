package export

import (
	"fmt"
	"regexp"
	"strings"
)

// colName: 1 -> A; 27 -> AA.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

// columnWidths: ширина по заголовку и первым 50 строкам, в пределах 12..40.
func columnWidths(s SheetSpec) []float64 {
	out := make([]float64, len(s.Header))
	for c := range s.Header {
		maxim := visualLen(s.Header[c]) + 2
		for r := 0; r < min(50, len(s.Rows)); r++ {
			if c < len(s.Rows[r]) {
				if l := visualLen(fmt.Sprint(s.Rows[r][c])); l > maxim {
					maxim = l
				}
			}
		}
		w := float64(maxim) * 1.1
		out[c] = max(12, min(40, w))
	}
	return out
}

func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}
