package xform

import (
	"fmt"
	"strings"
)

// FormatMatrix renders m as four rows of four values, row-major, two
// decimals each.
func FormatMatrix(m Mat4) string {
	var b strings.Builder
	writeMatrix(&b, m)
	return strings.TrimSuffix(b.String(), "\n")
}

func writeMatrix(b *strings.Builder, m Mat4) {
	for row := 0; row < 4; row++ {
		b.WriteString("  ")
		for col := 0; col < 4; col++ {
			b.WriteString(formatValue(m.At(row, col)))
		}
		b.WriteByte('\n')
	}
}

func formatValue(v float64) string {
	s := fmt.Sprintf("%6.2f", v)
	if s == " -0.00" {
		return "  0.00"
	}
	return s
}

// Format renders the steps in display order (innermost first), each
// entry 1-indexed and labeled, entries separated by a blank line.
func (s Sequence) Format() string {
	var b strings.Builder
	for i, t := range s.Display() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Label)
		writeMatrix(&b, t.M)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
