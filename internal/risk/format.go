package risk

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatPercent renders a rate in [0, 1] as a display percentage, e.g.
// 0.5925 -> "59.25%". No library in the stack covers locale-free display
// formatting, so these helpers stay local.
func formatPercent(rate float64) string {
	s := strconv.FormatFloat(rate*100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s + "%"
}

// formatDollars renders an amount with comma grouping, e.g. 37585 -> "$37,585".
func formatDollars(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + "$" + b.String()
}

// formatRate renders a per-100k crime rate, e.g. "380.7 per 100k".
func formatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + " per 100k"
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}

func formatScoreOutOf(score, outOf int) string {
	return fmt.Sprintf("%d / %d", score, outOf)
}
