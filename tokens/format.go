package tokens

import (
	"fmt"
	"math"
)

// FormatTokens renders a token count as an integer below 1000, with one
// decimal place and a K suffix from 1000 up to (not including) 1e6, and
// with one decimal place and an M suffix at 1e6 and above. The >= 1e6
// check runs before the >= 1e3 check so that 1,000,000 formats as
// "1.0M" rather than the source's "1000.0K". The decimal digit is
// truncated rather than rounded so that a value like 999,999 reads as
// "999.9K" instead of rounding up to "1000.0K".
func FormatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", truncate1(float64(n)/1_000_000))
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", truncate1(float64(n)/1_000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncate1(f float64) float64 {
	return math.Floor(f*10) / 10
}

// FormatCost renders cost to four decimal places prefixed with "$",
// suppressed (empty string) when the usage carries no known price.
func FormatCost(u Usage) string {
	if !u.CostKnown && u.Cost == 0 {
		return ""
	}
	return fmt.Sprintf("$%.4f", u.Cost)
}
