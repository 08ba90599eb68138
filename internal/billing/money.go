package billing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"invoicegen/internal/domain"
)

// RoundHalfUpWhole rounds to the nearest whole rupee, halves away from zero.
// Historical invoices were produced with half-up rounding, not banker's
// rounding, so this must not be replaced with math.RoundToEven.
func RoundHalfUpWhole(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return int64(math.Ceil(v - 0.5))
}

// RoundHalfUp2 rounds to two decimal places, halves away from zero.
func RoundHalfUp2(v float64) float64 {
	if v >= 0 {
		return math.Floor(v*100+0.5) / 100
	}
	return math.Ceil(v*100-0.5) / 100
}

// FormatINR formats a value with en-IN digit grouping and two decimals,
// without the currency symbol: 1234567.89 -> "12,34,567.89". The last three
// integer digits form one group, the rest group in pairs.
func FormatINR(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	if neg {
		return "-" + grouped + "." + fracPart
	}
	return grouped + "." + fracPart
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// StripWholeDecimals removes a trailing ".00" from a formatted amount so
// whole-rupee figures print without decimals.
func StripWholeDecimals(s string) string {
	return strings.TrimSuffix(s, ".00")
}

// ParseAmount parses a monetary cell into a float. Grouping commas and
// surrounding whitespace are tolerated; anything else is ErrMalformedAmount.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty value", domain.ErrMalformedAmount)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrMalformedAmount, raw)
	}
	return v, nil
}

// ParseOptionalAmount is ParseAmount with blank cells treated as zero,
// used for ledger columns that are routinely left empty.
func ParseOptionalAmount(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ParseAmount(raw)
}
