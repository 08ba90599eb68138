package billing

import (
	"strings"
	"unicode"
)

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// AmountInWords converts an amount into Indian-convention currency words:
// crore/lakh/thousand grouping, "rupees" and "paise" units, no grouping
// separators, first letter capitalised. A zero paise clause is omitted
// entirely, e.g. 1180.00 -> "One thousand one hundred and eighty rupees".
func AmountInWords(amount float64) string {
	rupees := int64(amount)
	paise := RoundHalfUpWhole((amount - float64(rupees)) * 100)

	s := integerWords(rupees) + " rupees"
	if paise > 0 {
		s += " and " + integerWords(paise) + " paise"
	}
	return capitalizeFirst(s)
}

func integerWords(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n < 0 {
		return "minus " + integerWords(-n)
	}

	var parts []string
	if crore := n / 10000000; crore > 0 {
		parts = append(parts, integerWords(crore)+" crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigitWords(lakh)+" lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigitWords(thousand)+" thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred]+" hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+twoDigitWords(n))
		} else {
			parts = append(parts, twoDigitWords(n))
		}
	}
	return strings.Join(parts, " ")
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + "-" + onesWords[n%10]
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
