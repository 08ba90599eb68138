package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Zero rupees"},
		{45, "Forty-five rupees"},
		{100, "One hundred rupees"},
		{1180, "One thousand one hundred and eighty rupees"},
		{1500, "One thousand five hundred rupees"},
		{1234.56, "One thousand two hundred and thirty-four rupees and fifty-six paise"},
		{100000, "One lakh rupees"},
		{25000000, "Two crore fifty lakh rupees"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(tt.in), "AmountInWords(%v)", tt.in)
	}
}

func TestAmountInWordsDropsZeroPaise(t *testing.T) {
	assert.NotContains(t, AmountInWords(500.00), "paise")
}

func TestAmountInWordsNoGroupingSeparators(t *testing.T) {
	assert.NotContains(t, AmountInWords(1234567), ",")
}
