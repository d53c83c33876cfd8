package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCLP(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{100, "$100"},
		{1_000, "$1.000"},
		{450_000, "$450.000"},
		{1_234_567, "$1.234.567"},
		{999_999_999, "$999.999.999"},
		{-50_000, "-$50.000"},
		{-1, "-$1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCLP(tt.amount), "amount %d", tt.amount)
	}
}
