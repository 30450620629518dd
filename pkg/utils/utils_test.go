package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "round to 2 decimals",
			input: "123.456789",
			want:  "123.46",
		},
		{
			name:  "already 2 decimals",
			input: "123.45",
			want:  "123.45",
		},
		{
			name:  "integer",
			input: "123",
			want:  "123",
		},
		{
			name:  "half rounds up",
			input: "0.005",
			want:  "0.01",
		},
		{
			name:  "just below half rounds down",
			input: "4166.6649999",
			want:  "4166.66",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.input))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{
			name:  "finite number",
			input: 123.45,
			want:  true,
		},
		{
			name:  "infinity",
			input: math.Inf(1),
			want:  false,
		},
		{
			name:  "negative infinity",
			input: math.Inf(-1),
			want:  false,
		},
		{
			name:  "NaN",
			input: math.NaN(),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	got := MonthlyRate(decimal.NewFromInt(9))
	if !got.Equal(decimal.RequireFromString("0.0075")) {
		t.Errorf("MonthlyRate(9) = %v, want 0.0075", got)
	}

	if !MonthlyRate(decimal.Zero).IsZero() {
		t.Error("MonthlyRate(0) should be zero")
	}
}
