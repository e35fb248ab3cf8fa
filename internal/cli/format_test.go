package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero", "0", "R0.00"},
		{"small", "5.5", "R5.50"},
		{"thousands", "1234.5", "R1,234.50"},
		{"millions", "1234567.89", "R1,234,567.89"},
		{"negative", "-1234.5", "-R1,234.50"},
		{"rounding", "10.005", "R10.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			if err != nil {
				t.Fatalf("bad input %q: %v", tt.input, err)
			}
			got := FormatAmount("R", d)
			if got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatSignedAmount(t *testing.T) {
	pos := FormatSignedAmount("R", decimal.NewFromInt(100))
	if pos != "+R100.00" {
		t.Errorf("positive = %q, want +R100.00", pos)
	}
	neg := FormatSignedAmount("R", decimal.NewFromInt(-100))
	if neg != "-R100.00" {
		t.Errorf("negative = %q, want -R100.00", neg)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(2024, 3); got != "March 2024" {
		t.Errorf("FormatMonth = %q, want March 2024", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	if got := FormatDate(d); got != "05 Mar" {
		t.Errorf("FormatDate = %q, want 05 Mar", got)
	}
	if got := FormatFullDate(d); got != "05 Mar 2024" {
		t.Errorf("FormatFullDate = %q, want 05 Mar 2024", got)
	}
}
