package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"plain decimal", "12.34", 1234, false},
		{"comma separator", "12,34", 1234, false},
		{"whole number", "100", 10000, false},
		{"single fraction digit", "5.5", 550, false},
		{"third digit rounds down", "12.344", 1234, false},
		{"third digit rounds up", "12.345", 1235, false},
		{"leading dot", ".50", 50, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"zero decimal", "0.00", 0, true},
		{"negative", "-5", 0, true},
		{"explicit plus", "+5", 0, true},
		{"letters", "12a", 0, true},
		{"two separators", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimalToCents(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyGreaterThan(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want bool
	}{
		{"larger", 1001, 1000, true},
		{"equal is not greater", 1000, 1000, false},
		{"smaller", 999, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Money{Cents: tt.a}.GreaterThan(Money{Cents: tt.b})
			if got != tt.want {
				t.Errorf("Money{%d}.GreaterThan(Money{%d}) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100000, "1000.00"},
		{1, "0.01"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	sum := Money{Cents: 100}.Add(Money{Cents: 250})
	if sum.Cents != 350 {
		t.Errorf("Add: got %d, want 350", sum.Cents)
	}
	diff := Money{Cents: 100}.Sub(Money{Cents: 250})
	if diff.Cents != -150 {
		t.Errorf("Sub: got %d, want -150", diff.Cents)
	}
}
