package codec

import (
	"errors"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2020-01-01T00:00:00Z", "2020-01-01T00:00:00.000Z"},
		{"2020-01-01T09:30:00+09:00", "2020-01-01T00:30:00.000Z"},
		{"2021-03-04T05:06:07.123456Z", "2021-03-04T05:06:07.123Z"},
		{"2020-02-29", "2020-02-29T00:00:00.000Z"},
		{"1577836800000", "2020-01-01T00:00:00.000Z"},
		{"-1000", "1969-12-31T23:59:59.000Z"},
		{" 2020-01-01T00:00:00.5Z ", "2020-01-01T00:00:00.500Z"},
	}
	for _, tt := range tests {
		got, err := Canonical(tt.in)
		if err != nil {
			t.Fatalf("Canonical(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate_Errors(t *testing.T) {
	if _, err := ParseDate("now"); !errors.Is(err, ErrRelativeDate) {
		t.Fatalf("expected ErrRelativeDate, got %v", err)
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
