package domain

import (
	"testing"
	"time"
)

func TestDueRaw(t *testing.T) {
	cases := []struct {
		name string
		due  Due
		want string
	}{
		{"date", DateDue(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)), "15.06.2025"},
		{"distance", DistanceDue(60000), "60000"},
		{"unknown", Due{}, ""},
	}
	for _, tc := range cases {
		if got := tc.due.Raw(); got != tc.want {
			t.Errorf("%s: Raw() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeSPZ(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ZC 859 BR", "zc859br"},
		{"zc859br", "zc859br"},
		{"  ZC\t859  BR ", "zc859br"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSPZ(tc.in); got != tc.want {
			t.Errorf("NormalizeSPZ(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSinkKeyPreservesCase(t *testing.T) {
	if got := SinkKey("AB 123 cd"); got != "AB123cd" {
		t.Errorf("SinkKey = %q, want %q", got, "AB123cd")
	}
}
