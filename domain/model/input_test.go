package model

import (
	"errors"
	"testing"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "numeric", raw: "1000", want: 1000},
		{name: "zero", raw: "0", want: 0},
		{name: "empty defaults to zero", raw: "", want: 0},
		{name: "whitespace defaults to zero", raw: "   ", want: 0},
		{name: "non-numeric defaults to zero", raw: "abc", want: 0},
		{name: "negative is rejected", raw: "-5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThreshold(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseThreshold(%q) succeeded, want error", tt.raw)
				}
				if !errors.Is(err, ErrInputInvalid) {
					t.Errorf("err = %v, want ErrInputInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseThreshold(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseThreshold(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeContextURL(t *testing.T) {
	if got := NormalizeContextURL(""); got != DefaultContextURL {
		t.Errorf("empty input = %q, want default", got)
	}
	if got := NormalizeContextURL("https://example.test/ctx/"); got != "https://example.test/ctx/" {
		t.Errorf("verbatim input changed: %q", got)
	}
}

func TestParseFlag(t *testing.T) {
	for _, v := range []string{"1", "true", "True"} {
		if !ParseFlag(v) {
			t.Errorf("ParseFlag(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "junk"} {
		if ParseFlag(v) {
			t.Errorf("ParseFlag(%q) = true, want false", v)
		}
	}
}
