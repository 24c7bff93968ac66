package session

import (
	"testing"

	"github.com/okanis/esclscan/internal/escl"
)

func TestExtensionForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"image/jpeg", "jpg"},
		{"image/png", "png"},
		{"application/pdf", "pdf"},
		{"image/tiff", "tiff"},
		{"application/octet-stream", "bin"},
		{"", "bin"},
	}
	for _, tt := range tests {
		if got := extensionForFormat(tt.format); got != tt.want {
			t.Errorf("extensionForFormat(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestPageFileName(t *testing.T) {
	if got := pageFileName("20240115_093000", 1, false, "image/jpeg"); got != "scan_20240115_093000.jpg" {
		t.Errorf("single-page name = %s", got)
	}
	if got := pageFileName("20240115_093000", 3, true, "application/pdf"); got != "scan_20240115_093000_page3.pdf" {
		t.Errorf("multi-page name = %s", got)
	}
}

func TestParseColorModeSpellings(t *testing.T) {
	tests := []struct {
		in      string
		want    escl.ColorMode
		wantErr bool
	}{
		{"color", escl.ColorModeRGB24, false},
		{"COLOR", escl.ColorModeRGB24, false},
		{"", escl.ColorModeRGB24, false},
		{"gray", escl.ColorModeGrayscale8, false},
		{" Gray ", escl.ColorModeGrayscale8, false},
		{"bw", escl.ColorModeBlackAndWhite1, false},
		{"sepia", "", true},
	}
	for _, tt := range tests {
		got, err := parseColorMode(tt.in)
		if tt.wantErr {
			if !escl.IsValidationError(err) {
				t.Errorf("parseColorMode(%q) error = %v, want validation error", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseColorMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColorMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSourceSpellings(t *testing.T) {
	tests := []struct {
		in      string
		want    escl.Source
		wantErr bool
	}{
		{"platen", escl.SourcePlaten, false},
		{"Platen", escl.SourcePlaten, false},
		{"", escl.SourcePlaten, false},
		{"adf", escl.SourceFeeder, false},
		{"ADF", escl.SourceFeeder, false},
		{"feeder", escl.SourceFeeder, false},
		{"tray", "", true},
	}
	for _, tt := range tests {
		got, err := parseSource(tt.in)
		if tt.wantErr {
			if !escl.IsValidationError(err) {
				t.Errorf("parseSource(%q) error = %v, want validation error", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSource(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSource(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
