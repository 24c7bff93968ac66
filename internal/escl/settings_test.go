package escl

import (
	"strings"
	"testing"
)

func TestMmToThreeHundredths(t *testing.T) {
	tests := []struct {
		mm   float64
		want int
	}{
		{210, 2480},  // A4 width
		{297, 3508},  // A4 height
		{215.9, 2550}, // US Letter width
		{25.4, 300},  // one inch
		{0, 0},
	}

	for _, tt := range tests {
		if got := MmToThreeHundredths(tt.mm); got != tt.want {
			t.Errorf("MmToThreeHundredths(%v) = %d, want %d", tt.mm, got, tt.want)
		}
	}
}

func TestSettingsDocument_A4Region(t *testing.T) {
	settings := Settings{
		DPI:       300,
		ColorMode: ColorModeGrayscale8,
		Source:    SourcePlaten,
		WidthMm:   210,
		HeightMm:  297,
	}

	doc := settings.Document()

	if !strings.Contains(doc, "<pwg:Width>2480</pwg:Width>") {
		t.Errorf("Document() missing A4 width in 1/300-inch units:\n%s", doc)
	}
	if !strings.Contains(doc, "<pwg:Height>3508</pwg:Height>") {
		t.Errorf("Document() missing A4 height in 1/300-inch units:\n%s", doc)
	}
}

func TestSettingsDocument_Defaults(t *testing.T) {
	settings := Settings{
		DPI:       300,
		ColorMode: ColorModeRGB24,
		Source:    SourceFeeder,
	}

	doc := settings.Document()

	// Width/height default to A4, format to image/jpeg
	if !strings.Contains(doc, "<pwg:Width>2480</pwg:Width>") {
		t.Error("Document() should default width to A4")
	}
	if !strings.Contains(doc, "<pwg:Height>3508</pwg:Height>") {
		t.Error("Document() should default height to A4")
	}
	if !strings.Contains(doc, "<pwg:DocumentFormat>image/jpeg</pwg:DocumentFormat>") {
		t.Error("Document() should default format to image/jpeg")
	}
}

func TestSettingsDocument_Fields(t *testing.T) {
	settings := Settings{
		DPI:            600,
		ColorMode:      ColorModeBlackAndWhite1,
		Source:         SourceAdf,
		DocumentFormat: "application/pdf",
	}

	doc := settings.Document()

	for _, want := range []string{
		"<pwg:InputSource>Adf</pwg:InputSource>",
		"<scan:ColorMode>BlackAndWhite1</scan:ColorMode>",
		"<scan:XResolution>600</scan:XResolution>",
		"<scan:YResolution>600</scan:YResolution>",
		"<pwg:DocumentFormat>application/pdf</pwg:DocumentFormat>",
		"<pwg:Version>2.0</pwg:Version>",
		`xmlns:scan="` + ScanNS + `"`,
		`xmlns:pwg="` + PwgNS + `"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Document() missing %q:\n%s", want, doc)
		}
	}
}

func TestSourceIsFeeder(t *testing.T) {
	if SourcePlaten.IsFeeder() {
		t.Error("Platen.IsFeeder() = true, want false")
	}
	if !SourceAdf.IsFeeder() {
		t.Error("Adf.IsFeeder() = false, want true")
	}
	if !SourceFeeder.IsFeeder() {
		t.Error("Feeder.IsFeeder() = false, want true")
	}
}
