package escl

import (
	"fmt"
	"math"
)

// eSCL XML namespaces
const (
	ScanNS = "http://schemas.hp.com/imaging/escl/2011/05/03"
	PwgNS  = "http://www.pwg.org/schemas/2010/12/sm"
)

// ColorMode is an eSCL color mode identifier
type ColorMode string

const (
	ColorModeBlackAndWhite1 ColorMode = "BlackAndWhite1"
	ColorModeGrayscale8     ColorMode = "Grayscale8"
	ColorModeRGB24          ColorMode = "RGB24"
)

// Source is an eSCL input source identifier
type Source string

const (
	SourcePlaten Source = "Platen"
	SourceAdf    Source = "Adf"
	SourceFeeder Source = "Feeder"
)

// IsFeeder reports whether the source is a multi-page document feeder.
// Both "Adf" and "Feeder" name the automatic document feeder; devices
// differ in which spelling they accept.
func (s Source) IsFeeder() bool {
	return s == SourceAdf || s == SourceFeeder
}

// A4 paper dimensions, used when a scan request does not specify a region
const (
	A4WidthMm  = 210
	A4HeightMm = 297
)

// DefaultDocumentFormat is the MIME type requested when none is specified
const DefaultDocumentFormat = "image/jpeg"

// Settings describes one scan request in device terms.
// WidthMm and HeightMm default to A4 when zero.
type Settings struct {
	// DPI is the scan resolution in dots per inch (applied to both axes)
	DPI int

	// ColorMode selects the pixel format
	ColorMode ColorMode

	// Source selects the input source (flatbed or feeder)
	Source Source

	// DocumentFormat is the MIME type to request (default "image/jpeg")
	DocumentFormat string

	// WidthMm and HeightMm define the scan region in millimeters
	WidthMm  float64
	HeightMm float64
}

// withDefaults returns a copy with unset fields filled in
func (s Settings) withDefaults() Settings {
	if s.WidthMm == 0 {
		s.WidthMm = A4WidthMm
	}
	if s.HeightMm == 0 {
		s.HeightMm = A4HeightMm
	}
	if s.DocumentFormat == "" {
		s.DocumentFormat = DefaultDocumentFormat
	}
	return s
}

// MmToThreeHundredths converts millimeters to the 1/300-inch units used by
// eSCL scan regions, rounding to the nearest unit.
func MmToThreeHundredths(mm float64) int {
	return int(math.Round(mm / 25.4 * 300))
}

// Document renders the namespaced ScanSettings XML document sent to the
// device when creating a scan job.
func (s Settings) Document() string {
	s = s.withDefaults()
	width := MmToThreeHundredths(s.WidthMm)
	height := MmToThreeHundredths(s.HeightMm)

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<scan:ScanSettings xmlns:scan="%s" xmlns:pwg="%s">
    <pwg:Version>2.0</pwg:Version>
    <scan:Intent>Document</scan:Intent>
    <pwg:ScanRegions>
        <pwg:ScanRegion>
            <pwg:ContentRegionUnits>escl:ThreeHundredthsOfInches</pwg:ContentRegionUnits>
            <pwg:XOffset>0</pwg:XOffset>
            <pwg:YOffset>0</pwg:YOffset>
            <pwg:Width>%d</pwg:Width>
            <pwg:Height>%d</pwg:Height>
        </pwg:ScanRegion>
    </pwg:ScanRegions>
    <scan:Justification>
        <pwg:XImagePosition>Center</pwg:XImagePosition>
        <pwg:YImagePosition>Center</pwg:YImagePosition>
    </scan:Justification>
    <pwg:InputSource>%s</pwg:InputSource>
    <scan:ColorMode>%s</scan:ColorMode>
    <scan:XResolution>%d</scan:XResolution>
    <scan:YResolution>%d</scan:YResolution>
    <pwg:DocumentFormat>%s</pwg:DocumentFormat>
</scan:ScanSettings>`,
		ScanNS, PwgNS, width, height, s.Source, s.ColorMode, s.DPI, s.DPI, s.DocumentFormat)
}
