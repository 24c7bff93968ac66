package session

import (
	"fmt"
	"strings"

	"github.com/okanis/esclscan/internal/escl"
)

// DefaultOutputDir receives scanned pages when no output directory is given
const DefaultOutputDir = "./scans"

// Request describes one scan in user terms. Mode and source are the
// user-facing spellings; they are translated to device identifiers during
// validation.
type Request struct {
	// Device is the scanner to drive
	Device *escl.Device

	// DPI is the scan resolution (must be positive)
	DPI int

	// Mode is the color mode: "bw", "gray", or "color" (default "color")
	Mode string

	// Source is the input source: "platen", "adf", or "feeder"
	// (default "platen")
	Source string

	// Format is the MIME type to request (default "image/jpeg")
	Format string

	// WidthMm and HeightMm bound the scan region in millimeters.
	// Zero means A4.
	WidthMm  float64
	HeightMm float64

	// OutputDir receives the scanned pages (default "./scans")
	OutputDir string
}

// settings validates the request and translates it into device settings.
// Validation failures never touch the network.
func (r Request) settings() (escl.Settings, error) {
	if r.Device == nil {
		return escl.Settings{}, escl.NewValidationError("no scanner specified")
	}
	if r.DPI <= 0 {
		return escl.Settings{}, escl.NewValidationError(fmt.Sprintf("resolution must be positive, got %d", r.DPI))
	}
	if r.WidthMm < 0 || r.HeightMm < 0 {
		return escl.Settings{}, escl.NewValidationError("scan region dimensions must not be negative")
	}

	mode, err := parseColorMode(r.Mode)
	if err != nil {
		return escl.Settings{}, err
	}
	source, err := parseSource(r.Source)
	if err != nil {
		return escl.Settings{}, err
	}

	return escl.Settings{
		DPI:            r.DPI,
		ColorMode:      mode,
		Source:         source,
		DocumentFormat: r.Format,
		WidthMm:        r.WidthMm,
		HeightMm:       r.HeightMm,
	}, nil
}

// outputDir returns the requested output directory or the default
func (r Request) outputDir() string {
	if r.OutputDir == "" {
		return DefaultOutputDir
	}
	return r.OutputDir
}

// parseColorMode translates a user-facing mode name to a device color mode
func parseColorMode(mode string) (escl.ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "color":
		return escl.ColorModeRGB24, nil
	case "gray":
		return escl.ColorModeGrayscale8, nil
	case "bw":
		return escl.ColorModeBlackAndWhite1, nil
	default:
		return "", escl.NewValidationError(fmt.Sprintf("unknown color mode %q (expected bw, gray, or color)", mode))
	}
}

// parseSource translates a user-facing source name to a device input source.
// Both "adf" and "feeder" name the automatic document feeder; the wire value
// is "Feeder" for either spelling.
func parseSource(source string) (escl.Source, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", "platen":
		return escl.SourcePlaten, nil
	case "adf", "feeder":
		return escl.SourceFeeder, nil
	default:
		return "", escl.NewValidationError(fmt.Sprintf("unknown source %q (expected platen, adf, or feeder)", source))
	}
}
