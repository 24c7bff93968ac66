package escl

import (
	"encoding/xml"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Capabilities describes what a scanner supports, as parsed from its
// capabilities document. Recomputed on every query, never cached.
type Capabilities struct {
	// Resolutions lists supported DPI values, sorted ascending, no duplicates
	Resolutions []int

	// ColorModes lists supported color modes in first-seen order
	ColorModes []string

	// Sources lists supported input sources (e.g., "Platen", "Adf")
	Sources []string

	// DocumentFormats lists supported MIME types; defaults to
	// ["image/jpeg"] when the document names none
	DocumentFormats []string

	// MaxWidthMm and MaxHeightMm are the largest advertised scan region
	// in millimeters, or 0 when the document does not state them
	MaxWidthMm  int
	MaxHeightMm int
}

// SupportsSource reports whether the device advertises the given input source
func (c *Capabilities) SupportsSource(source Source) bool {
	for _, s := range c.Sources {
		if s == string(source) {
			return true
		}
	}
	return false
}

// ParseCapabilities parses a scanner capabilities document.
//
// Matching is tolerant of arbitrary XML namespace prefixes: only local
// element names are compared. Resolutions are preferred from
// DiscreteResolution entries; when a document lists none, any XResolution
// element is accepted as a fallback, since devices disagree on structure.
func ParseCapabilities(r io.Reader) (*Capabilities, error) {
	decoder := xml.NewDecoder(r)

	caps := &Capabilities{}

	var (
		strictResolutions []int
		looseResolutions  []int
		discreteDepth     int
		text              strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			text.Reset()
			switch t.Name.Local {
			case "DiscreteResolution":
				discreteDepth++
			case "Platen", "Adf", "Camera":
				caps.Sources = appendUnique(caps.Sources, t.Name.Local)
			}

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			text.Reset()

			switch t.Name.Local {
			case "DiscreteResolution":
				discreteDepth--
			case "XResolution":
				res, err := strconv.Atoi(value)
				if err != nil {
					continue
				}
				if discreteDepth > 0 {
					strictResolutions = append(strictResolutions, res)
				} else {
					looseResolutions = append(looseResolutions, res)
				}
			case "ColorMode":
				if value != "" {
					caps.ColorModes = appendUnique(caps.ColorModes, value)
				}
			case "InputSource":
				if value != "" {
					caps.Sources = appendUnique(caps.Sources, value)
				}
			case "DocumentFormat", "DocumentFormatExt":
				if value != "" {
					caps.DocumentFormats = appendUnique(caps.DocumentFormats, value)
				}
			case "MaxWidth":
				if mm := threeHundredthsToMm(value); mm > caps.MaxWidthMm {
					caps.MaxWidthMm = mm
				}
			case "MaxHeight":
				if mm := threeHundredthsToMm(value); mm > caps.MaxHeightMm {
					caps.MaxHeightMm = mm
				}
			}
		}
	}

	resolutions := strictResolutions
	if len(resolutions) == 0 {
		resolutions = looseResolutions
	}
	caps.Resolutions = sortedUnique(resolutions)

	if len(caps.DocumentFormats) == 0 {
		caps.DocumentFormats = []string{DefaultDocumentFormat}
	}

	return caps, nil
}

// threeHundredthsToMm converts an eSCL 1/300-inch dimension string to
// millimeters, rounded. Returns 0 for unparseable input.
func threeHundredthsToMm(value string) int {
	units, err := strconv.Atoi(value)
	if err != nil || units <= 0 {
		return 0
	}
	return int(math.Round(float64(units) / 300 * 25.4))
}

func sortedUnique(values []int) []int {
	if len(values) == 0 {
		return []int{}
	}
	sort.Ints(values)
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
