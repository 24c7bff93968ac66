package escl

import (
	"reflect"
	"strings"
	"testing"
)

const mockCapabilities = `<?xml version="1.0" encoding="UTF-8"?>
<scan:ScannerCapabilities xmlns:scan="http://schemas.hp.com/imaging/escl/2011/05/03" xmlns:pwg="http://www.pwg.org/schemas/2010/12/sm">
  <pwg:Version>2.63</pwg:Version>
  <scan:Platen>
    <scan:PlatenInputCaps>
      <scan:MaxWidth>2550</scan:MaxWidth>
      <scan:MaxHeight>3508</scan:MaxHeight>
      <scan:SettingProfiles>
        <scan:SettingProfile>
          <scan:ColorModes>
            <scan:ColorMode>Grayscale8</scan:ColorMode>
            <scan:ColorMode>RGB24</scan:ColorMode>
          </scan:ColorModes>
          <scan:DocumentFormats>
            <pwg:DocumentFormat>image/jpeg</pwg:DocumentFormat>
            <pwg:DocumentFormat>application/pdf</pwg:DocumentFormat>
            <scan:DocumentFormatExt>image/jpeg</scan:DocumentFormatExt>
          </scan:DocumentFormats>
          <scan:SupportedResolutions>
            <scan:DiscreteResolutions>
              <scan:DiscreteResolution>
                <scan:XResolution>600</scan:XResolution>
                <scan:YResolution>600</scan:YResolution>
              </scan:DiscreteResolution>
              <scan:DiscreteResolution>
                <scan:XResolution>200</scan:XResolution>
                <scan:YResolution>200</scan:YResolution>
              </scan:DiscreteResolution>
              <scan:DiscreteResolution>
                <scan:XResolution>600</scan:XResolution>
                <scan:YResolution>600</scan:YResolution>
              </scan:DiscreteResolution>
              <scan:DiscreteResolution>
                <scan:XResolution>300</scan:XResolution>
                <scan:YResolution>300</scan:YResolution>
              </scan:DiscreteResolution>
            </scan:DiscreteResolutions>
          </scan:SupportedResolutions>
        </scan:SettingProfile>
      </scan:SettingProfiles>
    </scan:PlatenInputCaps>
  </scan:Platen>
  <scan:Adf>
    <scan:AdfSimplexInputCaps>
      <scan:MaxWidth>2550</scan:MaxWidth>
      <scan:MaxHeight>4200</scan:MaxHeight>
    </scan:AdfSimplexInputCaps>
  </scan:Adf>
</scan:ScannerCapabilities>`

func TestParseCapabilities_ResolutionsSortedUnique(t *testing.T) {
	caps, err := ParseCapabilities(strings.NewReader(mockCapabilities))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	want := []int{200, 300, 600}
	if !reflect.DeepEqual(caps.Resolutions, want) {
		t.Errorf("Resolutions = %v, want %v", caps.Resolutions, want)
	}
}

func TestParseCapabilities_ColorModesAndSources(t *testing.T) {
	caps, err := ParseCapabilities(strings.NewReader(mockCapabilities))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	wantModes := []string{"Grayscale8", "RGB24"}
	if !reflect.DeepEqual(caps.ColorModes, wantModes) {
		t.Errorf("ColorModes = %v, want %v", caps.ColorModes, wantModes)
	}

	wantSources := []string{"Platen", "Adf"}
	if !reflect.DeepEqual(caps.Sources, wantSources) {
		t.Errorf("Sources = %v, want %v", caps.Sources, wantSources)
	}

	if !caps.SupportsSource(SourcePlaten) {
		t.Error("SupportsSource(Platen) = false, want true")
	}
	if caps.SupportsSource(SourceFeeder) {
		t.Error("SupportsSource(Feeder) = true, want false")
	}
}

func TestParseCapabilities_DocumentFormats(t *testing.T) {
	caps, err := ParseCapabilities(strings.NewReader(mockCapabilities))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	// DocumentFormatExt repeats image/jpeg; duplicates must collapse
	want := []string{"image/jpeg", "application/pdf"}
	if !reflect.DeepEqual(caps.DocumentFormats, want) {
		t.Errorf("DocumentFormats = %v, want %v", caps.DocumentFormats, want)
	}
}

func TestParseCapabilities_MaxDimensions(t *testing.T) {
	caps, err := ParseCapabilities(strings.NewReader(mockCapabilities))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	// 2550/300 inches = 8.5in = 215.9mm, rounds to 216
	if caps.MaxWidthMm != 216 {
		t.Errorf("MaxWidthMm = %d, want 216", caps.MaxWidthMm)
	}
	// Adf advertises the larger height: 4200/300in = 355.6mm -> 356
	if caps.MaxHeightMm != 356 {
		t.Errorf("MaxHeightMm = %d, want 356", caps.MaxHeightMm)
	}
}

func TestParseCapabilities_ArbitraryNamespacePrefixes(t *testing.T) {
	// Same structure under unfamiliar prefixes; matching is by local name
	doc := `<?xml version="1.0"?>
<ns1:ScannerCapabilities xmlns:ns1="urn:vendor:escl" xmlns:ns2="urn:vendor:pwg">
  <ns1:Platen/>
  <ns1:DiscreteResolution><ns1:XResolution>150</ns1:XResolution></ns1:DiscreteResolution>
  <ns1:ColorMode>BlackAndWhite1</ns1:ColorMode>
  <ns2:InputSource>Feeder</ns2:InputSource>
</ns1:ScannerCapabilities>`

	caps, err := ParseCapabilities(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	if !reflect.DeepEqual(caps.Resolutions, []int{150}) {
		t.Errorf("Resolutions = %v, want [150]", caps.Resolutions)
	}
	if !reflect.DeepEqual(caps.ColorModes, []string{"BlackAndWhite1"}) {
		t.Errorf("ColorModes = %v, want [BlackAndWhite1]", caps.ColorModes)
	}
	wantSources := []string{"Platen", "Feeder"}
	if !reflect.DeepEqual(caps.Sources, wantSources) {
		t.Errorf("Sources = %v, want %v", caps.Sources, wantSources)
	}
}

func TestParseCapabilities_NoNamespaces(t *testing.T) {
	doc := `<ScannerCapabilities>
  <Adf/>
  <DiscreteResolution><XResolution>300</XResolution></DiscreteResolution>
</ScannerCapabilities>`

	caps, err := ParseCapabilities(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	if !reflect.DeepEqual(caps.Resolutions, []int{300}) {
		t.Errorf("Resolutions = %v, want [300]", caps.Resolutions)
	}
}

func TestParseCapabilities_LooseResolutionFallback(t *testing.T) {
	// No DiscreteResolution wrapper at all; bare XResolution entries are
	// accepted as a fallback
	doc := `<scan:ScannerCapabilities xmlns:scan="urn:x">
  <scan:XResolution>600</scan:XResolution>
  <scan:XResolution>75</scan:XResolution>
  <scan:XResolution>600</scan:XResolution>
</scan:ScannerCapabilities>`

	caps, err := ParseCapabilities(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	want := []int{75, 600}
	if !reflect.DeepEqual(caps.Resolutions, want) {
		t.Errorf("Resolutions = %v, want %v", caps.Resolutions, want)
	}
}

func TestParseCapabilities_DefaultDocumentFormat(t *testing.T) {
	doc := `<ScannerCapabilities><Platen/></ScannerCapabilities>`

	caps, err := ParseCapabilities(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCapabilities() error = %v", err)
	}

	want := []string{"image/jpeg"}
	if !reflect.DeepEqual(caps.DocumentFormats, want) {
		t.Errorf("DocumentFormats = %v, want %v", caps.DocumentFormats, want)
	}
}

func TestParseCapabilities_MalformedXML(t *testing.T) {
	_, err := ParseCapabilities(strings.NewReader("<ScannerCapabilities><unclosed"))
	if err == nil {
		t.Error("ParseCapabilities() should return error for malformed XML")
	}
}
