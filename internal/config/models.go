package config

import (
	"time"

	"github.com/okanis/esclscan/internal/escl"
)

// Registry represents the entire configuration file: known scanners plus
// application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Scanners    map[string]*Scanner `yaml:"scanners,omitempty"` // Keyed by scanner name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Scanner is the stored record of a discovered scanner. Rediscovery
// overwrites the record, so the address reflects the most recent sighting.
type Scanner struct {
	Host         string    `yaml:"host"`
	Port         int       `yaml:"port"`
	Model        string    `yaml:"model,omitempty"`
	Manufacturer string    `yaml:"manufacturer,omitempty"`
	ServiceName  string    `yaml:"service_name,omitempty"` // mDNS service type as reported
	LastSeen     time.Time `yaml:"last_seen,omitempty"`
}

// Preferences are the default scan parameters applied when a request leaves
// them unset.
type Preferences struct {
	DPI            int             `yaml:"dpi"`
	Mode           string          `yaml:"mode"`   // bw, gray, or color
	Source         string          `yaml:"source"` // platen, adf, or feeder
	DocumentFormat string          `yaml:"document_format"`
	OutputDir      string          `yaml:"output_dir"`
	Discovery      *DiscoveryPrefs `yaml:"discovery,omitempty"`
}

// DiscoveryPrefs locate the discovery helper and bound its runtime
type DiscoveryPrefs struct {
	HelperDir       string `yaml:"helper_dir,omitempty"`
	InterpreterPath string `yaml:"interpreter_path,omitempty"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// NewRegistry creates a new Registry with default values
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Scanners: make(map[string]*Scanner),
		Preferences: &Preferences{
			DPI:            300,
			Mode:           "color",
			Source:         "platen",
			DocumentFormat: "image/jpeg",
			OutputDir:      "./scans",
			Discovery: &DiscoveryPrefs{
				TimeoutSeconds: 5,
			},
		},
	}
}

// Normalized returns a copy of the preferences with unset fields filled
// from the shipped defaults. Hand-edited config files may leave individual
// fields empty or drop the whole section. Safe on a nil receiver.
func (p *Preferences) Normalized() Preferences {
	defaults := NewRegistry().Preferences
	if p == nil {
		return *defaults
	}

	out := *p
	if out.DPI <= 0 {
		out.DPI = defaults.DPI
	}
	if out.Mode == "" {
		out.Mode = defaults.Mode
	}
	if out.Source == "" {
		out.Source = defaults.Source
	}
	if out.DocumentFormat == "" {
		out.DocumentFormat = defaults.DocumentFormat
	}
	if out.OutputDir == "" {
		out.OutputDir = defaults.OutputDir
	}
	if out.Discovery == nil {
		out.Discovery = defaults.Discovery
	}
	return out
}

// GetScanner retrieves a stored scanner by name.
// Returns nil if the scanner is not in the registry.
func (r *Registry) GetScanner(name string) *Scanner {
	return r.Scanners[name]
}

// RecordDevices stores the given discovery results, overwriting any existing
// record of the same name and stamping the sighting time.
func (r *Registry) RecordDevices(devices []escl.Device) {
	if r.Scanners == nil {
		r.Scanners = make(map[string]*Scanner)
	}

	now := time.Now()
	for _, d := range devices {
		r.Scanners[d.Name] = &Scanner{
			Host:         d.Host,
			Port:         d.Port,
			Model:        d.Model,
			Manufacturer: d.Manufacturer,
			ServiceName:  d.ServiceName,
			LastSeen:     now,
		}
	}
}

// Lookup resolves a stored scanner name to a device address.
// The second return reports whether the name is known.
func (r *Registry) Lookup(name string) (*escl.Device, bool) {
	s, ok := r.Scanners[name]
	if !ok {
		return nil, false
	}
	return &escl.Device{
		Name:         name,
		Host:         s.Host,
		Port:         s.Port,
		Model:        s.Model,
		Manufacturer: s.Manufacturer,
		ServiceName:  s.ServiceName,
	}, true
}
