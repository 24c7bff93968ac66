package escl

import "fmt"

// Device represents a network scanner reachable over the eSCL protocol.
// Devices are produced by discovery and are immutable once returned;
// the Name is the unique key within one discovery attempt.
type Device struct {
	// Name is the scanner's mDNS instance name with the service suffix
	// stripped (e.g., "Canon iR-ADV C3525")
	Name string

	// Host is the IPv4 address or hostname (e.g., "10.0.0.5")
	Host string

	// Port is the eSCL HTTP port (typically 80 or 8080)
	Port int

	// Model is the device model string, if advertised
	Model string

	// Manufacturer is the device manufacturer, if advertised
	Manufacturer string

	// ServiceName is the mDNS service type the device was found under
	// (e.g., "_uscan._tcp.local.")
	ServiceName string
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s:%d)", d.Name, d.Host, d.Port)
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", d.Host, d.Port)
}
