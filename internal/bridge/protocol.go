package bridge

import "github.com/okanis/esclscan/internal/escl"

// Helper IPC actions
const (
	actionList = "list"
	actionExit = "exit"
)

// command is one outbound request to the helper
type command struct {
	Action string `json:"action"`
}

// response is one inbound message from the helper
type response struct {
	Success  bool            `json:"success"`
	Scanners []helperScanner `json:"scanners,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// helperScanner is a scanner record as the helper reports it
type helperScanner struct {
	Name         string `json:"name"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Model        string `json:"model,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	// The helper reports the mDNS service type under "type"
	// (e.g., "_uscan._tcp.local.")
	ServiceType string `json:"type,omitempty"`
}

// device converts a helper record into a Device
func (h helperScanner) device() escl.Device {
	return escl.Device{
		Name:         h.Name,
		Host:         h.Host,
		Port:         h.Port,
		Model:        h.Model,
		Manufacturer: h.Manufacturer,
		ServiceName:  h.ServiceType,
	}
}
