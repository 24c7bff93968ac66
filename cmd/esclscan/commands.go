package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okanis/esclscan/internal/bridge"
	"github.com/okanis/esclscan/internal/config"
	"github.com/okanis/esclscan/internal/escl"
	"github.com/okanis/esclscan/internal/logging"
	"github.com/okanis/esclscan/internal/session"
)

// Command flags
var (
	deviceHost      string
	devicePort      int
	helperDir       string
	interpreterPath string
	discoverTimeout int
	scanDPI         int
	scanMode        string
	scanSource      string
	scanFormat      string
	scanWidth       float64
	scanHeight      float64
	scanOutput      string
	httpTimeout     int
)

func init() {
	// Device address flags let every command bypass the registry
	rootCmd.PersistentFlags().StringVar(&deviceHost, "host", "", "Scanner host or IP (skips the registry lookup)")
	rootCmd.PersistentFlags().IntVar(&devicePort, "port", 80, "Scanner HTTP port")
	rootCmd.PersistentFlags().IntVar(&httpTimeout, "timeout", 0, "HTTP request timeout in seconds")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(scanCmd)
}

// discoverCmd finds scanners on the network and records them
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover eSCL scanners on the network",
	Long: `Discover eSCL scanners using the external mDNS helper process.

Found scanners are printed and recorded in the configuration file, so later
commands can address them by name.`,
	Example: `  # Discover with the configured window (default 5s)
  esclscan discover

  # Wait longer on slow networks
  esclscan discover --discover-timeout 15`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&helperDir, "helper-dir", "", "Directory holding the discovery helper")
	discoverCmd.Flags().StringVar(&interpreterPath, "interpreter", "", "Interpreter for the helper script")
	discoverCmd.Flags().IntVar(&discoverTimeout, "discover-timeout", 0, "Discovery window in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	cfg, timeout := discoverySettings(registry)

	b, err := bridge.New(cfg, logging.GetLogger())
	if err != nil {
		return fmt.Errorf("discovery helper unavailable: %w", err)
	}

	fmt.Printf("Discovering scanners (timeout: %s)...\n\n", timeout)

	devices, err := b.Discover(cmd.Context(), timeout)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No scanners found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the scanner is powered on and on the same network")
		fmt.Println("  - Check that the scanner advertises AirPrint scanning (eSCL)")
		fmt.Println("  - Try increasing --discover-timeout for slower networks")
		fmt.Println("  - Use --host to address the scanner directly")
		return nil
	}

	fmt.Printf("Found %d scanner(s):\n\n", len(devices))
	for i, d := range devices {
		fmt.Printf("%d. %s\n", i+1, d.Name)
		fmt.Printf("   Address: %s:%d\n", d.Host, d.Port)
		if d.Model != "" {
			fmt.Printf("   Model:   %s\n", d.Model)
		}
		if d.Manufacturer != "" {
			fmt.Printf("   Maker:   %s\n", d.Manufacturer)
		}
		fmt.Println()
	}

	registry.RecordDevices(devices)
	if err := registry.Save(); err != nil {
		logging.Warn("Could not save the scanner registry")
		fmt.Printf("Warning: could not record scanners: %v\n", err)
	}

	fmt.Println("Use 'esclscan capabilities <name>' to inspect a scanner")
	fmt.Println("Use 'esclscan scan <name>' to run a scan")
	return nil
}

// capabilitiesCmd inspects one scanner
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities [scanner]",
	Short: "Show a scanner's capabilities",
	Long: `Query a scanner's capabilities document and display the supported
resolutions, color modes, input sources, and document formats.

The scanner is addressed by its recorded name, or directly with --host.`,
	Example: `  # By recorded name
  esclscan capabilities "Canon MF743"

  # By address
  esclscan capabilities --host 192.168.1.50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapabilities,
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	device, err := resolveDevice(args)
	if err != nil {
		return err
	}

	client := newClient()
	fmt.Printf("Querying %s (%s:%d)...\n\n", device.Name, device.Host, device.Port)

	caps := client.GetCapabilities(device)
	if caps == nil {
		return fmt.Errorf("could not retrieve capabilities from %s:%d", device.Host, device.Port)
	}

	fmt.Printf("Resolutions (dpi): %s\n", joinInts(caps.Resolutions))
	fmt.Printf("Color modes:       %s\n", strings.Join(caps.ColorModes, ", "))
	fmt.Printf("Sources:           %s\n", strings.Join(caps.Sources, ", "))
	fmt.Printf("Formats:           %s\n", strings.Join(caps.DocumentFormats, ", "))
	if caps.MaxWidthMm > 0 && caps.MaxHeightMm > 0 {
		fmt.Printf("Max scan area:     %d x %d mm\n", caps.MaxWidthMm, caps.MaxHeightMm)
	}
	return nil
}

// scanCmd runs a scan and saves the pages
var scanCmd = &cobra.Command{
	Use:   "scan [scanner]",
	Short: "Scan a document",
	Long: `Run a scan on the given scanner and save the pages to disk.

Flatbed scans produce a single file. Feeder scans loop until the feeder is
empty and produce one file per page. Unset flags fall back to the
preferences in the configuration file.`,
	Example: `  # Flatbed scan with defaults
  esclscan scan "Canon MF743"

  # Double resolution grayscale from the document feeder
  esclscan scan "Canon MF743" --dpi 600 --mode gray --source adf

  # Scan a directly addressed device into a chosen directory
  esclscan scan --host 192.168.1.50 --output ~/Documents/scans`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanDPI, "dpi", 0, "Scan resolution in dpi")
	scanCmd.Flags().StringVar(&scanMode, "mode", "", "Color mode (bw, gray, color)")
	scanCmd.Flags().StringVar(&scanSource, "source", "", "Input source (platen, adf, feeder)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "", "Document format MIME type")
	scanCmd.Flags().Float64Var(&scanWidth, "width", 0, "Scan region width in millimeters (default A4)")
	scanCmd.Flags().Float64Var(&scanHeight, "height", 0, "Scan region height in millimeters (default A4)")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Output directory for scanned pages")
}

func runScan(cmd *cobra.Command, args []string) error {
	device, err := resolveDevice(args)
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	req := requestFromPreferences(registry.Preferences.Normalized(), device)

	fmt.Printf("Scanning on %s (%s:%d, %d dpi, %s, %s)...\n",
		device.Name, device.Host, device.Port, req.DPI, req.Mode, req.Source)

	s := session.New(newClient(), logging.GetLogger())
	result, err := s.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(result.Pages) == 0 {
		fmt.Println("Scan complete: the feeder was empty, no pages produced.")
		return nil
	}

	fmt.Printf("Scan complete: %d page(s) saved\n", len(result.Pages))
	for _, path := range result.Pages {
		fmt.Printf("  %s\n", path)
	}
	return nil
}

// discoverySettings merges discovery preferences with command flags
func discoverySettings(registry *config.Registry) (bridge.Config, time.Duration) {
	cfg := bridge.Config{HelperDir: helperDir, InterpreterPath: interpreterPath}
	timeout := time.Duration(discoverTimeout) * time.Second

	prefs := registry.Preferences.Normalized()
	if d := prefs.Discovery; d != nil {
		if cfg.HelperDir == "" {
			cfg.HelperDir = d.HelperDir
		}
		if cfg.InterpreterPath == "" {
			cfg.InterpreterPath = d.InterpreterPath
		}
		if timeout == 0 {
			timeout = time.Duration(d.TimeoutSeconds) * time.Second
		}
	}
	if timeout == 0 {
		timeout = bridge.DefaultTimeout
	}
	return cfg, timeout
}

// requestFromPreferences builds a scan request, letting flags override the
// stored preferences. Preferences are normalized first, so a hand-edited
// config with empty fields still falls back to the shipped defaults.
func requestFromPreferences(prefs config.Preferences, device *escl.Device) session.Request {
	req := session.Request{
		Device:    device,
		DPI:       scanDPI,
		Mode:      scanMode,
		Source:    scanSource,
		Format:    scanFormat,
		WidthMm:   scanWidth,
		HeightMm:  scanHeight,
		OutputDir: scanOutput,
	}
	if req.DPI == 0 {
		req.DPI = prefs.DPI
	}
	if req.Mode == "" {
		req.Mode = prefs.Mode
	}
	if req.Source == "" {
		req.Source = prefs.Source
	}
	if req.Format == "" {
		req.Format = prefs.DocumentFormat
	}
	if req.OutputDir == "" {
		req.OutputDir = prefs.OutputDir
	}
	return req
}

// resolveDevice finds the target scanner from --host or a recorded name
func resolveDevice(args []string) (*escl.Device, error) {
	if deviceHost != "" {
		name := deviceHost
		if len(args) > 0 {
			name = args[0]
		}
		return &escl.Device{Name: name, Host: deviceHost, Port: devicePort}, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("no scanner given: pass a recorded name or use --host")
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, err
	}
	device, ok := registry.Lookup(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown scanner %q: run 'esclscan discover' first or use --host", args[0])
	}
	return device, nil
}

// newClient builds the protocol client with the configured timeout
func newClient() *escl.Client {
	client := escl.NewClient(logging.GetLogger())
	if httpTimeout > 0 {
		client.SetTimeout(time.Duration(httpTimeout) * time.Second)
	}
	return client
}

// joinInts renders an int list for display
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
