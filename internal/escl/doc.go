// Package escl implements a client for the eSCL (AirPrint) scan protocol.
//
// eSCL is the HTTP-based scan-control protocol used by AirPrint-class network
// scanners. This package covers the full job lifecycle against a single
// device: capability query, scan job creation, job status polling, page
// retrieval, and job deletion.
//
// # Usage Example
//
//	client := escl.NewClient(logger)
//	device := &escl.Device{Name: "Office MFP", Host: "10.0.0.5", Port: 80}
//
//	caps := client.GetCapabilities(device)
//	if caps != nil {
//	    fmt.Printf("Resolutions: %v\n", caps.Resolutions)
//	}
//
//	settings := escl.Settings{DPI: 300, ColorMode: escl.ColorModeGrayscale8, Source: escl.SourcePlaten}
//	job, err := client.CreateScanJob(device, settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.DeleteScanJob(device, job)
//
//	data, err := client.DownloadPage(device, job.NextDocumentURL(), settings.Source)
//
// # Error Handling
//
// Failures that the caller must act on (job creation, page retrieval) are
// returned as *ScanError values classified by the device's HTTP status-code
// semantics: 409 means the device is busy, 503 means it is unavailable, and
// a 500 on a feeder scan means no document is loaded. Read-only queries
// (capabilities, job status) never return errors; they degrade to nil or
// Unknown and log the cause.
//
// # Namespace Tolerance
//
// Real devices vary in the XML namespace prefixes they emit. All document
// parsing in this package matches on local element names only, so
// scan:ColorMode, pwg:ColorMode, and ColorMode are all recognized.
package escl
