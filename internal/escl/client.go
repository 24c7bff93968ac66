package escl

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okanis/esclscan/internal/logging"
)

const (
	// DefaultTimeout is the default per-request HTTP timeout
	DefaultTimeout = 10 * time.Second

	// capabilitiesPath is the scanner capabilities endpoint
	capabilitiesPath = "/eSCL/ScannerCapabilities"

	// statusPath is the scanner status endpoint
	statusPath = "/eSCL/ScannerStatus"

	// jobsPath is the scan job creation endpoint
	jobsPath = "/eSCL/ScanJobs"
)

// Client drives scanner devices through the eSCL HTTP protocol.
// It is stateless across calls except for the configured request timeout;
// every call opens a fresh connection bounded by that timeout.
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	logger *zap.Logger
}

// NewClient creates a new eSCL protocol client
func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
}

// SetTimeout sets the per-request HTTP timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// GetCapabilities retrieves and parses the scanner capabilities document.
// Returns nil on any transport or parse failure; the failure is logged with
// the device name but never surfaced, since capability queries are advisory.
func (c *Client) GetCapabilities(device *Device) *Capabilities {
	url := device.BaseURL() + capabilitiesPath
	logging.LogDeviceRequest(device.Name, "GET", url)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		c.logger.Warn("Capabilities request failed",
			zap.String("device", device.Name),
			zap.Error(err),
		)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Capabilities request rejected",
			zap.String("device", device.Name),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil
	}

	caps, err := ParseCapabilities(resp.Body)
	if err != nil {
		c.logger.Warn("Capabilities document unparseable",
			zap.String("device", device.Name),
			zap.Error(err),
		)
		return nil
	}

	c.logger.Info("Capabilities parsed",
		zap.String("device", device.Name),
		zap.Ints("resolutions", caps.Resolutions),
		zap.Strings("color_modes", caps.ColorModes),
		zap.Strings("sources", caps.Sources),
	)
	return caps
}

// GetScannerState retrieves the scanner's own state text (e.g., "Idle",
// "Processing", "Stopped"). Returns "" when the state cannot be determined,
// which callers treat as unknown rather than an error.
func (c *Client) GetScannerState(device *Device) string {
	url := device.BaseURL() + statusPath
	logging.LogDeviceRequest(device.Name, "GET", url)

	resp, err := c.HTTPClient.Get(url)
	if err != nil {
		c.logger.Debug("Scanner status request failed",
			zap.String("device", device.Name),
			zap.Error(err),
		)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	return parseScannerState(resp.Body)
}

// CreateScanJob creates a scan job on the device and returns its identity.
//
// Failures are classified by the device's HTTP status semantics: 409 means
// another job is in progress (DeviceBusy), 503 means the device cannot accept
// jobs (DeviceUnavailable), and 500 on a feeder scan means the feeder is
// empty (NoDocument). Everything else is a transport error. Classified errors
// are always returned, since job creation is where the caller decides
// whether to retry.
func (c *Client) CreateScanJob(device *Device, settings Settings) (*Job, error) {
	url := device.BaseURL() + jobsPath
	document := settings.Document()

	logging.LogDeviceRequest(device.Name, "POST", url)
	c.logger.Debug("Scan settings document",
		zap.String("device", device.Name),
		zap.String("document", document),
	)

	resp, err := c.HTTPClient.Post(url, "text/xml", strings.NewReader(document))
	if err != nil {
		return nil, NewTransportError(device.Name, "scan job request failed", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogDeviceResponse(device.Name, url, resp.StatusCode, 0)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, classifyJobCreation(device, settings.Source, resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return nil, NewProtocolError(device.Name, "scanner did not return a job location")
	}

	// Relative job locations are resolved against the device base URL;
	// the resulting URL is addressed verbatim for the rest of the job's life.
	jobURL := location
	if strings.HasPrefix(location, "/") {
		jobURL = device.BaseURL() + location
	}
	jobURL = strings.TrimRight(jobURL, "/")

	id := jobURL[strings.LastIndex(jobURL, "/")+1:]
	if id == "" {
		return nil, NewProtocolError(device.Name, "scanner returned a job location without an identifier")
	}

	c.logger.Info("Scan job created",
		zap.String("device", device.Name),
		zap.String("job_id", id),
		zap.String("job_url", jobURL),
	)
	return &Job{ID: id, URL: jobURL}, nil
}

// classifyJobCreation maps a job-creation failure status onto the error taxonomy
func classifyJobCreation(device *Device, source Source, statusCode int) *ScanError {
	switch {
	case statusCode == http.StatusConflict:
		return NewDeviceBusyError(device.Name, "device processing another job")
	case statusCode == http.StatusInternalServerError && source.IsFeeder():
		return NewNoDocumentError(device.Name)
	case statusCode == http.StatusServiceUnavailable:
		return NewDeviceUnavailableError(device.Name, "device cannot accept scan jobs")
	default:
		return NewTransportError(device.Name, "scan job creation rejected", statusCode, nil)
	}
}

// GetScanJobStatus retrieves the state and page locations of a job.
// Never fails: any transport or parse problem yields JobStateUnknown with
// no page URIs.
func (c *Client) GetScanJobStatus(device *Device, job *Job) JobStatus {
	logging.LogDeviceRequest(device.Name, "GET", job.URL)

	resp, err := c.HTTPClient.Get(job.URL)
	if err != nil {
		c.logger.Debug("Job status request failed",
			zap.String("device", device.Name),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return JobStatus{State: JobStateUnknown}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return JobStatus{State: JobStateUnknown}
	}

	return parseJobStatusDocument(resp.Body)
}

// DownloadPage fetches one page of scan output from the given page URL.
//
// A 404 is reported as ErrNoMorePages, which is the device's way of saying
// the job is drained. A 409 means the page is still being produced
// (DeviceBusy, retryable). A 500 on a feeder scan means the feeder ran out
// of documents. Anything else is a transport error.
func (c *Client) DownloadPage(device *Device, pageURL string, source Source) ([]byte, error) {
	logging.LogDeviceRequest(device.Name, "GET", pageURL)

	resp, err := c.HTTPClient.Get(pageURL)
	if err != nil {
		return nil, NewTransportError(device.Name, "page download failed", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, NewTransportError(device.Name, "page download interrupted", resp.StatusCode, err)
		}
		logging.LogDeviceResponse(device.Name, pageURL, resp.StatusCode, len(data))
		return data, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoMorePages

	case resp.StatusCode == http.StatusConflict:
		return nil, NewDeviceBusyError(device.Name, "device still producing page")

	case resp.StatusCode == http.StatusInternalServerError && source.IsFeeder():
		return nil, NewNoDocumentError(device.Name)

	default:
		return nil, NewTransportError(device.Name, "page download rejected", resp.StatusCode, nil)
	}
}

// DeleteScanJob deletes a job on the device. Best-effort: scanners discard
// completed jobs on their own, so failures are logged and swallowed.
func (c *Client) DeleteScanJob(device *Device, job *Job) {
	logging.LogDeviceRequest(device.Name, "DELETE", job.URL)

	req, err := http.NewRequest(http.MethodDelete, job.URL, nil)
	if err != nil {
		return
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Debug("Job deletion attempted (device unreachable)",
			zap.String("device", device.Name),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Job deletion complete",
		zap.String("device", device.Name),
		zap.String("job_id", job.ID),
		zap.Int("status_code", resp.StatusCode),
	)
}

// parseScannerState extracts the first State element text from a scanner
// status document, matching local names only.
func parseScannerState(r io.Reader) string {
	decoder := xml.NewDecoder(r)
	var text strings.Builder
	inState := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "State" {
				inState = true
				text.Reset()
			}
		case xml.CharData:
			if inState {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "State" {
				return strings.TrimSpace(text.String())
			}
		}
	}
}

// parseJobStatusDocument extracts the job state and page locations from a
// job status document, matching local names only.
func parseJobStatusDocument(r io.Reader) JobStatus {
	decoder := xml.NewDecoder(r)

	status := JobStatus{State: JobStateUnknown}
	var (
		text    strings.Builder
		capture bool
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			// Partial documents keep whatever was parsed before the error
			return status
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "JobState", "ImageURI", "DocumentURI":
				capture = true
				text.Reset()
			}
		case xml.CharData:
			if capture {
				text.Write(t)
			}
		case xml.EndElement:
			if !capture {
				continue
			}
			value := strings.TrimSpace(text.String())
			switch t.Name.Local {
			case "JobState":
				status.State = parseJobState(value)
				capture = false
			case "ImageURI", "DocumentURI":
				if value != "" {
					status.PageURIs = append(status.PageURIs, value)
				}
				capture = false
			}
		}
	}
}
