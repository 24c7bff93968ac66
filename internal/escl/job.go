package escl

// JobState represents the device-reported state of a scan job
type JobState int

const (
	// JobStateProcessing means the device is still producing pages
	JobStateProcessing JobState = iota
	// JobStateCompleted means all pages have been produced
	JobStateCompleted
	// JobStateAborted means the device gave up on the job
	JobStateAborted
	// JobStateUnknown means the state text was missing or unrecognized
	JobStateUnknown
)

// String returns a human-readable name for the job state
func (s JobState) String() string {
	switch s {
	case JobStateProcessing:
		return "Processing"
	case JobStateCompleted:
		return "Completed"
	case JobStateAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// parseJobState maps device state vocabulary onto the JobState set.
// Devices report Pending before the first page and either Aborted or
// Canceled on failure; the distinction does not matter to callers.
func parseJobState(text string) JobState {
	switch text {
	case "Pending", "Processing":
		return JobStateProcessing
	case "Completed":
		return JobStateCompleted
	case "Aborted", "Canceled":
		return JobStateAborted
	default:
		return JobStateUnknown
	}
}

// Job identifies one scan job on a device. The URL is derived from the
// Location header at creation time and never changes; all status, page,
// and delete operations address exactly this URL.
type Job struct {
	// ID is the opaque job token extracted from the device response
	ID string

	// URL is the absolute job URL on the device
	URL string
}

// NextDocumentURL returns the page-retrieval URL for the job
func (j *Job) NextDocumentURL() string {
	return j.URL + "/NextDocument"
}

// JobStatus is the parsed result of a job status query
type JobStatus struct {
	// State is the device-reported job state
	State JobState

	// PageURIs lists the page locations present in the status document,
	// in document order (may be empty)
	PageURIs []string
}
