package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okanis/esclscan/internal/escl"
	"github.com/okanis/esclscan/internal/logging"
)

const (
	// DefaultWarmupDelay is how long the device gets to spin up after job
	// creation before the first page request
	DefaultWarmupDelay = 5 * time.Second

	// DefaultPageRetryDelay is the pause between retries of a busy page
	DefaultPageRetryDelay = 1 * time.Second

	// DefaultMaxPageAttempts bounds retries of a single busy page
	DefaultMaxPageAttempts = 30

	// scannerStateIdle is the device state in which a new job may start
	scannerStateIdle = "Idle"
)

// Session runs scans against devices. The delays and retry bound are fixed
// per session; tests shorten them.
type Session struct {
	client *escl.Client
	logger *zap.Logger

	// WarmupDelay is the wait between job creation and the first page request
	WarmupDelay time.Duration

	// PageRetryDelay is the pause between retries of a busy page
	PageRetryDelay time.Duration

	// MaxPageAttempts bounds retries of a single busy page
	MaxPageAttempts int
}

// New creates a session orchestrator with the standard timing parameters
func New(client *escl.Client, logger *zap.Logger) *Session {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if client == nil {
		client = escl.NewClient(logger)
	}
	return &Session{
		client:          client,
		logger:          logger,
		WarmupDelay:     DefaultWarmupDelay,
		PageRetryDelay:  DefaultPageRetryDelay,
		MaxPageAttempts: DefaultMaxPageAttempts,
	}
}

// Result is a completed scan
type Result struct {
	// SessionID correlates the scan's log lines
	SessionID string

	// Pages are the saved page files, in scan order. A feeder scan that
	// finds no documents completes with zero pages.
	Pages []string

	// Source is the input source the scan used
	Source escl.Source
}

// Run executes one scan from job creation through cleanup.
//
// The flow is linear: validate, check the scanner is idle, create the job,
// wait out the warm-up, then request pages sequentially. A flatbed scan stops
// after one page. A feeder scan loops until the device reports the job
// drained, which is a normal completion even before the first page. The job
// is deleted on the device exactly once regardless of outcome, and pages
// already on disk stay there when a later page fails.
func (s *Session) Run(ctx context.Context, req Request) (*Result, error) {
	settings, err := req.settings()
	if err != nil {
		return nil, err
	}

	outputDir := req.outputDir()
	if err := ensureOutputDir(outputDir); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	device := req.Device
	logger := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("device", device.Name),
		zap.String("source", string(settings.Source)),
	)

	if state := s.client.GetScannerState(device); state != "" && state != scannerStateIdle {
		return nil, escl.NewDeviceUnavailableError(device.Name, "scanner is "+state)
	}

	job, err := s.client.CreateScanJob(device, settings)
	if err != nil {
		return nil, err
	}
	defer s.client.DeleteScanJob(device, job)

	logger.Info("Scan session started", zap.String("job_id", job.ID))

	if err := s.wait(ctx, s.WarmupDelay); err != nil {
		return nil, err
	}

	pages, err := s.drainPages(ctx, logger, device, job, settings, outputDir)
	if err != nil {
		return nil, err
	}

	logger.Info("Scan session complete", zap.Int("pages", len(pages)))
	return &Result{
		SessionID: sessionID,
		Pages:     pages,
		Source:    settings.Source,
	}, nil
}

// drainPages requests pages sequentially until the source is exhausted
func (s *Session) drainPages(ctx context.Context, logger *zap.Logger, device *escl.Device, job *escl.Job, settings escl.Settings, outputDir string) ([]string, error) {
	format := settings.DocumentFormat
	if format == "" {
		format = escl.DefaultDocumentFormat
	}
	timestamp := time.Now().Format(timestampLayout)
	multiPage := settings.Source.IsFeeder()
	pageURL := job.NextDocumentURL()

	pages := []string{}
	page := 1
	attempts := 0

	for {
		data, err := s.client.DownloadPage(device, pageURL, settings.Source)
		switch {
		case err == nil:
			path, err := writePage(outputDir, pageFileName(timestamp, page, multiPage, format), data)
			if err != nil {
				return nil, err
			}
			logger.Info("Page saved",
				zap.Int("page", page),
				zap.String("path", path),
				zap.Int("bytes", len(data)),
			)
			pages = append(pages, path)
			if !multiPage {
				return pages, nil
			}
			page++
			attempts = 0

		case errors.Is(err, escl.ErrNoMorePages):
			// The device's normal end-of-job signal. A feeder job may
			// drain before the first page (nothing was loaded), but a
			// flatbed job that produces no page at all captured nothing.
			if !multiPage && len(pages) == 0 {
				return nil, &escl.ScanError{
					Type:       escl.ErrTypeNoDocument,
					Message:    "scan produced no pages, verify a document is on the flatbed",
					StatusCode: 404,
					Device:     device.Name,
				}
			}
			return pages, nil

		case escl.IsDeviceBusy(err):
			attempts++
			if attempts >= s.MaxPageAttempts {
				logger.Warn("Page retry budget exhausted",
					zap.Int("page", page),
					zap.Int("attempts", attempts),
				)
				return nil, err
			}
			if err := s.wait(ctx, s.PageRetryDelay); err != nil {
				return nil, err
			}

		case escl.IsNoDocument(err):
			return nil, err

		default:
			if page == 1 {
				return nil, err
			}
			// A failure after pages have arrived ends the scan with what
			// was captured rather than discarding it
			logger.Warn("Page retrieval failed after partial capture",
				zap.Int("page", page),
				zap.Error(err),
			)
			return pages, nil
		}
	}
}

// wait sleeps for the given duration unless the context ends first
func (s *Session) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
