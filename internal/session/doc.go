// Package session orchestrates a complete scan: job creation, warm-up,
// sequential page retrieval, persistence, and cleanup.
//
// A session is a linear pass over one device. The orchestrator validates the
// request before any device I/O, refuses to start while the scanner reports a
// non-idle state, creates the job, waits out the device's warm-up period, and
// then drains pages one at a time. Flatbed scans stop after the first page;
// feeder scans loop until the device reports the job empty. The job is
// deleted on the device exactly once on every exit path, and pages already
// written to disk are never removed when a later page fails.
package session
