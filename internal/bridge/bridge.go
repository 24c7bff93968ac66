package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os/exec"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/okanis/esclscan/internal/escl"
	"github.com/okanis/esclscan/internal/logging"
)

const (
	// DefaultTimeout is the default discovery window
	DefaultTimeout = 5 * time.Second

	// DefaultGracePeriod is how long the helper gets to exit after an
	// exit command before it is force-killed
	DefaultGracePeriod = 1000 * time.Millisecond

	// maxLineBytes bounds a single helper IPC line
	maxLineBytes = 1024 * 1024
)

// Bridge obtains the current set of reachable scanners by running the
// external discovery helper. One Bridge exclusively owns its helper
// process handle for the duration of a discovery attempt.
type Bridge struct {
	backend backend
	logger  *zap.Logger

	// GracePeriod is the force-kill grace after requesting helper exit
	GracePeriod time.Duration

	mu       sync.Mutex
	registry map[string]escl.Device
	disabled bool
}

// New creates a Bridge, resolving the helper backend immediately.
// An unresolvable helper location is a startup error; everything that can
// go wrong later degrades to "zero devices found" instead.
func New(cfg Config, logger *zap.Logger) (*Bridge, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	be, err := selectBackend(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Discovery helper resolved", zap.String("backend", be.String()))

	return &Bridge{
		backend:     be,
		logger:      logger,
		GracePeriod: DefaultGracePeriod,
		registry:    make(map[string]escl.Device),
	}, nil
}

// Discover runs one discovery attempt and returns the scanners observed.
//
// The call resolves on whichever happens first: the timeout expiring or the
// first successful helper response. On the first response the helper is shut
// down immediately and the registry snapshot at that instant is returned;
// later announcements within the same window are not observed.
//
// Finding no devices is not an error. A helper that fails to spawn disables
// the bridge: this and all later attempts report zero devices.
func (b *Bridge) Discover(ctx context.Context, timeout time.Duration) ([]escl.Device, error) {
	b.mu.Lock()
	if b.disabled {
		b.mu.Unlock()
		b.logger.Debug("Discovery skipped, bridge disabled after spawn failure")
		return []escl.Device{}, nil
	}
	// Each attempt starts from an empty registry
	b.registry = make(map[string]escl.Device)
	b.mu.Unlock()

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cmd := b.backend.start(ctx)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return b.disable(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return b.disable(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return b.disable(err)
	}

	if err := cmd.Start(); err != nil {
		return b.disable(err)
	}

	b.logger.Info("Discovery helper started",
		zap.String("backend", b.backend.String()),
		zap.Duration("timeout", timeout),
	)

	firstResult := make(chan struct{}, 1)
	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		b.consume(stdout, firstResult)
	}()
	go func() {
		defer readers.Done()
		b.drainStderr(stderr)
	}()

	b.send(stdin, actionList)

	select {
	case <-firstResult:
		b.logger.Debug("Discovery resolved on first helper response")
	case <-time.After(timeout):
		b.logger.Debug("Discovery resolved on timeout")
	case <-ctx.Done():
		b.logger.Debug("Discovery canceled", zap.Error(ctx.Err()))
	}

	b.shutdown(cmd, stdin, &readers)

	devices := b.snapshot()
	b.logger.Info("Discovery complete", zap.Int("devices", len(devices)))
	return devices, nil
}

// disable marks the bridge unusable after a spawn failure. Discovery
// degrades to empty results rather than surfacing the failure.
func (b *Bridge) disable(err error) ([]escl.Device, error) {
	b.mu.Lock()
	b.disabled = true
	b.mu.Unlock()

	b.logger.Error("Discovery helper failed to start, disabling discovery",
		zap.String("backend", b.backend.String()),
		zap.Error(err),
	)
	return []escl.Device{}, nil
}

// consume reads helper stdout line by line. Success messages replace the
// registry wholesale and signal firstResult; error messages and malformed
// lines are logged and skipped without aborting the stream.
func (b *Bridge) consume(r io.Reader, firstResult chan<- struct{}) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		logging.LogHelperLine("received", line)

		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			b.logger.Debug("Skipping malformed helper line", zap.Error(err))
			continue
		}

		if !resp.Success {
			b.logger.Warn("Discovery helper reported error", zap.String("error", resp.Error))
			continue
		}

		b.replaceRegistry(resp.Scanners)

		select {
		case firstResult <- struct{}{}:
		default:
		}
	}
}

// drainStderr surfaces helper diagnostics at debug level
func (b *Bridge) drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4*1024), maxLineBytes)
	for scanner.Scan() {
		b.logger.Debug("Helper stderr", zap.String("line", scanner.Text()))
	}
}

// replaceRegistry installs the helper's full current device set.
// Messages carry the complete set, not a delta; duplicate names within one
// message collapse to the last announcement.
func (b *Bridge) replaceRegistry(scanners []helperScanner) {
	next := make(map[string]escl.Device, len(scanners))
	for _, s := range scanners {
		if s.Name == "" || s.Host == "" {
			continue
		}
		next[s.Name] = s.device()
		logging.LogScannerFound(s.Name, s.Host, s.Port)
	}

	b.mu.Lock()
	b.registry = next
	b.mu.Unlock()
}

// snapshot returns the registry contents sorted by name
func (b *Bridge) snapshot() []escl.Device {
	b.mu.Lock()
	defer b.mu.Unlock()

	devices := make([]escl.Device, 0, len(b.registry))
	for _, d := range b.registry {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	return devices
}

// send writes one command line to the helper
func (b *Bridge) send(w io.Writer, action string) {
	line, err := json.Marshal(command{Action: action})
	if err != nil {
		return
	}
	line = append(line, '\n')
	logging.LogHelperLine("sent", line)

	if _, err := w.Write(line); err != nil {
		b.logger.Debug("Failed to write helper command",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// shutdown asks the helper to exit and force-kills it after the grace
// period. The reader goroutines are joined before the process is reaped,
// since Wait closes the pipes they read from; the process handle is
// released on every path through here.
func (b *Bridge) shutdown(cmd *exec.Cmd, stdin io.WriteCloser, readers *sync.WaitGroup) {
	b.send(stdin, actionExit)
	_ = stdin.Close()

	drained := make(chan struct{})
	go func() {
		readers.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(b.GracePeriod):
		b.logger.Warn("Discovery helper did not exit in time, killing",
			zap.Duration("grace", b.GracePeriod),
		)
		_ = cmd.Process.Kill()
		<-drained
	}

	err := cmd.Wait()
	b.logger.Debug("Discovery helper exited", zap.Error(err))
}
