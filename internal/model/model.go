package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sys/unix"
)

const (
	defaultDownloadTimeout = 5 * time.Minute
	lockRetryDelay         = 250 * time.Millisecond
)

// ErrInsufficientSpace indicates the model directory's filesystem lacks room
// for the download.
var ErrInsufficientSpace = errors.New("insufficient disk space")

// Manager installs and locates the offline model package.
type Manager struct {
	dir         string
	downloadURL string
	minFreeGiB  int
	client      *http.Client
	logger      *slog.Logger
	statfs      func(path string) (uint64, error)
	progress    bool
}

// Option customizes the manager.
type Option func(*Manager)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.client = client
		}
	}
}

// WithLogger overrides the default discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStatfs overrides free-space detection (useful for tests).
func WithStatfs(statfs func(path string) (uint64, error)) Option {
	return func(m *Manager) {
		if statfs != nil {
			m.statfs = statfs
		}
	}
}

// WithProgress forces the progress bar on or off. The default shows it only
// on a terminal.
func WithProgress(show bool) Option {
	return func(m *Manager) {
		m.progress = show
	}
}

// NewManager constructs a model manager for the given directory and source URL.
func NewManager(dir, downloadURL string, minFreeGiB int, timeout time.Duration, opts ...Option) *Manager {
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	m := &Manager{
		dir:         dir,
		downloadURL: strings.TrimSpace(downloadURL),
		minFreeGiB:  minFreeGiB,
		client:      &http.Client{Timeout: timeout},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		statfs:      realStatfs,
		progress:    isatty.IsTerminal(os.Stderr.Fd()),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns where the installed model package lives.
func (m *Manager) Path() (string, error) {
	name, err := m.fileName()
	if err != nil {
		return "", err
	}
	return filepath.Join(m.dir, name), nil
}

// Installed reports whether the model package is already present.
func (m *Manager) Installed() (bool, error) {
	path, err := m.Path()
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat model: %w", err)
	}
	return info.Size() > 0, nil
}

// Ensure downloads and installs the model package unless it is already
// present. Concurrent callers serialize on a file lock; the loser of the
// race finds the model installed and returns without downloading.
func (m *Manager) Ensure(ctx context.Context) error {
	if installed, err := m.Installed(); err != nil {
		return err
	} else if installed {
		return nil
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	if err := m.checkFreeSpace(); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(m.dir, ".install.lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire install lock: %w", err)
	}
	if !locked {
		return errors.New("acquire install lock: not acquired")
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have finished the install while we waited.
	if installed, err := m.Installed(); err != nil {
		return err
	} else if installed {
		return nil
	}

	return m.download(ctx)
}

func (m *Manager) download(ctx context.Context) error {
	target, err := m.Path()
	if err != nil {
		return err
	}

	m.logger.Info("downloading model package", "url", m.downloadURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.downloadURL, nil)
	if err != nil {
		return fmt.Errorf("download model: new request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download model: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download model: unexpected status %d", resp.StatusCode)
	}

	tempPath := target + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("download model: create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	var dst io.Writer = file
	if m.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading model")
		dst = io.MultiWriter(file, bar)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		_ = file.Close()
		return fmt.Errorf("download model: write: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("download model: close temp file: %w", err)
	}

	if err := os.Rename(tempPath, target); err != nil {
		return fmt.Errorf("install model: %w", err)
	}

	m.logger.Info("model package installed", "path", target)
	return nil
}

func (m *Manager) checkFreeSpace() error {
	if m.minFreeGiB <= 0 {
		return nil
	}
	free, err := m.statfs(m.dir)
	if err != nil {
		return fmt.Errorf("check free space: %w", err)
	}
	required := uint64(m.minFreeGiB) << 30
	if free < required {
		return fmt.Errorf("%w: %d bytes free in %s, need %d", ErrInsufficientSpace, free, m.dir, required)
	}
	return nil
}

func (m *Manager) fileName() (string, error) {
	if m.downloadURL == "" {
		return "", errors.New("model download url not configured")
	}
	parsed, err := url.Parse(m.downloadURL)
	if err != nil {
		return "", fmt.Errorf("parse model url: %w", err)
	}
	name := filepath.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("model url %q has no file name", m.downloadURL)
	}
	return name, nil
}

func realStatfs(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
