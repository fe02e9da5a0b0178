// Package uploads keeps uploaded signatures and generated documents on disk
// for a limited time so they can be downloaded once the request finished.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Defaults applied when the corresponding option is not set.
const (
	DefaultMaxBytes      = 10 << 20
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

var (
	// ErrNotFound is returned for unknown or expired ids.
	ErrNotFound = errors.New("uploads: file not found")
	// ErrTooLarge is returned when a file exceeds the size limit.
	ErrTooLarge = errors.New("uploads: file too large")
)

// File describes a stored file.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	path        string
}

// HumanSize renders Size for messages, e.g. "12 kB".
func (f File) HumanSize() string {
	return humanize.Bytes(uint64(f.Size))
}

// Option configures a Store.
type Option func(*Store)

// WithDir stores files below dir instead of a fresh temporary directory.
func WithDir(dir string) Option {
	return func(s *Store) {
		s.dir = dir
	}
}

// WithMaxBytes sets the per-file size limit. Zero or negative keeps the
// default.
func WithMaxBytes(limit int64) Option {
	return func(s *Store) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// WithTTL sets how long files are kept.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used by the janitor.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is a directory of transient files indexed by random ids.
type Store struct {
	dir      string
	owned    bool
	maxBytes int64
	ttl      time.Duration
	now      func() time.Time
	logger   logrus.FieldLogger

	mu    sync.Mutex
	files map[string]File
}

// New prepares the storage directory.
func New(options ...Option) (*Store, error) {
	s := &Store{
		maxBytes: DefaultMaxBytes,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   logrus.StandardLogger(),
		files:    make(map[string]File),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.dir == "" {
		dir, err := os.MkdirTemp("", "formdoc-uploads-")
		if err != nil {
			return nil, fmt.Errorf("uploads: create temp dir: %w", err)
		}
		s.dir = dir
		s.owned = true
	} else if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("uploads: create dir: %w", err)
	}
	return s, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Limit renders the size limit for messages.
func (s *Store) Limit() string {
	return humanize.Bytes(uint64(s.maxBytes))
}

// Save copies r into the store. Reading stops one byte past the limit, in
// which case ErrTooLarge is returned and nothing is kept.
func (s *Store) Save(name, contentType string, r io.Reader) (File, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return File{}, fmt.Errorf("uploads: create file: %w", err)
	}
	written, err := io.Copy(out, io.LimitReader(r, s.maxBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return File{}, fmt.Errorf("uploads: write file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return File{}, fmt.Errorf("%w: %s exceeds %s", ErrTooLarge, name, s.Limit())
	}

	file := File{
		ID:          id,
		Name:        filepath.Base(name),
		ContentType: contentType,
		Size:        written,
		CreatedAt:   s.now(),
		path:        path,
	}

	s.mu.Lock()
	s.files[id] = file
	s.mu.Unlock()
	return file, nil
}

// Get returns the metadata of id.
func (s *Store) Get(id string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[id]
	if !ok || s.expired(file) {
		return File{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return file, nil
}

// Open returns a reader for id. The caller closes it.
func (s *Store) Open(id string) (File, io.ReadCloser, error) {
	file, err := s.Get(id)
	if err != nil {
		return File{}, nil, err
	}
	f, err := os.Open(file.path)
	if errors.Is(err, os.ErrNotExist) {
		return File{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return File{}, nil, fmt.Errorf("uploads: open %s: %w", id, err)
	}
	return file, f, nil
}

// Read returns the content of id.
func (s *Store) Read(id string) (File, []byte, error) {
	file, rc, err := s.Open(id)
	if err != nil {
		return File{}, nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return File{}, nil, fmt.Errorf("uploads: read %s: %w", id, err)
	}
	return file, data, nil
}

// Delete removes id. Unknown ids return ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	file, ok := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := os.Remove(file.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("uploads: remove %s: %w", id, err)
	}
	return nil
}

// Len returns the number of tracked files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Sweep removes expired files and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	var expired []File
	for id, file := range s.files {
		if s.expired(file) {
			expired = append(expired, file)
			delete(s.files, id)
		}
	}
	s.mu.Unlock()

	for _, file := range expired {
		if err := os.Remove(file.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("id", file.ID).Warn("expired upload not removed")
		}
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.WithField("count", n).Debug("expired uploads removed")
			}
		}
	}
}

// Close forgets every file and removes the directory when the store created
// it.
func (s *Store) Close() error {
	s.mu.Lock()
	files := s.files
	s.files = make(map[string]File)
	s.mu.Unlock()

	if s.owned {
		if err := os.RemoveAll(s.dir); err != nil {
			return fmt.Errorf("uploads: remove dir: %w", err)
		}
		return nil
	}
	for _, file := range files {
		os.Remove(file.path)
	}
	return nil
}

func (s *Store) expired(file File) bool {
	return s.now().Sub(file.CreatedAt) > s.ttl
}
