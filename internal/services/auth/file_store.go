package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"museo/internal/fileutil"
)

const lockRetryDelay = 50 * time.Millisecond

// FileStore keeps credentials in a JSON object on disk. Access is serialized
// across processes with an advisory lock on a sibling ".lock" file.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore builds a FileStore at path. Nothing is created until Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	unlock, err := s.acquire(ctx, false)
	if err != nil {
		return "", false, err
	}
	defer unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("ensure credentials directory: %w", err)
	}
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		if err := fileutil.RemoveIfExists(s.path); err != nil {
			return fmt.Errorf("remove credentials: %w", err)
		}
		return nil
	}
	return s.write(values)
}

// Close is a no-op; the lock is only held for the duration of each call.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) acquire(ctx context.Context, exclusive bool) (func(), error) {
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = s.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = s.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("lock credentials: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock credentials: %s is held by another process", s.lock.Path())
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
