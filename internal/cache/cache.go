// Package cache keeps the last fetched snapshot of every server in a bbolt
// file so the terminal client can print a timetable while offline.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/client"
	"github.com/ytget/timetable-viewer/internal/model"
)

// ErrNotFound is returned when no snapshot was stored for a server
var ErrNotFound = errors.New("no cached snapshot")

var snapshotsBucket = []byte("Snapshots")

// openTimeout bounds the wait for the file lock held by another process
const openTimeout = time.Second

// Entry is one stored snapshot
type Entry struct {
	Server    string          `json:"server"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Snapshot  *model.Snapshot `json:"snapshot"`
}

// Store is a snapshot cache backed by a bbolt database
type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

// DefaultPath returns the per-user location of the cache file
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "timetable-viewer", "snapshots.db")
}

// Open opens (or creates) the cache file
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the file lock
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the snapshot of a server, replacing the previous one
func (s *Store) Save(server string, snapshot *model.Snapshot) error {
	entry := Entry{Server: server, FetchedAt: s.now().UTC(), Snapshot: snapshot}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(server), data)
	})
}

// Load returns the last snapshot stored for a server
func (s *Store) Load(server string) (*Entry, error) {
	var entry Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(snapshotsBucket).Get([]byte(server))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &entry)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w for %s", ErrNotFound, server)
		}
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}
	return &entry, nil
}

// Servers lists the servers with a stored snapshot, in key order
func (s *Store) Servers() ([]string, error) {
	var servers []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).ForEach(func(k, _ []byte) error {
			servers = append(servers, string(k))
			return nil
		})
	})
	return servers, err
}

// Recorder is a client.API that stores every fetched snapshot.
// Cache write failures are logged and never fail the fetch.
type Recorder struct {
	client.API

	store  *Store
	server string
	logger *zap.Logger
}

// NewRecorder wraps api so that snapshots of server are written to store
func NewRecorder(api client.API, store *Store, server string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{API: api, store: store, server: server, logger: logger}
}

// FetchSnapshot fetches through the wrapped API and records the result
func (r *Recorder) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snapshot, err := r.API.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(r.server, snapshot); err != nil {
		r.logger.Warn("failed to cache snapshot", zap.String("server", r.server), zap.Error(err))
	}
	return snapshot, nil
}
