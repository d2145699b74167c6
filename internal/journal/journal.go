// Package journal keeps a small bbolt database recording the latest
// outcome for every clip tcsync has handled. It is an audit trail only:
// nothing reads it back to decide what to process.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var clipsBucket = []byte("clips")

// Status is the final state of one clip in a run.
type Status string

const (
	StatusCorrected  Status = "corrected"
	StatusSkipped    Status = "skipped"
	StatusIncomplete Status = "incomplete"
	StatusDryRun     Status = "dry-run"
)

// Entry is one clip's outcome, keyed by input path.
type Entry struct {
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Capture    string    `json:"capture"`
	Corrected  string    `json:"corrected"`
	Offset     string    `json:"offset"`
	Status     Status    `json:"status"`
	FailedStep string    `json:"failed_step,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Journal wraps an open bbolt database.
type Journal struct {
	db *bbolt.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(clipsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database file lock.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores e, replacing any earlier entry for the same input.
func (j *Journal) Record(e Entry) error {
	if e.Input == "" {
		return errors.New("journal entry without input path")
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(clipsBucket).Put([]byte(e.Input), data)
	})
}

// Get returns the entry for input, or false when none is recorded.
func (j *Journal) Get(input string) (Entry, bool, error) {
	var (
		e     Entry
		found bool
	)
	err := j.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(clipsBucket).Get([]byte(input))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &e)
	})
	return e, found, err
}

// Entries returns every recorded entry ordered by input path.
func (j *Journal) Entries() ([]Entry, error) {
	var out []Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(clipsBucket).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("entry %s: %w", k, err)
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}
