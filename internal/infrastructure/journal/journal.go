// Package journal persists activity and notification rows whose
// primary datastore write failed. Activity recording is best-effort
// relative to the mutation it describes; the journal keeps best-effort
// from meaning lossy when postgres has a bad moment.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/boardflow/backend/domain"
)

const bucketName = "activity"

// Record is one journaled activity write awaiting replay.
type Record struct {
	ID           string               `json:"id"`
	Entry        domain.ActivityEntry `json:"entry"`
	Notification domain.Notification  `json:"notification"`
	Retries      int                  `json:"retries"`
	Timestamp    time.Time            `json:"timestamp"`

	storeKey []byte
}

func (r *Record) normalize() {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	// Row ids are fixed at enqueue time so a replay that partially
	// succeeded retries with the same ids instead of minting new rows.
	if r.Entry.ID == "" {
		r.Entry.ID = uuid.NewString()
	}
	if r.Notification.ID == "" {
		r.Notification.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
}

// Store wraps BoltDB to hold journaled records until they replay.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucketName),
	}, nil
}

// Enqueue stores a record keyed by timestamp so replay is oldest-first.
func (s *Store) Enqueue(record Record) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	record.normalize()
	record.storeKey = []byte(fmt.Sprintf("%020d_%s", record.Timestamp.UnixNano(), record.ID))

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(record.storeKey, payload)
	})
}

// GetBatch returns up to limit records without removing them.
func (s *Store) GetBatch(limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(records) < limit; k, v = c.Next() {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				continue
			}
			record.storeKey = append([]byte(nil), k...)
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

// Remove deletes the provided record from the journal.
func (s *Store) Remove(record Record) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(record.storeKey) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(record.storeKey)
	})
}

// Requeue re-inserts a record after bumping its timestamp so it moves
// to the back of the replay order.
func (s *Store) Requeue(record Record) error {
	record.storeKey = nil
	record.Timestamp = time.Now()
	return s.Enqueue(record)
}

// Size returns the number of journaled records.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
