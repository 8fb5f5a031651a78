package polyarea

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const runKeyPrefix = "run:"

// RunRecord is one journaled estimation
type RunRecord struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Vertices int       `json:"vertices"`
	Result   Result    `json:"result"`
}

// Journal is an append-only record of completed estimations backed by a
// Badger key-value store. Keys are "run:<unixnano>:<uuid>" so a prefix
// scan walks runs in time order.
type Journal struct {
	db *badger.DB
}

// OpenJournal opens (or creates) a journal at dir. An empty dir opens
// an in-memory journal that is discarded on Close.
func OpenJournal(dir string) (*Journal, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else {
		opts.NumVersionsToKeep = 1
		opts.CompactL0OnClose = true
	}
	opts.Logger = badgerLogger{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record appends a completed estimation and returns the stored record
func (j *Journal) Record(res Result, vertices int) (RunRecord, error) {
	rec := RunRecord{
		ID:       uuid.NewString(),
		At:       time.Now().UTC(),
		Vertices: vertices,
		Result:   res,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return RunRecord{}, err
	}

	key := fmt.Sprintf("%s%020d:%s", runKeyPrefix, rec.At.UnixNano(), rec.ID)
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return RunRecord{}, fmt.Errorf("journal record: %w", err)
	}

	return rec, nil
}

// Recent returns up to n records, newest first
func (j *Journal) Recent(n int) ([]RunRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	var raws [][]byte
	err := j.db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.Reverse = true

		it := txn.NewIterator(iopts)
		defer it.Close()

		prefix := []byte(runKeyPrefix)
		// Reverse iteration starts just past the last possible run key
		for it.Seek(append(prefix, 0xff)); it.ValidForPrefix(prefix) && len(raws) < n; it.Next() {
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			raws = append(raws, raw)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal recent: %w", err)
	}

	recs := lo.FilterMap(raws, func(raw []byte, _ int) (RunRecord, bool) {
		var rec RunRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Warnf("journal: skipping corrupt record: %v", err)
			return RunRecord{}, false
		}
		return rec, true
	})
	return recs, nil
}

// Close flushes and closes the underlying store
func (j *Journal) Close() error {
	return j.db.Close()
}

// badgerLogger routes badger's internal logging into logrus, demoting
// its info chatter to debug
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, args ...any)   { log.Errorf(f, args...) }
func (badgerLogger) Warningf(f string, args ...any) { log.Warnf(f, args...) }
func (badgerLogger) Infof(f string, args ...any)    { log.Debugf(f, args...) }
func (badgerLogger) Debugf(f string, args ...any)   { log.Debugf(f, args...) }
