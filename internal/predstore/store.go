// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package predstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/metrics"
	"github.com/tomtom215/cfpredict/internal/recommend"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("prediction store is closed")

// keyPrefix namespaces prediction entries.
const keyPrefix = "pred:"

// BadgerStore persists predictions in BadgerDB, keyed by the training data
// fingerprint and the query. It implements recommend.PredictionStore.
type BadgerStore struct {
	db     *badger.DB
	config Config
	prefix []byte
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg. Entries written
// under a different fingerprint are never returned.
func Open(cfg *Config, fingerprint uint64) (*BadgerStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prediction store config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.InMemory = cfg.InMemory
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		config: *cfg,
		prefix: []byte(fmt.Sprintf("%s%016x:", keyPrefix, fingerprint)),
		logger: logging.WithComponent("predstore"),
	}

	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Str("fingerprint", fmt.Sprintf("%016x", fingerprint)).
		Dur("ttl", cfg.TTL).
		Msg("prediction store opened")
	return s, nil
}

func (s *BadgerStore) key(q recommend.Query) []byte {
	return fmt.Appendf(append([]byte(nil), s.prefix...), "%d:%d", q.UserID, q.MovieID)
}

func (s *BadgerStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Load returns the persisted prediction for q, if present and unexpired.
func (s *BadgerStore) Load(ctx context.Context, q recommend.Query) (recommend.Prediction, bool, error) {
	if err := ctx.Err(); err != nil {
		return recommend.Prediction{}, false, err
	}
	if err := s.checkOpen(); err != nil {
		return recommend.Prediction{}, false, err
	}

	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(q))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return recommend.Prediction{}, false, nil
	}
	if err != nil {
		return recommend.Prediction{}, false, fmt.Errorf("load prediction: %w", err)
	}

	return rec.prediction(q), true, nil
}

// Save persists p with the configured TTL.
func (s *BadgerStore) Save(ctx context.Context, p recommend.Prediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	data, err := json.Marshal(newRecord(p))
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(s.key(p.Query), data).WithTTL(s.config.TTL))
	})
}

// Count returns the number of live entries for the current fingerprint.
func (s *BadgerStore) Count() (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Purge drops every persisted prediction, including other fingerprints.
func (s *BadgerStore) Purge() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.DropPrefix([]byte(keyPrefix))
}

// RunGC reclaims value log space until BadgerDB reports nothing to rewrite.
// It is a no-op for in-memory stores.
func (s *BadgerStore) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.config.InMemory {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.RecordPredictionStoreGC(time.Since(start))
	}()

	for {
		err := s.db.RunValueLogGC(s.config.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			metrics.RecordPredictionStoreError("gc")
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes BadgerDB, giving up after CloseTimeout.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	timeout := s.config.CloseTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		s.logger.Info().Msg("prediction store closed")
		return nil
	case <-time.After(timeout):
		s.logger.Warn().Dur("timeout", timeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", timeout)
	}
}

// record is the persisted form of a prediction. JSON has no NaN, so
// undefined values are stored as null.
type record struct {
	Value *float64       `json:"v"`
	User  estimateRecord `json:"u"`
	Item  estimateRecord `json:"i"`
}

type estimateRecord struct {
	Value      *float64         `json:"v"`
	Source     recommend.Source `json:"s"`
	NeighborID int              `json:"n,omitempty"`
	Neighbors  int              `json:"k,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func valueOf(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func newRecord(p recommend.Prediction) record {
	return record{
		Value: finite(p.Value),
		User:  newEstimateRecord(p.UserBased),
		Item:  newEstimateRecord(p.ItemBased),
	}
}

func newEstimateRecord(e recommend.Estimate) estimateRecord {
	return estimateRecord{
		Value:      finite(e.Value),
		Source:     e.Source,
		NeighborID: e.NeighborID,
		Neighbors:  e.Neighbors,
	}
}

func (r record) prediction(q recommend.Query) recommend.Prediction {
	return recommend.Prediction{
		Query:     q,
		Value:     valueOf(r.Value),
		UserBased: r.User.estimate(),
		ItemBased: r.Item.estimate(),
	}
}

func (r estimateRecord) estimate() recommend.Estimate {
	return recommend.Estimate{
		Value:      valueOf(r.Value),
		Source:     r.Source,
		NeighborID: r.NeighborID,
		Neighbors:  r.Neighbors,
	}
}
