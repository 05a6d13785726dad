package lastread

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks vato-reader/internal/lastread Store,BatchStore

import (
	"context"
	"errors"

	"vato-reader/internal/contextutil"
)

// Storage keys for the three bookmark values.
const (
	KeyChapter = "lastVisitedChapter"
	KeyVat     = "lastVisitedVat"
	KeyVatFile = "lastVisitedVatFile"
)

// ErrKeyNotFound is returned by a Store when a key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Store is a durable string key-value store.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// BatchStore is a Store that can write several keys atomically.
type BatchStore interface {
	Store
	// SetAll writes every pair or none of them.
	SetAll(ctx context.Context, values map[string]string) error
}

// Position is the most recently opened vat.
type Position struct {
	ChapterID string
	VatNumber string
	FileName  string
}

// Tracker persists a single Position. Storage errors never reach the caller.
// A Tracker without a store is disabled: Save and Clear do nothing and Load
// always reports no position.
type Tracker struct {
	store Store
}

// NewTracker creates a tracker over store. Pass nil for headless use.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Enabled reports whether the tracker has a backing store.
func (t *Tracker) Enabled() bool {
	return t != nil && t.store != nil
}

// Save overwrites the stored position.
func (t *Tracker) Save(ctx context.Context, chapterID, vatNumber, fileName string) {
	if !t.Enabled() {
		return
	}
	discard(ctx, "save", t.save(ctx, chapterID, vatNumber, fileName))
}

// Load returns the stored position. It reports false when any of the three
// values is missing or the store cannot be read.
func (t *Tracker) Load(ctx context.Context) (Position, bool) {
	if !t.Enabled() {
		return Position{}, false
	}

	var values [3]string
	for i, key := range []string{KeyChapter, KeyVat, KeyVatFile} {
		v, err := t.store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrKeyNotFound) {
				discard(ctx, "load", err)
			}
			return Position{}, false
		}
		if v == "" {
			return Position{}, false
		}
		values[i] = v
	}

	return Position{
		ChapterID: values[0],
		VatNumber: values[1],
		FileName:  values[2],
	}, true
}

// Clear removes the stored position.
func (t *Tracker) Clear(ctx context.Context) {
	if !t.Enabled() {
		return
	}
	discard(ctx, "clear", t.clear(ctx))
}

func (t *Tracker) save(ctx context.Context, chapterID, vatNumber, fileName string) error {
	values := map[string]string{
		KeyChapter: chapterID,
		KeyVat:     vatNumber,
		KeyVatFile: fileName,
	}
	if batch, ok := t.store.(BatchStore); ok {
		return batch.SetAll(ctx, values)
	}
	for _, key := range []string{KeyChapter, KeyVat, KeyVatFile} {
		if err := t.store.Set(ctx, key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyChapter, KeyVat, KeyVatFile} {
		errs = append(errs, t.store.Delete(ctx, key))
	}
	return errors.Join(errs...)
}

// discard is the only place bookmark storage errors are dropped.
func discard(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "last-read storage error ignored", "op", op, "error", err)
}
