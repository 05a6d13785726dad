package lastread_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"vato-reader/internal/lastread"
	"vato-reader/internal/lastread/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// mapStore is an in-memory Store for round-trip tests.
type mapStore map[string]string

func (s mapStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s[key]
	if !ok {
		return "", lastread.ErrKeyNotFound
	}
	return v, nil
}

func (s mapStore) Set(_ context.Context, key, value string) error {
	s[key] = value
	return nil
}

func (s mapStore) Delete(_ context.Context, key string) error {
	delete(s, key)
	return nil
}

func TestTracker_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tracker := lastread.NewTracker(mapStore{})

	if _, ok := tracker.Load(ctx); ok {
		t.Fatal("Load() on first run should report no position")
	}

	tracker.Save(ctx, "3", "12", "vat_3_12.html")
	got, ok := tracker.Load(ctx)
	if !ok {
		t.Fatal("Load() after Save() reported no position")
	}
	want := lastread.Position{ChapterID: "3", VatNumber: "12", FileName: "vat_3_12.html"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	tracker.Save(ctx, "4", "1", "vat_4_1.html")
	got, _ = tracker.Load(ctx)
	if got.ChapterID != "4" || got.VatNumber != "1" || got.FileName != "vat_4_1.html" {
		t.Errorf("Save() did not overwrite, Load() = %+v", got)
	}

	tracker.Clear(ctx)
	if _, ok := tracker.Load(ctx); ok {
		t.Error("Load() after Clear() should report no position")
	}

	// Clearing an empty state is a no-op.
	tracker.Clear(ctx)
}

func TestTracker_PartialStateIsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		store mapStore
	}{
		{
			name:  "only chapter",
			store: mapStore{lastread.KeyChapter: "1"},
		},
		{
			name:  "missing vat number",
			store: mapStore{lastread.KeyChapter: "1", lastread.KeyVatFile: "a.html"},
		},
		{
			name:  "missing file",
			store: mapStore{lastread.KeyChapter: "1", lastread.KeyVat: "2"},
		},
		{
			name:  "empty value",
			store: mapStore{lastread.KeyChapter: "1", lastread.KeyVat: "", lastread.KeyVatFile: "a.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := lastread.NewTracker(tt.store).Load(context.Background()); ok {
				t.Errorf("Load() = %+v, want absent", got)
			}
		})
	}
}

func TestTracker_DisabledIsNoOp(t *testing.T) {
	ctx := context.Background()
	tracker := lastread.NewTracker(nil)

	if tracker.Enabled() {
		t.Error("Enabled() = true for tracker without store")
	}
	tracker.Save(ctx, "1", "1", "a.html")
	tracker.Clear(ctx)
	if _, ok := tracker.Load(ctx); ok {
		t.Error("Load() on disabled tracker should report no position")
	}

	var nilTracker *lastread.Tracker
	nilTracker.Save(ctx, "1", "1", "a.html")
	if _, ok := nilTracker.Load(ctx); ok {
		t.Error("Load() on nil tracker should report no position")
	}
}

func TestTracker_SwallowsStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	storageErr := errors.New("disk full")

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().Set(gomock.Any(), lastread.KeyChapter, "1").Return(storageErr)
	mockStore.EXPECT().Get(gomock.Any(), lastread.KeyChapter).Return("", storageErr)
	mockStore.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(storageErr).Times(3)

	tracker := lastread.NewTracker(mockStore)

	// None of these may panic or surface the error.
	tracker.Save(ctx, "1", "2", "a.html")
	if _, ok := tracker.Load(ctx); ok {
		t.Error("Load() with failing store should report no position")
	}
	tracker.Clear(ctx)
}

func TestTracker_SaveWritesKeysInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	gomock.InOrder(
		mockStore.EXPECT().Set(gomock.Any(), lastread.KeyChapter, "2").Return(nil),
		mockStore.EXPECT().Set(gomock.Any(), lastread.KeyVat, "5").Return(nil),
		mockStore.EXPECT().Set(gomock.Any(), lastread.KeyVatFile, "vat_2_5.html").Return(nil),
	)

	lastread.NewTracker(mockStore).Save(context.Background(), "2", "5", "vat_2_5.html")
}

func TestTracker_SaveUsesBatchStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockBatchStore(ctrl)
	mockStore.EXPECT().SetAll(gomock.Any(), map[string]string{
		lastread.KeyChapter: "2",
		lastread.KeyVat:     "5",
		lastread.KeyVatFile: "vat_2_5.html",
	}).Return(nil)

	lastread.NewTracker(mockStore).Save(context.Background(), "2", "5", "vat_2_5.html")
}
