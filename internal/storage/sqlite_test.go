package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFeedbackLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &model.FeedbackRecord{
		Reference: "ref-1",
		UserID:    42,
		Username:  "kalyan",
		Text:      "more cities please",
	}
	if err := store.CreateFeedback(ctx, rec); err != nil {
		t.Fatalf("create feedback: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected ID to be populated")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated")
	}

	got, err := store.ListFeedback(ctx, 10)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	want := []model.FeedbackRecord{*rec}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("feedback mismatch (-want +got):\n%s", diff)
	}
	if got[0].Delivered {
		t.Error("new feedback must not be marked delivered")
	}

	if err := store.MarkFeedbackDelivered(ctx, "ref-1"); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	got, err = store.ListFeedback(ctx, 10)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if !got[0].Delivered {
		t.Error("feedback should be marked delivered")
	}
}

func TestListFeedbackNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, ref := range []string{"a", "b", "c"} {
		rec := &model.FeedbackRecord{Reference: ref, UserID: 1, Text: "note " + ref}
		if err := store.CreateFeedback(ctx, rec); err != nil {
			t.Fatalf("create feedback %q: %v", ref, err)
		}
	}

	got, err := store.ListFeedback(ctx, 2)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	var refs []string
	for _, rec := range got {
		refs = append(refs, rec.Reference)
	}
	if diff := cmp.Diff([]string{"c", "b"}, refs); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopCities(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	queries := []struct {
		city  string
		count int
	}{
		{"Hyderabad", 3},
		{"Guntur", 2},
		{"Vijayawada", 1},
	}
	for _, q := range queries {
		for i := 0; i < q.count; i++ {
			rec := &model.QueryRecord{ChatID: 7, City: q.city, Kind: "weather_city"}
			if err := store.LogQuery(ctx, rec); err != nil {
				t.Fatalf("log query: %v", err)
			}
		}
	}

	got, err := store.TopCities(ctx, time.Now().Add(-time.Hour), 2)
	if err != nil {
		t.Fatalf("top cities: %v", err)
	}
	want := []model.CityCount{
		{City: "Hyderabad", Count: 3},
		{City: "Guntur", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("top cities mismatch (-want +got):\n%s", diff)
	}
}

func TestTopCitiesSinceCutoff(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &model.QueryRecord{ChatID: 7, City: "Guntur", Kind: "weather_city"}
	if err := store.LogQuery(ctx, rec); err != nil {
		t.Fatalf("log query: %v", err)
	}

	got, err := store.TopCities(ctx, time.Now().Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("top cities: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no cities past the cutoff, got %v", got)
	}
}
