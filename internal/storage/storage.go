// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"time"

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

// Storage is the interface for all persistence operations.
type Storage interface {
	CreateFeedback(ctx context.Context, rec *model.FeedbackRecord) error
	MarkFeedbackDelivered(ctx context.Context, reference string) error
	ListFeedback(ctx context.Context, limit int) ([]model.FeedbackRecord, error)

	LogQuery(ctx context.Context, rec *model.QueryRecord) error
	TopCities(ctx context.Context, since time.Time, limit int) ([]model.CityCount, error)

	Close() error
}
