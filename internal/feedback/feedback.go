// Package feedback relays user feedback to the operator's mailbox.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
	"github.com/Kalyan-5460/Bujji-Weather/internal/storage"
)

// ErrDeliveryFailed means the outbound mail collaborator rejected or failed
// the send. The submission is still archived.
var ErrDeliveryFailed = errors.New("feedback delivery failed")

// Mailer is the outbound email collaborator.
type Mailer interface {
	Send(subject, body string) error
}

// Relay archives feedback submissions and hands them to the Mailer.
type Relay struct {
	mailer Mailer
	store  storage.Storage
	log    *slog.Logger
}

// New creates a Relay. mailer may be nil when no SMTP setup is configured;
// submissions are then archived only and reported as ErrDeliveryFailed.
func New(mailer Mailer, store storage.Storage, log *slog.Logger) *Relay {
	return &Relay{mailer: mailer, store: store, log: log}
}

// Submit archives the feedback and mails it to the operator. It returns the
// submission's reference ID; a failed send returns the reference together
// with ErrDeliveryFailed and never panics the dispatch path.
func (r *Relay) Submit(ctx context.Context, userID int64, username, text string) (string, error) {
	rec := &model.FeedbackRecord{
		Reference: uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Text:      text,
	}
	if err := r.store.CreateFeedback(ctx, rec); err != nil {
		r.log.Error("archive feedback", "user_id", userID, "error", err)
	}

	if r.mailer == nil {
		metrics.FeedbackTotal.WithLabelValues("failed").Inc()
		return rec.Reference, ErrDeliveryFailed
	}

	subject := fmt.Sprintf("Bujji feedback from %s [%s]", displayName(username, userID), rec.Reference)
	body := fmt.Sprintf("User: %s (id %d)\nReference: %s\n\n%s", displayName(username, userID), userID, rec.Reference, text)

	if err := r.mailer.Send(subject, body); err != nil {
		r.log.Error("send feedback mail", "user_id", userID, "reference", rec.Reference, "error", err)
		metrics.FeedbackTotal.WithLabelValues("failed").Inc()
		return rec.Reference, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := r.store.MarkFeedbackDelivered(ctx, rec.Reference); err != nil {
		r.log.Error("mark feedback delivered", "reference", rec.Reference, "error", err)
	}
	metrics.FeedbackTotal.WithLabelValues("delivered").Inc()
	return rec.Reference, nil
}

func displayName(username string, userID int64) string {
	if username != "" {
		return "@" + username
	}
	return fmt.Sprintf("user %d", userID)
}
