package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
	"github.com/Kalyan-5460/Bujji-Weather/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateFeedback inserts a feedback submission and populates its ID and CreatedAt.
func (s *SQLite) CreateFeedback(ctx context.Context, rec *model.FeedbackRecord) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (reference, user_id, username, text, delivered, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Reference, rec.UserID, rec.Username, rec.Text, boolToInt(rec.Delivered), now,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// MarkFeedbackDelivered flags a submission as handed to the mail collaborator.
func (s *SQLite) MarkFeedbackDelivered(ctx context.Context, reference string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE feedback SET delivered = 1 WHERE reference = ?`, reference,
	)
	if err != nil {
		return fmt.Errorf("mark feedback delivered: %w", err)
	}
	return nil
}

// ListFeedback returns the most recent submissions, newest first.
func (s *SQLite) ListFeedback(ctx context.Context, limit int) ([]model.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reference, user_id, username, text, delivered, created_at
		 FROM feedback ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.FeedbackRecord
	for rows.Next() {
		var rec model.FeedbackRecord
		var delivered int
		var created string
		if err := rows.Scan(&rec.ID, &rec.Reference, &rec.UserID, &rec.Username, &rec.Text, &delivered, &created); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		rec.Delivered = delivered != 0
		rec.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LogQuery records one weather lookup for popularity stats.
func (s *SQLite) LogQuery(ctx context.Context, rec *model.QueryRecord) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (chat_id, city, kind, created_at) VALUES (?, ?, ?, ?)`,
		rec.ChatID, rec.City, rec.Kind, now,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// TopCities returns the most queried cities since the given time, most
// popular first.
func (s *SQLite) TopCities(ctx context.Context, since time.Time, limit int) ([]model.CityCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT city, COUNT(*) AS n FROM query_log
		 WHERE created_at >= ? AND city != ''
		 GROUP BY city ORDER BY n DESC, city LIMIT ?`,
		since.UTC().Format(timeLayout), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top cities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.CityCount
	for rows.Next() {
		var cc model.CityCount
		if err := rows.Scan(&cc.City, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan city count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
