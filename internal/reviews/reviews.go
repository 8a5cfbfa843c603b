// Package reviews persists per-movie user reviews with upsert
// semantics keyed by (movie, user).
package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/moviemuse/moviemuse/internal/events"
	"github.com/moviemuse/moviemuse/internal/store"
)

// Review is one user's rating and comment for a movie.
type Review struct {
	ID        int64     `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service provides review reads and upserts.
type Service struct {
	db     *sql.DB
	bus    *events.Bus
	logger *slog.Logger
}

// NewService creates a review service. The bus may be nil.
func NewService(db *sql.DB, bus *events.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:     db,
		bus:    bus,
		logger: logger.With("component", "reviews"),
	}
}

// ForMovie returns all reviews for a movie, most recently updated
// first.
func (s *Service) ForMovie(ctx context.Context, movieID string) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.movie_id, r.user_id, u.username, r.rating, r.comment, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = ?
		ORDER BY r.updated_at DESC, r.id DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Username,
			&r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Upsert creates or replaces the user's review for a movie and returns
// the stored review.
func (s *Service) Upsert(ctx context.Context, movieID string, userID int64, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 10 {
		return nil, fmt.Errorf("rating must be between 1 and 10")
	}

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (movie_id, user_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(movie_id, user_id) DO UPDATE SET
			rating = excluded.rating,
			comment = excluded.comment,
			updated_at = excluded.updated_at`,
		movieID, userID, rating, comment, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", store.MapSQLiteError(err))
	}

	var r Review
	err = s.db.QueryRowContext(ctx, `
		SELECT r.id, r.movie_id, r.user_id, u.username, r.rating, r.comment, r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = ? AND r.user_id = ?`, movieID, userID,
	).Scan(&r.ID, &r.MovieID, &r.UserID, &r.Username, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("read back review: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewReviewPosted(userID, movieID, rating))
	}
	s.logger.Info("review saved", "movie", movieID, "user_id", userID, "rating", rating)
	return &r, nil
}
