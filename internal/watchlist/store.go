// Package watchlist persists each user's watched-movie collection.
package watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/store"
)

// Entry is a movie on a user's watchlist, optionally rated and
// reviewed.
type Entry struct {
	Movie      catalog.Movie `json:"movie"`
	UserRating *int          `json:"userRating,omitempty"`
	UserReview string        `json:"userReview,omitempty"`
	AddedAt    time.Time     `json:"addedAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Store provides access to the watchlist_entries table.
type Store struct {
	db *sql.DB
}

// NewStore creates a watchlist store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns the user's entries ordered by add time, oldest first.
func (s *Store) List(ctx context.Context, userID int64) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT movie_id, title, year, poster_url, genres, user_rating, user_review, added_at, updated_at
		FROM watchlist_entries
		WHERE user_id = ?
		ORDER BY added_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			movieID string
			genres  string
			rating  sql.NullInt64
			review  sql.NullString
		)
		if err := rows.Scan(&movieID, &e.Movie.Title, &e.Movie.Year, &e.Movie.PosterURL,
			&genres, &rating, &review, &e.AddedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}

		id, err := catalog.ParseID(movieID)
		if err != nil {
			return nil, fmt.Errorf("watchlist entry %q: %w", movieID, err)
		}
		e.Movie.ID = id

		if err := json.Unmarshal([]byte(genres), &e.Movie.Genres); err != nil {
			return nil, fmt.Errorf("watchlist entry %q genres: %w", movieID, err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			e.UserRating = &r
		}
		if review.Valid {
			e.UserReview = review.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Add upserts an entry. Re-adding an existing movie replaces its rating
// and review in place; the original add time is preserved so ordering
// stays stable.
func (s *Store) Add(ctx context.Context, userID int64, e Entry) error {
	genres, err := json.Marshal(e.Movie.Genres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}
	if e.Movie.Genres == nil {
		genres = []byte("[]")
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO watchlist_entries
			(user_id, movie_id, title, year, poster_url, genres, user_rating, user_review, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			title = excluded.title,
			year = excluded.year,
			poster_url = excluded.poster_url,
			genres = excluded.genres,
			user_rating = excluded.user_rating,
			user_review = excluded.user_review,
			updated_at = excluded.updated_at`,
		userID, e.Movie.ID.String(), e.Movie.Title, e.Movie.Year, e.Movie.PosterURL,
		string(genres), e.UserRating, nullableString(e.UserReview), now, now,
	)
	if err != nil {
		return fmt.Errorf("add watchlist entry: %w", store.MapSQLiteError(err))
	}
	return nil
}

// Remove deletes an entry. Returns store.ErrNotFound when the movie is
// not on the list.
func (s *Store) Remove(ctx context.Context, userID int64, movieID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM watchlist_entries WHERE user_id = ? AND movie_id = ?",
		userID, movieID,
	)
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
