package events

// Watchlist actions.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// Event types.
const (
	TypeWatchlistChanged = "watchlist.changed"
	TypeReviewPosted     = "review.posted"
)

// WatchlistChanged fires after a watchlist add or remove commits.
type WatchlistChanged struct {
	BaseEvent
	UserID  int64  `json:"user_id"`
	MovieID string `json:"movie_id"`
	Action  string `json:"action"`
}

// NewWatchlistChanged creates a WatchlistChanged event.
func NewWatchlistChanged(userID int64, movieID, action string) WatchlistChanged {
	return WatchlistChanged{
		BaseEvent: NewBaseEvent(TypeWatchlistChanged),
		UserID:    userID,
		MovieID:   movieID,
		Action:    action,
	}
}

// ReviewPosted fires after a review is created or replaced.
type ReviewPosted struct {
	BaseEvent
	UserID  int64  `json:"user_id"`
	MovieID string `json:"movie_id"`
	Rating  int    `json:"rating"`
}

// NewReviewPosted creates a ReviewPosted event.
func NewReviewPosted(userID int64, movieID string, rating int) ReviewPosted {
	return ReviewPosted{
		BaseEvent: NewBaseEvent(TypeReviewPosted),
		UserID:    userID,
		MovieID:   movieID,
		Rating:    rating,
	}
}
