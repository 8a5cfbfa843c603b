// Package api implements the REST surface of the daemon.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/moviemuse/moviemuse/internal/auth"
	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/feeds"
	"github.com/moviemuse/moviemuse/internal/store"
	"github.com/moviemuse/moviemuse/internal/watchlist"
)

// Server is the REST API server.
type Server struct {
	deps    ServerDeps
	logger  *slog.Logger
	version string
}

// NewServer creates the API server after validating its dependencies.
func NewServer(deps ServerDeps, logger *slog.Logger, version string) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}
	return &Server{
		deps:    deps,
		logger:  logger.With("component", "api"),
		version: version,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.signup)
		r.Post("/auth/login", s.login)

		r.Get("/movies/{feed}", s.feed)
		r.Get("/search", s.search)
		r.Get("/details/{movieId}", s.details)
		r.Get("/reviews/{movieId}", s.listReviews)
		r.Get("/health", s.health)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/watchlist", s.listWatchlist)
			r.Post("/watchlist/add", s.addWatchlist)
			r.Delete("/watchlist/remove/{movieId}", s.removeWatchlist)
			r.Post("/reviews/{movieId}", s.postReview)
			r.Get("/recommendations", s.recommendations)
		})
	})
	return r
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	user, err := s.deps.Auth.Signup(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, SignupResponse{
		Message:  "account created",
		Username: user.Username,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	session, err := s.deps.Auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:         session.Token,
		Username:      session.Username,
		TokenExpiryMs: session.ExpiresAt.UnixMilli(),
	})
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "page must be an integer")
			return
		}
		page = n
	}

	movies, err := s.deps.Feeds.Fetch(r.Context(), chi.URLParam(r, "feed"), page)
	if errors.Is(err, feeds.ErrUnknownFeed) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		// Only reached when no cached value of any age exists.
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusOK, []catalog.Movie{})
		return
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "year must be an integer")
			return
		}
		year = n
	}

	key := cache.KeySearch(query)
	if year != 0 {
		key = fmt.Sprintf("%s-y%d", key, year)
	}

	if s.deps.Cache != nil {
		if movies, ok := cache.GetJSON[[]catalog.Movie](r.Context(), s.deps.Cache, key); ok {
			writeJSON(w, http.StatusOK, movies)
			return
		}
	}

	movies := s.deps.Searcher.Search(r.Context(), query, year)
	if movies == nil {
		movies = []catalog.Movie{}
	}
	if s.deps.Cache != nil && len(movies) > 0 {
		cache.SetJSON(r.Context(), s.deps.Cache, key, movies, cache.DefaultTTL)
	}
	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	id, err := catalog.ParseID(chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	key := cache.KeyDetail(id.String())
	if s.deps.Cache != nil {
		if detail, ok := cache.GetJSON[*catalog.Detail](r.Context(), s.deps.Cache, key); ok {
			writeJSON(w, http.StatusOK, detail)
			return
		}
	}

	detail := s.deps.Detailer.Details(r.Context(), id)
	if detail == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}
	if s.deps.Cache != nil {
		cache.SetJSON(r.Context(), s.deps.Cache, key, detail, cache.DefaultTTL)
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) listWatchlist(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	entries, err := s.deps.Watchlist.List(r.Context(), claims.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) addWatchlist(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req AddWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	entries, err := s.deps.Watchlist.Add(r.Context(), claims.UserID, watchlist.Entry{
		Movie:      req.Movie,
		UserRating: req.UserRating,
		UserReview: req.UserReview,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) removeWatchlist(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	entries, err := s.deps.Watchlist.Remove(r.Context(), claims.UserID, chi.URLParam(r, "movieId"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "movie not on watchlist")
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	all, err := s.deps.Reviews.ForMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req PostReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	review, err := s.deps.Reviews.Upsert(r.Context(), chi.URLParam(r, "movieId"), claims.UserID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, PostReviewResponse{
		Review:  review,
		Message: "review saved",
	})
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	if s.deps.Recommender == nil {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "recommendations not configured")
		return
	}
	claims := claimsFrom(r.Context())

	entries, err := s.deps.Watchlist.List(r.Context(), claims.UserID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	movies := make([]catalog.Movie, 0, len(entries))
	for _, e := range entries {
		movies = append(movies, e.Movie)
	}

	query := r.URL.Query().Get("query")
	out := s.deps.Recommender.ForWatchlist(r.Context(), query, movies)
	if out == nil {
		out = []catalog.Movie{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
