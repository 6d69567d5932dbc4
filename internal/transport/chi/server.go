package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentdex/internal/domain"
	domcontent "github.com/kailas-cloud/contentdex/internal/domain/content"
	"github.com/kailas-cloud/contentdex/internal/domain/search/query"
	analyticsuc "github.com/kailas-cloud/contentdex/internal/usecase/analytics"
	healthuc "github.com/kailas-cloud/contentdex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/contentdex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/contentdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the search, indexing, and analytics operations over HTTP.
type Server struct {
	search        *searchuc.Service
	index         *indexuc.Service
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	index *indexuc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		index:     index,
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
	}
	return s
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, paramsFromURL(r))
}

// SearchByType handles GET /api/search/{contentType}.
func (s *Server) SearchByType(w http.ResponseWriter, r *http.Request) {
	p := paramsFromURL(r)
	p.ContentType = chi.URLParam(r, "contentType")
	s.runSearch(w, r, p)
}

// SearchAdvanced handles POST /api/search/advanced.
func (s *Server) SearchAdvanced(w http.ResponseWriter, r *http.Request) {
	var req advancedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, req.toParams())
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, p query.Params) {
	hits, _, err := s.search.Search(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := hitsToPayload(hits, p.Query != "")
	count := len(data)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Count:   &count,
		Filters: filtersEcho(p),
	})
}

// Suggestions handles GET /api/search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	suggestions, err := s.search.Suggest(r.Context(), q.Get("businessId"), q.Get("query"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	count := len(suggestions)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: suggestions, Count: &count})
}

// CreateRecord handles POST /api/search/index.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	id, err := s.index.Create(r.Context(), &rec)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: map[string]string{"id": id}})
}

// UpdateRecord handles PUT /api/search/index/{id}.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	updated, err := s.index.Update(r.Context(), chi.URLParam(r, "id"), &rec)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeRecord(w, http.StatusOK, &updated)
}

// DeleteRecord handles DELETE /api/search/index/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.index.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true})
}

// BulkIndex handles POST /api/search/index/bulk.
func (s *Server) BulkIndex(w http.ResponseWriter, r *http.Request) {
	var reqs []recordPayload
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a list of records: "+err.Error())
		return
	}

	recs := make([]domcontent.Record, 0, len(reqs))
	for i, req := range reqs {
		rec, err := req.toRecord()
		if err != nil {
			writeError(w, http.StatusBadRequest, "record "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		recs = append(recs, rec)
	}

	ids, err := s.index.Bulk(r.Context(), recs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	count := len(ids)
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Data:    map[string]any{"ids": ids},
		Count:   &count,
	})
}

// AddTags handles POST /api/search/index/{id}/tags.
func (s *Server) AddTags(w http.ResponseWriter, r *http.Request) {
	s.mutateTags(w, r, s.index.AddTags)
}

// RemoveTags handles DELETE /api/search/index/{id}/tags.
func (s *Server) RemoveTags(w http.ResponseWriter, r *http.Request) {
	s.mutateTags(w, r, s.index.RemoveTags)
}

func (s *Server) mutateTags(
	w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id string, tags []string) (domcontent.Record, error),
) {
	var req tagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rec, err := op(r.Context(), chi.URLParam(r, "id"), req.Tags)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeRecord(w, http.StatusOK, &rec)
}

// Reindex handles POST /api/search/index/{id}/reindex.
func (s *Server) Reindex(w http.ResponseWriter, r *http.Request) {
	rec, err := s.index.Reindex(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeRecord(w, http.StatusOK, &rec)
}

// PopularTags handles GET /api/search/tags/popular.
func (s *Server) PopularTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intQueryParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	counts, err := s.analytics.PopularTags(r.Context(), q.Get("businessId"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	count := len(counts)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: counts, Count: &count})
}

// Stats handles GET /api/search/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analytics.Stats(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	count := len(stats)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: stats, Count: &count})
}

// Recent handles GET /api/search/recent.
func (s *Server) Recent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intQueryParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	hits, err := s.analytics.Recent(r.Context(), q.Get("businessId"), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := hitsToPayload(hits, false)
	count := len(data)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// HighRated handles GET /api/search/high-rated.
func (s *Server) HighRated(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intQueryParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	minRating := 0.0
	if raw := q.Get("minRating"); raw != "" {
		minRating, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "minRating must be a number")
			return
		}
	}

	hits, err := s.analytics.HighRated(r.Context(), q.Get("businessId"), minRating, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := hitsToPayload(hits, false)
	count := len(data)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeHealth(w, r)
}

// Ready handles GET /ready.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	s.writeHealth(w, r)
}

func (s *Server) writeHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// paramsFromURL extracts search parameters from the query string.
// List-valued filters accept comma-joined values.
func paramsFromURL(r *http.Request) query.Params {
	q := r.URL.Query()
	return query.Params{
		Query:       q.Get("query"),
		BusinessID:  q.Get("businessId"),
		FranchiseID: q.Get("franchiseId"),
		ContentType: q.Get("contentType"),
		Tags:        query.SplitCSV(q.Get("tags")),
		Categories:  query.SplitCSV(q.Get("categories")),
		Rating:      q.Get("rating"),
		Sentiment:   q.Get("sentiment"),
		Language:    q.Get("language"),
		Limit:       q.Get("limit"),
		Offset:      q.Get("offset"),
		SortBy:      q.Get("sortBy"),
		SortOrder:   q.Get("sortOrder"),
	}
}

func intQueryParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// validationHandler surfaces ErrValidation with its full message; the
// chain composes these messages from request input, so they are safe to
// return.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	// Storage detail is logged, never returned.
	s.logger.Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
