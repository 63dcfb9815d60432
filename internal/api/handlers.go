package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/waterfall/pkg/buildinfo"
	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/pipeline"
	"github.com/matzehuels/waterfall/pkg/store"
)

// LayoutResponse is returned by create and get.
type LayoutResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	CacheHit  bool                 `json:"cache_hit,omitempty"`
	Snapshot  *collection.Snapshot `json:"snapshot"`
}

// QueryResponse is returned by the query route.
type QueryResponse struct {
	Rect       geom.Rect           `json:"rect"`
	Scroll     float64             `json:"scroll"`
	Count      int                 `json:"count"`
	Attributes []collection.Record `json:"attributes"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	coll, err := collection.Parse(body, collection.FormatJSON)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Compute(r.Context(), coll, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := store.NewRecord(opts.Apply(coll), result.Snapshot)
	id, err := s.store.Save(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("stored layout", "id", id, "attributes", result.Stats.Attributes, "cache_hit", result.CacheInfo.LayoutHit)
	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:        id,
		CreatedAt: rec.CreatedAt,
		CacheHit:  result.CacheInfo.LayoutHit,
		Snapshot:  result.Snapshot,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Snapshot:  rec.Snapshot,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	rect, scroll, err := rectFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	q, err := s.runner.Query(r.Context(), rec.Collection, rect, scroll, pipeline.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{
		Rect:       rect,
		Scroll:     scroll,
		Count:      len(q.Attributes),
		Attributes: collection.Records(q.Attributes),
	})
}

// rectFromQuery reads x, y, w, h and scroll. w and h are required; scroll
// defaults to y.
func rectFromQuery(r *http.Request) (geom.Rect, float64, error) {
	q := r.URL.Query()
	vals := make(map[string]float64, 5)
	for _, name := range []string{"x", "y", "w", "h", "scroll"} {
		raw := q.Get(name)
		if raw == "" {
			if name == "w" || name == "h" {
				return geom.Rect{}, 0, errors.New(errors.ErrCodeInvalidRect, "query parameter %q is required", name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return geom.Rect{}, 0, errors.Wrap(errors.ErrCodeInvalidRect, err, "query parameter %q", name)
		}
		vals[name] = v
	}
	rect := geom.NewRect(vals["x"], vals["y"], vals["w"], vals["h"])
	if err := pipeline.ValidateRect(rect.X, rect.Y, rect.Width, rect.Height); err != nil {
		return geom.Rect{}, 0, err
	}
	scroll, ok := vals["scroll"]
	if !ok {
		scroll = rect.Y
	}
	return rect, scroll, nil
}

// optionsFromQuery reads pipeline overrides from the query string.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Bucket:  q.Get("bucket"),
		Clamp:   q.Get("clamp"),
		Refresh: q.Get("refresh") == "true",
	}
	if raw := q.Get("width"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "width")
		}
		opts.Width = v
	}
	if raw := q.Get("columns"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "columns")
		}
		opts.Columns = v
	}
	return opts, opts.Validate()
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
