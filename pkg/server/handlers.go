package server

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/matzehuels/arcview/pkg/buildinfo"
	"github.com/matzehuels/arcview/pkg/cache"
	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/render/nodelink"
	"github.com/matzehuels/arcview/pkg/style"
)

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidColor, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeLookup, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Page
// =============================================================================

type pageColor struct {
	Name    string
	Code    string
	Checked bool
}

type pageData struct {
	Title    string
	Version  string
	Vertices int
	Edges    int
	Colors   []pageColor
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	current := s.app.Controller.Color()
	data := pageData{
		Title:    s.cfg.Title,
		Version:  buildinfo.Version,
		Vertices: s.app.Graph.VertexCount(),
		Edges:    s.app.Graph.EdgeCount(),
	}
	for _, c := range style.Colors {
		data.Colors = append(data.Colors, pageColor{Name: c.String(), Code: c.Code(), Checked: c == current})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("Render page", "error", err)
	}
}

var pageTemplate = template.Must(template.ParseFS(assets, "assets/index.html"))

// =============================================================================
// API
// =============================================================================

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	data, etag := s.app.PayloadJSON()
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.NetworkOptions())
}

func (s *Server) handleGetStyle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Controller.Current())
}

type selectRequest struct {
	Color string `json:"color"`
}

func (s *Server) handlePostStyle(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessage))
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode selection"))
		return
	}
	color, err := style.Parse(req.Color)
	if err != nil {
		writeError(w, err)
		return
	}

	patch, err := s.app.Controller.Select(r.Context(), color)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeUnavailable, err, "apply %s", color)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patch)
}

type healthResponse struct {
	Status   string `json:"status"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Clients  int    `json:"clients"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Vertices: s.app.Graph.VertexCount(),
		Edges:    s.app.Graph.EdgeCount(),
		Clients:  s.hub.Len(),
	})
}

// =============================================================================
// Snapshot
// =============================================================================

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts := nodelink.Options{
		Color:  s.app.Controller.Color(),
		Engine: r.URL.Query().Get("engine"),
	}
	if err := nodelink.ValidateEngine(opts.Engine); err != nil {
		writeError(w, err)
		return
	}

	key := cache.Key("snapshot", opts.Color.Code(), opts.Engine)
	svg, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Snapshot cache read failed", "error", err)
	}
	if !hit {
		svg, err = nodelink.Render(ctx, s.app.Graph, opts)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render snapshot"))
			return
		}
		if err := s.cache.Set(ctx, key, svg, 0); err != nil {
			s.logger.Warn("Snapshot cache write failed", "error", err)
		}
	}

	etag := cache.ETag(svg)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}
