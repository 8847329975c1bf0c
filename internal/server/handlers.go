package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/ytlist/internal/models"
	"github.com/desertthunder/ytlist/internal/tasks"
	"github.com/desertthunder/ytlist/internal/web"
)

const maxRequestBody = 64 << 10

// DownloadRequest is the body of POST /download.
type DownloadRequest struct {
	ChannelURL   string `json:"channel_url"`
	OutputDir    string `json:"output_dir"`
	OutputOption string `json:"output_option"` // "save" (default) or "download"
}

// DownloadResponse is returned by POST /download unless a CSV is streamed.
type DownloadResponse struct {
	Message     string           `json:"message"`
	Kind        models.ErrorKind `json:"kind,omitempty"`
	Count       int              `json:"count"`
	ChannelName string           `json:"channel_name,omitempty"`
	Skipped     int              `json:"skipped,omitempty"`
	Token       string           `json:"token,omitempty"` // fetch the saved CSV from /download_csv
}

// HistoryResponse is returned by GET /history.
type HistoryResponse struct {
	Runs []models.ListingRunJSON `json:"runs"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// StatusForKind maps a failed listing to an HTTP status code.
func StatusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindNone:
		return http.StatusOK
	case models.KindInvalidInput, models.KindNameExtractionFailed:
		return http.StatusBadRequest
	case models.KindToolNotFound:
		return http.StatusServiceUnavailable
	case models.KindToolTimeout:
		return http.StatusGatewayTimeout
	case models.KindToolProducedNoOutput, models.KindNoValidRecordsParsed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// indexHandler serves the embedded front end at "/" and its assets under "/static/".
type indexHandler struct {
	assets fs.FS
	files  http.Handler
}

func newIndexHandler() *indexHandler {
	assets := web.Assets()
	return &indexHandler{
		assets: assets,
		files:  http.StripPrefix("/static/", http.FileServerFS(assets)),
	}
}

func (h *indexHandler) Routes() []string {
	return []string{"/", "/static/"}
}

func (h *indexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if r.URL.Path != "/" {
		h.files.ServeHTTP(w, r)
		return
	}

	page, err := fs.ReadFile(h.assets, web.IndexPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "index page missing")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var body DownloadRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, DownloadResponse{
			Message: "Error: Request body must be a JSON object.",
			Kind:    models.KindInvalidInput,
		})
		return
	}

	// unknown options go through so the pipeline reports the first failing check
	mode, err := models.ParseMode(body.OutputOption)
	if err != nil {
		mode = models.Mode(body.OutputOption)
	}

	result := s.pipeline.Run(r.Context(), tasks.ListingRequest{
		ChannelURL:     body.ChannelURL,
		DestinationDir: body.OutputDir,
		Mode:           mode,
	})

	resp := DownloadResponse{
		Message:     result.StatusMessage,
		Kind:        result.Kind,
		Count:       result.Count,
		ChannelName: result.ChannelName,
		Skipped:     len(result.Skipped),
	}
	if !result.OK() {
		writeJSON(w, StatusForKind(result.Kind), resp)
		return
	}

	if mode == models.ModeTransient && result.ArtifactPath != "" {
		token := s.artifacts.Register(result.ArtifactPath)
		defer s.artifacts.Release(token)

		if err := serveAttachment(w, r, result.ArtifactPath); err != nil {
			s.logger.Error("failed to send artifact", "path", result.ArtifactPath, "error", err,
				"request_id", RequestIDFromContext(r.Context()))
			writeJSON(w, http.StatusInternalServerError, DownloadResponse{
				Message:     "Error sending file: " + err.Error(),
				Kind:        models.KindFileWriteFailed,
				ChannelName: result.ChannelName,
			})
		}
		return
	}

	if result.OutputPath != "" {
		resp.Token = s.artifacts.Share(result.OutputPath)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	path, err := s.artifacts.Lookup(token)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	if err := serveAttachment(w, r, path); err != nil {
		writeError(w, http.StatusNotFound, "File not found")
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := defaultHistory
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistory)
	}

	criteria := map[string]any{"limit": limit}
	if channel := r.URL.Query().Get("channel"); channel != "" {
		criteria["channel_name"] = channel
	}

	runs, err := s.history.List(criteria)
	if err != nil {
		s.logger.Error("failed to list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := HistoryResponse{Runs: make([]models.ListingRunJSON, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, run.JSON())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serveAttachment(w http.ResponseWriter, r *http.Request, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filepath.Base(path)}))
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
