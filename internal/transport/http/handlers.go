package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"ytdlapi/internal/domain/download"
)

const (
	serviceName    = "Video Downloader API"
	serviceVersion = "2.0"
	retryAfterSecs = 60
	maxBodyBytes   = 1 << 20
)

type downloadUseCases interface {
	Formats(ctx context.Context, url string) (download.VideoInfo, error)
	Submit(url string, req download.FormatRequest) (download.Job, error)
	Status(id string) (download.Job, error)
	Artifact(id string) (string, string, error)
	Count() int
}

type Handler struct {
	downloads downloadUseCases
	logger    *log.Logger
}

// NewHandler wires HTTP handlers with application use cases.
func NewHandler(downloads downloadUseCases, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{downloads: downloads, logger: logger}
}

// Home handles GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"/api/formats":          "GET - list video formats (query: url)",
			"/api/download":         "POST - start a download (body: url, format_id | video_id [+ audio_id])",
			"/api/status/{task_id}": "GET - download status",
			"/api/file/{task_id}":   "GET - fetch the downloaded file",
			"/api/health":           "GET - service health",
		},
	})
}

// ListFormats handles GET /api/formats.
func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	info, err := h.downloads.Formats(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if info.Formats == nil {
		info.Formats = []download.Format{}
	}
	writeJSON(w, http.StatusOK, info)
}

type downloadRequest struct {
	URL      string   `json:"url"`
	FormatID formatID `json:"format_id"`
	VideoID  formatID `json:"video_id"`
	AudioID  formatID `json:"audio_id"`
}

// formatID accepts a format identifier sent as a JSON string or number.
type formatID string

func (id *formatID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = formatID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("format ids must be strings or numbers")
	}
	*id = formatID(n.String())
	return nil
}

// StartDownload handles POST /api/download.
func (h *Handler) StartDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody(download.KindInvalidRequest, "invalid JSON body: "+err.Error()))
		return
	}

	job, err := h.downloads.Submit(req.URL, download.FormatRequest{
		FormatID: string(req.FormatID),
		VideoID:  string(req.VideoID),
		AudioID:  string(req.AudioID),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"task_id": job.ID,
		"status":  string(job.Status),
		"message": "download task created",
	})
}

// Status handles GET /api/status/{id}.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	job, err := h.downloads.Status(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// File handles GET /api/file/{id}.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	fullPath, name, err := h.downloads.Artifact(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fullPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	streamFile(w, r, fullPath, contentType, name)
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"downloads_count": h.downloads.Count(),
		"timestamp":       time.Now().Unix(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	kind := download.KindOf(err)
	status := statusFor(kind)
	body := errorBody(kind, err.Error())

	switch kind {
	case download.KindRateLimited:
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
		body["retry_after"] = retryAfterSecs
		body["solution"] = "retry later or provide a cookies.txt file"
	case download.KindExtractionFailed:
		h.logger.Printf("Extraction failed: %v", err)
	}
	writeJSON(w, status, body)
}

func statusFor(kind download.ErrorKind) int {
	switch kind {
	case download.KindMissingParameter, download.KindInvalidRequest, download.KindNotReady:
		return http.StatusBadRequest
	case download.KindNotFound, download.KindUnavailable:
		return http.StatusNotFound
	case download.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(kind download.ErrorKind, message string) map[string]interface{} {
	return map[string]interface{}{
		"error":   string(kind),
		"message": message,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
