package network

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/capture"
	"github.com/lixenwraith/racecast/status"
)

// RaceAPI is the race surface exposed over HTTP
type RaceAPI interface {
	Reset()
	Start() bool
	Stop() bool
}

// CaptureAPI is the capture surface exposed over HTTP
type CaptureAPI interface {
	StartRecording() error
	StopRecording()
	Phase() capture.Phase
	OpenArtifact() (io.ReadCloser, *capture.Artifact, error)
	Discard()
}

// FrameSource provides the last presented frame
type FrameSource interface {
	Snapshot() *image.RGBA
}

// Handlers binds the controllers to HTTP routes
type Handlers struct {
	Race    RaceAPI
	Capture CaptureAPI
	Frames  FrameSource
	Status  *status.Registry
	Log     *zap.Logger
}

// actionResponse reports whether a command changed state plus the resulting status
type actionResponse struct {
	Changed bool            `json:"changed"`
	Status  status.Snapshot `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the chi router for the control surface
func NewRouter(h *Handlers) http.Handler {
	if h.Log == nil {
		h.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.Log))
	r.Use(middleware.Recoverer)

	r.Get("/status", h.getStatus)
	r.Get("/frame.png", h.getFrame)

	r.Route("/race", func(r chi.Router) {
		r.Post("/reset", h.postReset)
		r.Post("/start", h.postStart)
		r.Post("/stop", h.postStop)
	})

	r.Route("/capture", func(r chi.Router) {
		r.Post("/start", h.postCaptureStart)
		r.Post("/stop", h.postCaptureStop)
		r.Get("/artifact", h.getArtifact)
		r.Delete("/artifact", h.deleteArtifact)
	})

	return r
}

// requestLogger emits one zap line per request
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Debug("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func (h *Handlers) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Status.Snapshot())
}

func (h *Handlers) postReset(w http.ResponseWriter, r *http.Request) {
	h.Race.Reset()
	h.writeAction(w, true)
}

func (h *Handlers) postStart(w http.ResponseWriter, r *http.Request) {
	h.writeAction(w, h.Race.Start())
}

func (h *Handlers) postStop(w http.ResponseWriter, r *http.Request) {
	h.writeAction(w, h.Race.Stop())
}

// Capture commands are no-ops outside their source phase; changed compares the phase around the call
func (h *Handlers) postCaptureStart(w http.ResponseWriter, r *http.Request) {
	before := h.Capture.Phase()
	if err := h.Capture.StartRecording(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeAction(w, h.Capture.Phase() != before)
}

func (h *Handlers) postCaptureStop(w http.ResponseWriter, r *http.Request) {
	before := h.Capture.Phase()
	h.Capture.StopRecording()
	h.writeAction(w, h.Capture.Phase() != before)
}

func (h *Handlers) getFrame(w http.ResponseWriter, r *http.Request) {
	img := h.Frames.Snapshot()
	if img == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no frame presented"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		h.Log.Warn("frame encode failed", zap.Error(err))
	}
}

func (h *Handlers) getArtifact(w http.ResponseWriter, r *http.Request) {
	rc, a, err := h.Capture.OpenArtifact()
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.MIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+capture.ArtifactName(a.CreatedAt)+`"`)
	if a.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.Log.Warn("artifact stream failed", zap.String("artifact", a.Handle), zap.Error(err))
	}
}

func (h *Handlers) deleteArtifact(w http.ResponseWriter, r *http.Request) {
	h.Capture.Discard()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeAction(w http.ResponseWriter, changed bool) {
	writeJSON(w, http.StatusOK, actionResponse{Changed: changed, Status: h.Status.Snapshot()})
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, capture.ErrNoArtifact):
		code = http.StatusNotFound
	case errors.Is(err, capture.ErrCaptureUnavailable):
		code = http.StatusServiceUnavailable
	default:
		h.Log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
