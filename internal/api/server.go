package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	app "coffee-grader/internal/application"
	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
	"coffee-grader/internal/infrastructure/ws"
)

const defaultHistoryLimit = 20

// DetectRequest is the POST /api/detect body.
type DetectRequest struct {
	ImageBase64       string  `json:"image_base64"`
	SampleWeightGrams float64 `json:"sample_weight_grams,omitempty"`
}

// detectResponse wraps an inspection with its top-level request ID.
type detectResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status,omitempty"`
	*entity.Inspection
}

type listResponse struct {
	Detections []*entity.Inspection `json:"detections"`
	Count      int                  `json:"count"`
}

// errorResponse carries the error in English and Thai.
type errorResponse struct {
	Error   string `json:"error"`
	ErrorTH string `json:"error_th"`
}

var errorTranslations = map[string]string{
	"Missing required field: image_base64": "ต้องระบุข้อมูลรูปภาพ",
	"Invalid base64 image data":            "ข้อมูลรูปภาพไม่ถูกต้อง",
	"Internal server error":                "เกิดข้อผิดพลาดภายในระบบ",
}

// translateError maps an API error message to its Thai counterpart.
func translateError(message string) string {
	for eng, thai := range errorTranslations {
		if strings.Contains(message, eng) {
			return thai
		}
	}
	return "เกิดข้อผิดพลาด"
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server exposes the grading pipeline over HTTP.
type Server struct {
	inspections *app.InspectionService
	hub         *ws.Hub
	filesDir    string
	router      *mux.Router
}

// NewServer builds the router. hub may be nil to disable the
// websocket feed, filesDir empty to disable the file mount.
func NewServer(inspections *app.InspectionService, hub *ws.Hub, filesDir string) *Server {
	s := &Server{
		inspections: inspections,
		hub:         hub,
		filesDir:    filesDir,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/detect", s.handleDetect).Methods("POST")
	r.HandleFunc("/api/detections", s.handleList).Methods("GET")
	r.HandleFunc("/api/detections/{id}", s.handleGet).Methods("GET")
	r.HandleFunc("/ws", s.handleWS)
	if s.filesDir != "" {
		r.PathPrefix("/files/").Handler(http.StripPrefix("/files/", http.FileServer(http.Dir(s.filesDir))))
	}
	s.router = r
}

// Handler returns the HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Handler:      s.router,
		Addr:         addr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	log.Printf("Starting HTTP server on %s", srv.Addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		s.sendError(w, http.StatusBadRequest, "Missing required field: image_base64")
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid base64 image data")
		return
	}

	insp, err := s.inspections.Grade(r.Context(), image)
	if err != nil {
		log.Printf("api: grade failed: %v", err)
		s.sendError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if s.hub != nil {
		s.hub.BroadcastInspection(insp)
	}

	s.sendJSON(w, http.StatusOK, detectResponse{
		RequestID:  insp.Record.RequestID,
		Inspection: insp,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	insp, err := s.inspections.Lookup(r.Context(), id)
	if errors.Is(err, port.ErrNotFound) {
		s.sendError(w, http.StatusNotFound, "Detection not found")
		return
	}
	if err != nil {
		log.Printf("api: lookup %s failed: %v", id, err)
		s.sendError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.sendJSON(w, http.StatusOK, detectResponse{
		RequestID:  insp.Record.RequestID,
		Status:     "completed",
		Inspection: insp,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.sendError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}

	inspections, err := s.inspections.History(r.Context(), limit)
	if err != nil {
		log.Printf("api: list failed: %v", err)
		s.sendError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if inspections == nil {
		inspections = []*entity.Inspection{}
	}

	s.sendJSON(w, http.StatusOK, listResponse{
		Detections: inspections,
		Count:      len(inspections),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket feed disabled", http.StatusNotImplemented)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512)
	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, errorResponse{
		Error:   message,
		ErrorTH: translateError(message),
	})
}
