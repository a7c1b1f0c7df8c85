package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/service"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

type Dependencies struct {
	Logger           *log.Logger
	Addr             string
	IngestService    *service.IngestService
	HeartbeatService *service.HeartbeatService
	ReportService    *service.ReportService
}

type Server struct {
	httpServer       *http.Server
	logger           *log.Logger
	mux              *http.ServeMux
	ingestService    *service.IngestService
	heartbeatService *service.HeartbeatService
	reportService    *service.ReportService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:           d.Logger,
		mux:              mux,
		ingestService:    d.IngestService,
		heartbeatService: d.HeartbeatService,
		reportService:    d.ReportService,
	}

	mux.HandleFunc("POST /v1/observations", s.handleObservation)
	mux.HandleFunc("POST /v1/heartbeat", s.handleHeartbeat)
	mux.HandleFunc("GET /v1/attendance", s.handleAttendance)
	mux.HandleFunc("GET /v1/attendance/{identity}", s.handleAttendanceDetail)

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request) {
	var req types.ObservationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.ingestService.Observe(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSourceID):
			writeError(w, http.StatusBadRequest, "invalid_source_id", err.Error())
		case errors.Is(err, service.ErrInvalidIdentity):
			writeError(w, http.StatusBadRequest, "invalid_identity", err.Error())
		default:
			s.logger.Printf("observation error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req types.HeartbeatRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.heartbeatService.Record(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSourceID) {
			writeError(w, http.StatusBadRequest, "invalid_source_id", err.Error())
			return
		}
		s.logger.Printf("heartbeat error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reportService.Rows(r.Context())
	if err != nil {
		s.logger.Printf("attendance error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, attendanceReply{
		OK:    true,
		Empty: len(rows) == 0,
		Rows:  rows,
	})
}

func (s *Server) handleAttendanceDetail(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")

	rec, status, found, err := s.reportService.Detail(r.Context(), identity)
	if err != nil {
		s.logger.Printf("attendance detail error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "unknown_identity", "no record for identity")
		return
	}

	reply := detailReply{
		OK:          true,
		Identity:    rec.Identity,
		Status:      status.String(),
		Period:      rec.Period,
		Confidence:  rec.Confidence,
		LateMinutes: rec.LateMinutes,
		SourceID:    rec.SourceID,
	}
	if rec.ObservedAt != nil {
		reply.ObservedAt = rec.ObservedAt.Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, reply)
}

type attendanceReply struct {
	OK    bool             `json:"ok"`
	Empty bool             `json:"empty"`
	Rows  []types.ReportRow `json:"rows"`
}

type detailReply struct {
	OK          bool    `json:"ok"`
	Identity    string  `json:"identity"`
	Status      string  `json:"status"`
	Period      string  `json:"period,omitempty"`
	ObservedAt  string  `json:"observed_at,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	LateMinutes *int    `json:"late_minutes,omitempty"`
	SourceID    string  `json:"source_id,omitempty"`
}
