package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sehajsb/rollcall/internal/calendar"
	"github.com/sehajsb/rollcall/internal/httpapi"
	"github.com/sehajsb/rollcall/internal/rollcall/gate"
	"github.com/sehajsb/rollcall/internal/rollcall/service"
	"github.com/sehajsb/rollcall/internal/rollcall/store/memory"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

// newTestServer wires up the full dependency graph using in-memory stores
// and returns an httptest.Server whose URL can be hit with a plain http.Client.
func newTestServer(t *testing.T, knownSources, roster []string) *httptest.Server {
	t.Helper()

	cal, err := calendar.Load("")
	if err != nil {
		t.Fatalf("load calendar: %v", err)
	}

	sourceStore := memory.NewSourceStore(knownSources)
	eventStore := memory.NewAttendanceEventStore()
	heartbeatStore := memory.NewHeartbeatStore()
	registry := service.NewSourceRegistry(sourceStore)
	ingestSvc := service.NewIngestService(registry, cal, gate.New(10*time.Minute), eventStore, 0.45)
	heartbeatSvc := service.NewHeartbeatService(heartbeatStore, registry)
	reportSvc := service.NewReportService(eventStore, roster)

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:           log.New(io.Discard, "", 0),
		Addr:             ":0",
		IngestService:    ingestSvc,
		HeartbeatService: heartbeatSvc,
		ReportService:    reportSvc,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ── Observations ─────────────────────────────────────────────────────────────

func TestObservation_Recorded(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, nil)

	resp := postJSON(t, ts.URL+"/v1/observations",
		`{"source_id":"cam-001","identity":"Parker","confidence":0.92,"observed_at":"2026-03-02T08:33:00Z"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var obsResp types.ObservationResponse
	if err := json.NewDecoder(resp.Body).Decode(&obsResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !obsResp.OK {
		t.Error("expected ok=true")
	}
	if !obsResp.Accepted {
		t.Error("expected accepted=true")
	}
	if obsResp.Period != "1" {
		t.Errorf("expected period=1, got %q", obsResp.Period)
	}
	if obsResp.EventID == "" {
		t.Error("expected an event id")
	}
}

func TestObservation_MissingIdentity_400(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, nil)

	resp := postJSON(t, ts.URL+"/v1/observations",
		`{"source_id":"cam-001","confidence":0.92}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestObservation_InvalidJSON_400(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp := postJSON(t, ts.URL+"/v1/observations", `not json at all`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestObservation_UnknownFieldRejected(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp := postJSON(t, ts.URL+"/v1/observations",
		`{"source_id":"cam-001","identity":"Parker","confidence":0.9,"surprise":true}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.StatusCode)
	}
}

// ── Heartbeat ────────────────────────────────────────────────────────────────

func TestHeartbeat_KnownSource_OK(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, nil)

	resp := postJSON(t, ts.URL+"/v1/heartbeat", `{"source_id":"cam-001","uptime_s":42}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var hbResp types.HeartbeatResponse
	if err := json.NewDecoder(resp.Body).Decode(&hbResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !hbResp.OK {
		t.Error("expected ok=true")
	}
	if !hbResp.Known {
		t.Error("expected known=true for a configured source")
	}
	if hbResp.SourceID != "cam-001" {
		t.Errorf("expected source_id=cam-001, got %q", hbResp.SourceID)
	}
}

func TestHeartbeat_UnknownSource_StillAccepted(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, nil)

	resp := postJSON(t, ts.URL+"/v1/heartbeat", `{"source_id":"rogue-cam","uptime_s":1}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var hbResp types.HeartbeatResponse
	if err := json.NewDecoder(resp.Body).Decode(&hbResp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !hbResp.OK {
		t.Error("expected ok=true (heartbeats are accepted from unknown sources)")
	}
	if hbResp.Known {
		t.Error("expected known=false for an unknown source")
	}
}

func TestHeartbeat_MissingSourceID_400(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp := postJSON(t, ts.URL+"/v1/heartbeat", `{"uptime_s":42}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ── Attendance report ────────────────────────────────────────────────────────

func TestAttendance_EmptyLedgerExplicit(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp, err := http.Get(ts.URL + "/v1/attendance")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reply struct {
		OK    bool              `json:"ok"`
		Empty bool              `json:"empty"`
		Rows  []types.ReportRow `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reply.Empty {
		t.Error("expected empty=true for a fresh ledger")
	}
	if len(reply.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(reply.Rows))
	}
}

func TestAttendance_RowsAfterObservation(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, []string{"Adam"})

	postJSON(t, ts.URL+"/v1/observations",
		`{"source_id":"cam-001","identity":"Parker","confidence":0.92,"observed_at":"2026-03-02T08:47:00Z"}`)

	resp, err := http.Get(ts.URL + "/v1/attendance")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var reply struct {
		OK    bool              `json:"ok"`
		Empty bool              `json:"empty"`
		Rows  []types.ReportRow `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if reply.Empty {
		t.Error("expected empty=false")
	}
	if len(reply.Rows) != 2 {
		t.Fatalf("expected 2 rows (Adam from roster, Parker from ledger), got %d", len(reply.Rows))
	}
	if reply.Rows[0].Identity != "Adam" || reply.Rows[0].Status != "Absent" {
		t.Errorf("expected Adam Absent, got %s %s", reply.Rows[0].Identity, reply.Rows[0].Status)
	}
	if reply.Rows[1].Identity != "Parker" || reply.Rows[1].Status != "Late (7m)" {
		t.Errorf("expected Parker Late (7m), got %s %s", reply.Rows[1].Identity, reply.Rows[1].Status)
	}
}

func TestAttendanceDetail_Found(t *testing.T) {
	ts := newTestServer(t, []string{"cam-001"}, nil)

	postJSON(t, ts.URL+"/v1/observations",
		`{"source_id":"cam-001","identity":"Parker","confidence":0.92,"observed_at":"2026-03-02T08:33:00Z"}`)

	resp, err := http.Get(ts.URL + "/v1/attendance/Parker")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var reply struct {
		OK       bool   `json:"ok"`
		Identity string `json:"identity"`
		Status   string `json:"status"`
		Period   string `json:"period"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Identity != "Parker" || reply.Status != "Present" || reply.Period != "1" {
		t.Errorf("unexpected detail: %+v", reply)
	}
}

func TestAttendanceDetail_NotFound404(t *testing.T) {
	ts := newTestServer(t, nil, nil)

	resp, err := http.Get(ts.URL + "/v1/attendance/Stranger")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
