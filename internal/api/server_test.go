package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestHealth(t *testing.T) {
	s := New("test", false)
	resp, body := doJSON(t, s, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestSolveFK_StraightChain(t *testing.T) {
	s := New("test", false)
	req := map[string]any{
		"joint_angles": []float64{0, 0, 0, 0, 0},
		"link_lengths": []float64{0.2, 0.2, 0.2, 0.2, 0.2},
	}
	resp, body := doJSON(t, s, http.MethodPost, "/api/v1/kinematics/solve-fk", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%v", resp.StatusCode, body)
	}
	pos, ok := body["end_effector_position"].(map[string]any)
	if !ok {
		t.Fatalf("end_effector_position missing or wrong shape: %v", body)
	}
	if x, _ := pos["x"].(float64); x < 0.999 || x > 1.001 {
		t.Errorf("end_effector_position.x = %v, want ~1.0", pos["x"])
	}
}

func TestSolveFK_RejectsMismatchedLengths(t *testing.T) {
	s := New("test", false)
	req := map[string]any{
		"joint_angles": []float64{0, 0},
		"link_lengths": []float64{0.2, 0.2, 0.2},
	}
	resp, _ := doJSON(t, s, http.MethodPost, "/api/v1/kinematics/solve-fk", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSolveIK_UnreachableTargetReturns200(t *testing.T) {
	s := New("test", false)
	req := map[string]any{
		"target_position": map[string]float64{"x": 100, "y": 0, "z": 0},
		"joint_count":     3,
	}
	resp, body := doJSON(t, s, http.MethodPost, "/api/v1/kinematics/solve-ik", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 even on non-convergence", resp.StatusCode)
	}
	if converged, _ := body["converged"].(bool); converged {
		t.Error("expected converged=false for an unreachable target")
	}
}

func TestSolveIK_RejectsMaxIterationsAboveCeiling(t *testing.T) {
	s := New("test", false)
	req := map[string]any{
		"target_position": map[string]float64{"x": 0.2, "y": 0, "z": 0},
		"joint_count":     3,
		"constraints":     map[string]any{"max_iterations": 20_000},
	}
	resp, _ := doJSON(t, s, http.MethodPost, "/api/v1/kinematics/solve-ik", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for max_iterations above ceiling", resp.StatusCode)
	}
}

func TestStats_RecordsFailedRequestsToo(t *testing.T) {
	s := New("test", false)
	before := s.stats.Snapshot().RequestsTotal

	req := map[string]any{
		"joint_angles": []float64{0, 0},
		"link_lengths": []float64{0.2, 0.2, 0.2},
	}
	resp, _ := doJSON(t, s, http.MethodPost, "/api/v1/kinematics/solve-fk", req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	after := s.stats.Snapshot().RequestsTotal
	if after != before+1 {
		t.Errorf("requests_total = %d, want %d (a 400 response must still increment stats)", after, before+1)
	}
}

func TestListChains_ReturnsFivePresets(t *testing.T) {
	s := New("test", false)
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/kinematics/chains", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var presets []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&presets); err != nil {
		t.Fatalf("decode presets: %v", err)
	}
	if len(presets) != 5 {
		t.Errorf("got %d presets, want 5", len(presets))
	}
}

func TestStats_RecordsRequests(t *testing.T) {
	s := New("test", false)
	doJSON(t, s, http.MethodGet, "/health", nil)
	_, _ = doJSON(t, s, http.MethodGet, "/api/v1/kinematics/chains", nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/kinematics/stats", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var stats map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	total, _ := stats["requests_total"].(float64)
	if total < 1 {
		t.Errorf("requests_total = %v, want >= 1 (health is not counted, chains is)", total)
	}
}
