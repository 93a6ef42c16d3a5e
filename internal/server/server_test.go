package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pillbox/internal/models"
	"pillbox/internal/storage"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "pillbox.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	srv := NewWithClock(store, func() time.Time { return now })
	return srv, srv.Router()
}

func pillBody(t *testing.T, name string) *bytes.Buffer {
	t.Helper()
	pill := models.Pill{
		Name:   name,
		Dosage: "100 mg",
		Frequency: models.Frequency{
			Type:      models.FrequencyDaily,
			Times:     []models.TimeSlot{{Time: "20:00"}},
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(pill); err != nil {
		t.Fatal(err)
	}
	return buf
}

func createPill(t *testing.T, router http.Handler, name string) models.Pill {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pills/", pillBody(t, name)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %s: status %d, body %s", name, rec.Code, rec.Body)
	}
	var pill models.Pill
	if err := json.Unmarshal(rec.Body.Bytes(), &pill); err != nil {
		t.Fatal(err)
	}
	return pill
}

func TestHealth(t *testing.T) {
	_, router := newTestServer(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestCreateAndGetPill(t *testing.T) {
	_, router := newTestServer(t)

	created := createPill(t, router, "Aspirin")
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected server-assigned timestamps")
	}
	if created.Frequency.Times[0].ID == "" {
		t.Error("expected server-assigned slot id")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pills/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got models.Pill
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Aspirin" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestCreatePill_RejectsInvalid(t *testing.T) {
	_, router := newTestServer(t)

	pill := models.Pill{Name: "Aspirin", Dosage: "lots"}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(pill); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pills/", buf))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Errors) == 0 {
		t.Error("expected validation errors in response body")
	}
}

func TestUpdatePill(t *testing.T) {
	_, router := newTestServer(t)
	created := createPill(t, router, "Aspirin")

	created.Dosage = "200 mg"
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(created); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/pills/"+created.ID, buf))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}
	var got models.Pill
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Dosage != "200 mg" {
		t.Errorf("dosage = %q", got.Dosage)
	}
}

func TestDeletePill(t *testing.T) {
	_, router := newTestServer(t)
	created := createPill(t, router, "Aspirin")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/pills/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pills/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestNotFoundResponses(t *testing.T) {
	_, router := newTestServer(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/pills/ghost", nil),
		httptest.NewRequest(http.MethodDelete, "/api/pills/ghost", nil),
		httptest.NewRequest(http.MethodPost, "/api/pills/ghost/slots/s1/taken", nil),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: status = %d, want 404", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestMarkTaken(t *testing.T) {
	_, router := newTestServer(t)
	created := createPill(t, router, "Aspirin")
	slotID := created.Frequency.Times[0].ID

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/pills/"+created.ID+"/slots/"+slotID+"/taken", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("mark taken status = %d, body %s", rec.Code, rec.Body)
	}

	var got models.Pill
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	slot := got.FindSlot(slotID)
	if slot == nil || !slot.Taken || slot.TakenAt == nil {
		t.Errorf("expected slot marked taken, got %+v", slot)
	}
}

func TestToday(t *testing.T) {
	_, router := newTestServer(t)
	created := createPill(t, router, "Aspirin")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/today", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("today status = %d", rec.Code)
	}

	var body struct {
		Date     string        `json:"date"`
		Due      []models.Pill `json:"due"`
		Upcoming []struct {
			PillID string `json:"pill_id"`
			Time   string `json:"time"`
		} `json:"upcoming"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Date != "2024-01-10" {
		t.Errorf("date = %q", body.Date)
	}
	if len(body.Due) != 1 || body.Due[0].ID != created.ID {
		t.Errorf("due = %+v", body.Due)
	}
	// The 20:00 slot is still ahead of the pinned noon clock.
	if len(body.Upcoming) != 1 || body.Upcoming[0].Time != "20:00" {
		t.Errorf("upcoming = %+v", body.Upcoming)
	}
}
