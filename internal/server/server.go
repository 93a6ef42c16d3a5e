package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"pillbox/internal/constants"
	"pillbox/internal/logger"
	"pillbox/internal/models"
	"pillbox/internal/scheduler"
	"pillbox/internal/storage"
	"pillbox/internal/validation"
)

// Server exposes the pill store over HTTP for companion UIs on the same
// machine.
type Server struct {
	store     storage.Provider
	validator *validation.Validator
	now       func() time.Time
}

func New(store storage.Provider) *Server {
	return &Server{
		store:     store,
		validator: validation.New(),
		now:       time.Now,
	}
}

// NewWithClock is used by tests to pin "today".
func NewWithClock(store storage.Provider, now func() time.Time) *Server {
	s := New(store)
	s.now = now
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/pills", func(pr chi.Router) {
		pr.Get("/", s.listPills)
		pr.Post("/", s.createPill)
		pr.Get("/{pillID}", s.getPill)
		pr.Put("/{pillID}", s.updatePill)
		pr.Delete("/{pillID}", s.deletePill)
		pr.Post("/{pillID}/slots/{slotID}/taken", s.markTaken)
	})

	r.Get("/api/today", s.today)

	return r
}

func (s *Server) listPills(w http.ResponseWriter, _ *http.Request) {
	pills, err := s.store.GetAllPills()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if pills == nil {
		pills = []models.Pill{}
	}
	writeJSON(w, http.StatusOK, pills)
}

func (s *Server) createPill(w http.ResponseWriter, r *http.Request) {
	var pill models.Pill
	if err := json.NewDecoder(r.Body).Decode(&pill); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if result := s.validator.ValidatePill(pill); !result.IsValid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": result.Errors})
		return
	}

	now := s.now().UTC()
	pill.ID = uuid.NewString()
	pill.CreatedAt = now
	pill.UpdatedAt = now
	for i := range pill.Frequency.Times {
		if pill.Frequency.Times[i].ID == "" {
			pill.Frequency.Times[i].ID = uuid.NewString()
		}
	}

	if err := s.store.AddPill(pill); err != nil {
		logger.Error("failed to store pill", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, pill)
}

func (s *Server) getPill(w http.ResponseWriter, r *http.Request) {
	pill, err := s.store.GetPill(chi.URLParam(r, "pillID"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "pill not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pill)
}

func (s *Server) updatePill(w http.ResponseWriter, r *http.Request) {
	var pill models.Pill
	if err := json.NewDecoder(r.Body).Decode(&pill); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	pill.ID = chi.URLParam(r, "pillID")

	if result := s.validator.ValidatePill(pill); !result.IsValid() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": result.Errors})
		return
	}

	if err := s.store.UpdatePill(pill); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "pill not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	updated, err := s.store.GetPill(pill.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePill(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePill(chi.URLParam(r, "pillID")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "pill not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markTaken(w http.ResponseWriter, r *http.Request) {
	pillID := chi.URLParam(r, "pillID")
	slotID := chi.URLParam(r, "slotID")

	if err := s.store.MarkTaken(pillID, slotID, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "pill or slot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pill, err := s.store.GetPill(pillID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pill)
}

type todayResponse struct {
	Date     string             `json:"date"`
	Due      []models.Pill      `json:"due"`
	Upcoming []upcomingReminder `json:"upcoming"`
}

type upcomingReminder struct {
	PillID   string    `json:"pill_id"`
	PillName string    `json:"pill_name"`
	SlotID   string    `json:"slot_id"`
	Time     string    `json:"time"`
	FireAt   time.Time `json:"fire_at"`
}

func (s *Server) today(w http.ResponseWriter, _ *http.Request) {
	pills, err := s.store.GetAllPills()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	now := s.now()
	due := scheduler.DueToday(pills, now)
	if due == nil {
		due = []models.Pill{}
	}

	upcoming := []upcomingReminder{}
	for _, rem := range scheduler.UpcomingReminders(pills, now) {
		upcoming = append(upcoming, upcomingReminder{
			PillID:   rem.Pill.ID,
			PillName: rem.Pill.Name,
			SlotID:   rem.Slot.ID,
			Time:     rem.Slot.Time,
			FireAt:   rem.FireAt,
		})
	}

	writeJSON(w, http.StatusOK, todayResponse{
		Date:     now.Format(constants.DateFormat),
		Due:      due,
		Upcoming: upcoming,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
