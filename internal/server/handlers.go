package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/liftstack/liftlog/internal/plates"
	"github.com/liftstack/liftlog/internal/storage"
)

func (s *Server) handleRecordExecution(w http.ResponseWriter, r *http.Request) {
	var in storage.ExecutionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	// Identity comes from the middleware, never from the payload.
	in.UserID = userIDFromContext(r)

	id, err := s.db.RecordExecution(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.CounterExecutions.Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"execution_id": id.String()})
}

// handleUpsertPhase records or corrects a single phase of an existing
// execution, for clients that log phase by phase during a session.
func (s *Server) handleUpsertPhase(w http.ResponseWriter, r *http.Request) {
	executionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid execution id"})
		return
	}

	var p storage.PhaseInput
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.db.UpsertPhase(r.Context(), userIDFromContext(r), executionID, p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"phase_number": p.PhaseNumber})
}

// handleGetExecution returns one execution with its phase rows, scoped to
// the requesting user.
func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid execution id"})
		return
	}

	ex, err := s.db.GetExecution(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.PersonalRecords(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []storage.ExerciseRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.RecoveryStatus(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []storage.MuscleRecovery{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStrengthHistory(w http.ResponseWriter, r *http.Request) {
	s.writeHistory(w, r, s.db.StrengthHistory)
}

func (s *Server) handleVolumeHistory(w http.ResponseWriter, r *http.Request) {
	s.writeHistory(w, r, s.db.VolumeHistory)
}

func (s *Server) writeHistory(w http.ResponseWriter, r *http.Request,
	fetch func(ctx context.Context, userID int) ([]storage.HistoryRow, error)) {
	rows, err := fetch(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []storage.HistoryRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSetTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.db.ListSetTypes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// handlePlan expands a set type against a base weight into planned phases,
// each with its plate breakdown so the UI can show what to load.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set type ID"})
		return
	}
	baseWeight, err := strconv.ParseFloat(r.URL.Query().Get("base_weight"), 64)
	if err != nil || baseWeight <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "base_weight must be a positive number"})
		return
	}
	unit, err := plates.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	st, err := s.db.GetSetType(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if st == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set type not found"})
		return
	}

	planned := storage.PlanPhases(st.Phases, baseWeight)
	type plannedWithPlates struct {
		storage.PlannedPhase
		Plates plates.Breakdown `json:"plates"`
	}
	out := make([]plannedWithPlates, 0, len(planned))
	for _, p := range planned {
		out = append(out, plannedWithPlates{
			PlannedPhase: p,
			Plates:       plates.Calculate(p.PlannedWeight, unit, nil),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"set_type":    st.Name,
		"base_weight": baseWeight,
		"phases":      out,
	})
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handlePlates(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be a positive number"})
		return
	}
	unit, err := plates.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plates.Calculate(weight, unit, nil))
}

// writeError maps engine errors onto HTTP: validation failures are
// actionable 400s, unknown executions are 404s, and every store failure is
// a generic 500 with the detail kept in the server log.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *storage.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
		return
	}
	if errors.Is(err, storage.ErrExecutionNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "execution not found"})
		return
	}
	var perr *storage.PersistenceError
	if errors.As(err, &perr) {
		s.log.Error("persistence failure", "op", perr.Op, "error", perr.Unwrap())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage failure, try again"})
		return
	}
	s.log.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
