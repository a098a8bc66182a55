package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ledger/internal/log"
	"ledger/internal/services"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, err := s.render("index.html", s.ledger.Snapshot())
	if err != nil {
		s.events.LogError(r.Context(), "Index render failed", err, log.ComponentTemplate, log.OpRender, nil)
		Failure(http.StatusInternalServerError, "Unable to render page").Write(w)
		return
	}
	NewResponse().HTML(body).Write(w)
}

// handleLedger renders the list, summary and chart fragment.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	s.writeLedger(w, r, NewResponse())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		log.FromContext(ctx).WarnContext(ctx, "Unreadable expense submission", log.FieldError, err)
		if !isHTMX(r) {
			redirectHome(w, r)
			return
		}
		Failure(http.StatusBadRequest, "Invalid request format").Write(w)
		return
	}

	e, err := s.ledger.Submit(ctx, parser.Draft())
	switch {
	case errors.Is(err, services.ErrInvalidExpense):
		msg := validationMessage(err)
		log.FromContext(ctx).WarnContext(ctx, "Expense rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		if !isHTMX(r) {
			redirectHome(w, r)
			return
		}
		Failure(http.StatusUnprocessableEntity, msg).Write(w)
		return
	case err != nil:
		s.metrics.PersistFailed()
		s.events.LogError(ctx, "Failed to save expense", err, log.ComponentStorage, log.OpPersist, nil)
		Failure(http.StatusInternalServerError, "Error saving expense").Write(w)
		return
	}

	s.events.LogExpenseCreated(ctx, e.ID, e.Name, e.Amount.String(), e.Category.String(), e.Date.String())
	s.metrics.SetExpenses(len(s.ledger.Records()))

	if !isHTMX(r) {
		redirectHome(w, r)
		return
	}
	s.writeLedger(w, r, NewResponse().
		ExpenseCreated(e.ID).
		ResetForm().
		Notify(NoticeSuccess, "Expense added: "+e.Name))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseExpenseID(r)
	if err != nil {
		log.FromContext(ctx).WarnContext(ctx, "Delete with bad expense id", "raw_id", r.PathValue("id"))
		Failure(http.StatusBadRequest, "Invalid expense id").Write(w)
		return
	}

	removed, err := s.ledger.Delete(ctx, id)
	if err != nil {
		s.metrics.PersistFailed()
		fields := log.NewFields()
		fields[log.FieldExpenseID] = id
		s.events.LogError(ctx, "Failed to delete expense", err, log.ComponentStorage, log.OpPersist, fields)
		Failure(http.StatusInternalServerError, "Error deleting expense").Write(w)
		return
	}

	s.events.LogExpenseDeleted(ctx, id, removed)
	s.metrics.SetExpenses(len(s.ledger.Records()))

	if !isHTMX(r) {
		redirectHome(w, r)
		return
	}
	resp := NewResponse()
	if removed {
		resp.ExpenseDeleted(id)
	}
	s.writeLedger(w, r, resp)
}

// writeLedger renders the ledger fragment from the current state into resp.
func (s *Server) writeLedger(w http.ResponseWriter, r *http.Request, resp *Response) {
	body, err := s.render("ledger.html", s.ledger.Snapshot())
	if err != nil {
		s.events.LogError(r.Context(), "Ledger render failed", err, log.ComponentTemplate, log.OpRender, nil)
		Failure(http.StatusInternalServerError, "Unable to render expenses").Write(w)
		return
	}
	resp.HTML(body).Write(w)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	Failure(http.StatusNotFound, "Page not found").Write(w)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady checks that templates parsed and the storage slot answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if err := s.ledger.Ping(ctx); err != nil {
		checks["storage"] = "failed: " + err.Error()
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["storage"] = "ok"
	}

	NewResponse().WithStatus(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
		"expenses":  len(s.ledger.Records()),
	}).Write(w)
}
