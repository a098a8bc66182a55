package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ledger/internal/core"
)

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirectHome sends plain form posts back to the page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseExpenseID reads the {id} path segment.
func parseExpenseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid expense id")
	}
	return id, nil
}

// validationMessage turns joined field errors into one user-facing sentence.
func validationMessage(err error) string {
	var msgs []string
	if errors.Is(err, core.ErrEmptyName) {
		msgs = append(msgs, "name is required")
	}
	if errors.Is(err, core.ErrInvalidAmount) {
		msgs = append(msgs, "amount must be a number greater than zero, below one trillion, with at most three decimals")
	}
	if errors.Is(err, core.ErrInvalidCategory) {
		msgs = append(msgs, "choose a category")
	}
	if errors.Is(err, core.ErrInvalidDate) {
		msgs = append(msgs, "date is required")
	}
	if len(msgs) == 0 {
		return "Please fill in all fields correctly"
	}
	msg := strings.Join(msgs, "; ")
	return strings.ToUpper(msg[:1]) + msg[1:]
}
