package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// Client-side events raised through the HX-Trigger header. app.js listens
// for form:reset and show-notification.
const (
	EventExpenseCreated = "expense:created"
	EventExpenseDeleted = "expense:deleted"
	EventFormReset      = "form:reset"
	EventNotification   = "show-notification"
)

// NoticeKind selects the style of a show-notification toast.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// How long a toast stays up, in milliseconds.
var noticeDuration = map[NoticeKind]int{
	NoticeSuccess: 3000,
	NoticeError:   5000,
}

// Response collects the status, HX-Trigger events and body of one reply.
type Response struct {
	status int
	events map[string]any
	header http.Header
	body   []byte
}

// NewResponse starts a 200 reply with no events.
func NewResponse() *Response {
	return &Response{
		status: http.StatusOK,
		events: make(map[string]any),
		header: make(http.Header),
	}
}

func (r *Response) WithStatus(code int) *Response {
	r.status = code
	return r
}

// Event raises name on the client with detail as the event payload.
// Raising the same event twice keeps the last detail.
func (r *Response) Event(name string, detail any) *Response {
	r.events[name] = detail
	return r
}

func (r *Response) ExpenseCreated(id int64) *Response {
	return r.Event(EventExpenseCreated, map[string]int64{"id": id})
}

func (r *Response) ExpenseDeleted(id int64) *Response {
	return r.Event(EventExpenseDeleted, map[string]int64{"id": id})
}

// ResetForm clears the entry form and re-seeds its date with today.
func (r *Response) ResetForm() *Response {
	return r.Event(EventFormReset, struct{}{})
}

// Notify shows msg in the page's notification box.
func (r *Response) Notify(kind NoticeKind, msg string) *Response {
	return r.Event(EventNotification, map[string]any{
		"type":     string(kind),
		"message":  msg,
		"duration": noticeDuration[kind],
	})
}

// HTML sets an HTML body.
func (r *Response) HTML(body []byte) *Response {
	r.header.Set("Content-Type", "text/html; charset=utf-8")
	r.body = body
	return r
}

// JSON sets v, encoded, as the body. An unencodable value turns the reply
// into a 500.
func (r *Response) JSON(v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return Failure(http.StatusInternalServerError, "Unable to encode response")
	}
	r.header.Set("Content-Type", "application/json")
	r.body = body
	return r
}

func (r *Response) Write(w http.ResponseWriter) {
	for name, values := range r.header {
		w.Header()[name] = values
	}
	if len(r.events) > 0 {
		if events, err := json.Marshal(r.events); err == nil {
			w.Header().Set("HX-Trigger", string(events))
		}
	}
	w.WriteHeader(r.status)
	if len(r.body) > 0 {
		_, _ = w.Write(r.body)
	}
}

// Failure replies with status, an escaped alert fragment carrying msg and
// an error toast with the same text. The ledger fragment is never swapped
// on failure.
func Failure(status int, msg string) *Response {
	fragment := `<p class="notification error" role="alert">` + template.HTMLEscapeString(msg) + `</p>`
	return NewResponse().
		WithStatus(status).
		HTML([]byte(fragment)).
		Notify(NoticeError, msg)
}
