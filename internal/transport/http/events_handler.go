package http

import (
	"net/http"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
)

// EventsHandler handles HTTP requests for outbox events.
type EventsHandler struct {
	Responder

	listEvents *list_events.Query
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query, rs Responder) *EventsHandler {
	return &EventsHandler{
		Responder:  rs,
		listEvents: listEvents,
	}
}

// ServeHTTP handles GET /api/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := parseEventsRequest(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	events := make([]Event, 0, len(result.Events))
	for _, e := range result.Events {
		events = append(events, toEvent(e))
	}

	h.writeJSON(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		TotalCount: result.TotalCount,
	})
}
