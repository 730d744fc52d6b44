package api

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// @Summary Materialised change feed (employees.changes)
// @Tags    ChangeFeed
// @Produce json
// @Success 200 {array} dto.ChangeEvent
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /events [get]
func (s *Service) listEvents(ctx *fasthttp.RequestCtx) {
	rows, err := s.events.ListEvents(ctx)

	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListEvents: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Dead-lettered change events
// @Tags    ChangeFeed
// @Produce json
// @Success 200 {array} dto.DLQMessage
// @Failure 500 {object} errorResponse "Storage fault"
// @Router  /dlq [get]
func (s *Service) listDLQ(ctx *fasthttp.RequestCtx) {
	rows, err := s.events.ListDLQ(ctx)

	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListDLQ: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}
