package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	seatmap "github.com/goliatone/go-seatmap/components/seatmap"
)

// SessionInput identifies a builder session.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

type shapesService interface {
	Shapes(ctx context.Context, sessionID string) (*seatmap.Result, error)
}

// ShapesQuery returns the converted shape tree of a session.
type ShapesQuery struct {
	service shapesService
}

// NewShapesQuery builds the query.
func NewShapesQuery(service shapesService) *ShapesQuery {
	return &ShapesQuery{service: service}
}

var _ gocommand.Querier[SessionInput, *seatmap.Result] = (*ShapesQuery)(nil)

// Query resolves the shape tree.
func (q *ShapesQuery) Query(ctx context.Context, input SessionInput) (*seatmap.Result, error) {
	return q.service.Shapes(ctx, input.SessionID)
}

type viewportService interface {
	ViewportState(ctx context.Context, sessionID string) (seatmap.ViewportState, error)
}

// ViewportQuery reads the current zoom and pan of a session.
type ViewportQuery struct {
	service viewportService
}

// NewViewportQuery builds the query.
func NewViewportQuery(service viewportService) *ViewportQuery {
	return &ViewportQuery{service: service}
}

var _ gocommand.Querier[SessionInput, seatmap.ViewportState] = (*ViewportQuery)(nil)

// Query resolves the viewport state.
func (q *ViewportQuery) Query(ctx context.Context, input SessionInput) (seatmap.ViewportState, error) {
	return q.service.ViewportState(ctx, input.SessionID)
}
