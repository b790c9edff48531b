package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	seatmap "github.com/goliatone/go-seatmap/components/seatmap"
)

// WheelInput is a zoom step. Output, when set, receives the new state.
type WheelInput struct {
	seatmap.WheelRequest
	Output *seatmap.ViewportState `json:"-"`
}

// DragInput is a proposed pan position.
type DragInput struct {
	seatmap.DragRequest
	Output *seatmap.ViewportState `json:"-"`
}

// ResizeInput reports a new visible area.
type ResizeInput struct {
	seatmap.ResizeRequest
	Output *seatmap.ViewportState `json:"-"`
}

type viewportService interface {
	Wheel(ctx context.Context, req seatmap.WheelRequest) (seatmap.ViewportState, error)
	Drag(ctx context.Context, req seatmap.DragRequest) (seatmap.ViewportState, error)
	Resize(ctx context.Context, req seatmap.ResizeRequest) (seatmap.ViewportState, error)
}

// WheelCommand wraps Service.Wheel.
type WheelCommand struct {
	service viewportService
}

// NewWheelCommand builds a command instance.
func NewWheelCommand(service viewportService) *WheelCommand {
	return &WheelCommand{service: service}
}

var _ gocommand.Commander[WheelInput] = (*WheelCommand)(nil)

// Execute applies the zoom step.
func (c *WheelCommand) Execute(ctx context.Context, msg WheelInput) error {
	if c.service == nil {
		return errors.New("wheel command requires service")
	}
	state, err := c.service.Wheel(ctx, msg.WheelRequest)
	return writeState(msg.Output, state, err)
}

// DragCommand wraps Service.Drag.
type DragCommand struct {
	service viewportService
}

// NewDragCommand builds a command instance.
func NewDragCommand(service viewportService) *DragCommand {
	return &DragCommand{service: service}
}

var _ gocommand.Commander[DragInput] = (*DragCommand)(nil)

// Execute pans the viewport.
func (c *DragCommand) Execute(ctx context.Context, msg DragInput) error {
	if c.service == nil {
		return errors.New("drag command requires service")
	}
	state, err := c.service.Drag(ctx, msg.DragRequest)
	return writeState(msg.Output, state, err)
}

// ResizeCommand wraps Service.Resize.
type ResizeCommand struct {
	service viewportService
}

// NewResizeCommand builds a command instance.
func NewResizeCommand(service viewportService) *ResizeCommand {
	return &ResizeCommand{service: service}
}

var _ gocommand.Commander[ResizeInput] = (*ResizeCommand)(nil)

// Execute updates the visible area.
func (c *ResizeCommand) Execute(ctx context.Context, msg ResizeInput) error {
	if c.service == nil {
		return errors.New("resize command requires service")
	}
	state, err := c.service.Resize(ctx, msg.ResizeRequest)
	return writeState(msg.Output, state, err)
}

func writeState(out *seatmap.ViewportState, state seatmap.ViewportState, err error) error {
	if err != nil {
		return err
	}
	if out != nil {
		*out = state
	}
	return nil
}
