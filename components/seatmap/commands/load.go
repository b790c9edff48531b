package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	seatmap "github.com/goliatone/go-seatmap/components/seatmap"
)

// LoadTemplateInput carries a scene payload. Output, when set, receives the
// new session description.
type LoadTemplateInput struct {
	seatmap.LoadTemplateRequest
	Output *seatmap.LoadTemplateResult `json:"-"`
}

type loadService interface {
	LoadTemplate(ctx context.Context, req seatmap.LoadTemplateRequest) (seatmap.LoadTemplateResult, error)
}

// LoadTemplateCommand wraps Service.LoadTemplate so transports can open
// builder sessions without linking directly against the service.
type LoadTemplateCommand struct {
	service   loadService
	telemetry Telemetry
}

// NewLoadTemplateCommand creates a command instance.
func NewLoadTemplateCommand(service loadService, telemetry Telemetry) *LoadTemplateCommand {
	return &LoadTemplateCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoadTemplateInput] = (*LoadTemplateCommand)(nil)

// Execute converts the scene and opens a session.
func (c *LoadTemplateCommand) Execute(ctx context.Context, msg LoadTemplateInput) error {
	if c.service == nil {
		return errors.New("load command requires service")
	}
	res, err := c.service.LoadTemplate(ctx, msg.LoadTemplateRequest)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = res
	}
	c.telemetry.Record(ctx, "seatmap.template.load", map[string]any{
		"session_id":  res.SessionID,
		"template_id": res.TemplateID,
		"diagnostics": len(res.Diagnostics),
	})
	return nil
}
