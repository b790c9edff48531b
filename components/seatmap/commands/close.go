package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// CloseSessionInput identifies the session to close.
type CloseSessionInput struct {
	SessionID string `json:"session_id"`
}

type closeService interface {
	CloseSession(ctx context.Context, sessionID string) error
}

// CloseSessionCommand stops a session viewport and drops the session, recording
// telemetry for auditing purposes.
type CloseSessionCommand struct {
	service   closeService
	telemetry Telemetry
}

// NewCloseSessionCommand builds a command instance.
func NewCloseSessionCommand(service closeService, telemetry Telemetry) *CloseSessionCommand {
	return &CloseSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseSessionInput] = (*CloseSessionCommand)(nil)

// Execute closes the session.
func (c *CloseSessionCommand) Execute(ctx context.Context, msg CloseSessionInput) error {
	if c.service == nil {
		return errors.New("close command requires service")
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "seatmap.template.close", map[string]any{"session_id": msg.SessionID})
	return nil
}
