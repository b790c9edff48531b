// Package seatmap re-exports the builder core for hosts that should not
// import components/ directly.
package seatmap

import (
	"context"

	core "github.com/goliatone/go-seatmap/components/seatmap"
)

// Service exposes the underlying components/seatmap.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Config re-export for convenience.
type Config = core.Config

// Scene, Shape and Result are the conversion input and output types.
type (
	Scene            = core.Scene
	SceneNode        = core.SceneNode
	Shape            = core.Shape
	Result           = core.Result
	TicketAttributes = core.TicketAttributes
	Session          = core.Session

	LoadTemplateRequest = core.LoadTemplateRequest
)

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// ReadConfig proxies to the internal config loader.
func ReadConfig(path string) (*Config, error) {
	return core.ReadConfig(path)
}

// ParseIdentifier decodes a ticket identifier.
func ParseIdentifier(id string) (TicketAttributes, bool) {
	return core.ParseIdentifier(id)
}

// SerializeIdentifier builds the canonical identifier for attrs.
func SerializeIdentifier(attrs TicketAttributes) string {
	return core.SerializeIdentifier(attrs)
}

// Convert runs a one-off conversion with default options.
func Convert(ctx context.Context, scene Scene) (*Result, error) {
	return core.NewConverter(core.ConverterOptions{}).Convert(ctx, scene)
}
