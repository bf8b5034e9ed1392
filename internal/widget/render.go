package widget

import (
	"context"
	"fmt"
)

// Mode is how the host is presenting the widget. The host supplies it;
// nothing in this package infers it.
type Mode int

const (
	// ModePreview shows the layout interactively.
	ModePreview Mode = iota
	// ModeWidget embeds the layout in a fixed-size host surface.
	ModeWidget
)

func (m Mode) String() string {
	switch m {
	case ModeWidget:
		return "widget"
	case ModePreview:
		return "preview"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeFromFlag maps the host's run-mode flag to a Mode.
func ModeFromFlag(runsInWidget bool) Mode {
	if runsInWidget {
		return ModeWidget
	}
	return ModePreview
}

// Renderer draws a layout for the host.
type Renderer interface {
	Render(ctx context.Context, l Layout, mode Mode) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, l Layout, mode Mode) error

func (f RendererFunc) Render(ctx context.Context, l Layout, mode Mode) error {
	return f(ctx, l, mode)
}

// ByMode dispatches to Widget or Preview according to mode.
type ByMode struct {
	Widget  Renderer
	Preview Renderer
}

func (b ByMode) Render(ctx context.Context, l Layout, mode Mode) error {
	var r Renderer
	switch mode {
	case ModeWidget:
		r = b.Widget
	case ModePreview:
		r = b.Preview
	}
	if r == nil {
		return fmt.Errorf("widget: no renderer for %s mode", mode)
	}
	return r.Render(ctx, l, mode)
}
