package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	appLog "borecal/internal/log"
	"borecal/internal/widget"
)

// Renderer is the widget-mode host surface: it renders the layout to HTML
// and captures it as a fixed-size PNG at Output.
type Renderer struct {
	Output  string
	Width   int
	Height  int
	Timeout time.Duration

	// Capture defaults to CaptureWidgetPNG.
	Capture func(ctx context.Context, opts CaptureOptions) error
}

func (r Renderer) Render(ctx context.Context, l widget.Layout, mode widget.Mode) error {
	if r.Output == "" {
		return fmt.Errorf("capture: output path is required")
	}

	page, err := widget.RenderHTML(l, r.Width, r.Height, mode)
	if err != nil {
		return err
	}

	out, err := filepath.Abs(r.Output)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	// The page sits next to the PNG so a failed capture can be inspected.
	htmlPath := out + ".html"
	if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
		return fmt.Errorf("capture: write html: %w", err)
	}

	capture := r.Capture
	if capture == nil {
		capture = CaptureWidgetPNG
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(htmlPath)}
	opts := CaptureOptions{
		URL:        u.String(),
		OutputPath: out,
		Width:      r.Width,
		Height:     r.Height,
		Timeout:    r.Timeout,
	}
	if err := capture(ctx, opts); err != nil {
		return err
	}

	appLog.Info("widget captured", "output", out, "width", r.Width, "height", r.Height, "mode", mode.String())
	return nil
}
