package widget

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/widget.html.tmpl
var templateFS embed.FS

var widgetTemplate = template.Must(template.ParseFS(templateFS, "templates/widget.html.tmpl"))

// HTMLRenderer writes the layout as a standalone HTML page sized to the
// widget surface. The root element carries data-ready="true" for capture.
type HTMLRenderer struct {
	Out    io.Writer
	Width  int
	Height int
}

type htmlView struct {
	Layout Layout
	Width  int
	Height int
	Mode   string
}

func (r HTMLRenderer) Render(_ context.Context, l Layout, mode Mode) error {
	if r.Out == nil {
		return fmt.Errorf("widget: html renderer has no output")
	}
	data, err := RenderHTML(l, r.Width, r.Height, mode)
	if err != nil {
		return err
	}
	_, err = r.Out.Write(data)
	return err
}

// RenderHTML returns the HTML page for l.
func RenderHTML(l Layout, width, height int, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	err := widgetTemplate.Execute(&buf, htmlView{
		Layout: l,
		Width:  width,
		Height: height,
		Mode:   mode.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("widget: render html: %w", err)
	}
	return buf.Bytes(), nil
}
