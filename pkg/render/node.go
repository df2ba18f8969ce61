package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
	"github.com/canvaskit/canvashtml/pkg/geometry"
)

// presetColors is the fixed palette for the preset keys "1".."6".
var presetColors = map[string]string{
	"1": "#e06c75", // red
	"2": "#d19a66", // orange
	"3": "#e5c07b", // yellow
	"4": "#98c379", // green
	"5": "#61afef", // blue
	"6": "#c678dd", // purple
}

// ResolveColor maps a node color to a CSS color expression: preset keys
// go through the palette, anything else is used verbatim (assumed to
// already be a valid color). Empty input stays empty.
func ResolveColor(c string) string {
	if c == "" {
		return ""
	}
	if preset, ok := presetColors[c]; ok {
		return preset
	}
	return c
}

// renderNode emits the markup fragment for a single node at its
// normalized position. Unknown kinds produce no output.
func (a *Assembler) renderNode(n canvas.Node, pos geometry.Point) string {
	style := nodeStyle(n, pos)

	switch n.Kind {
	case canvas.KindText:
		return textFragment(style, n.Text)

	case canvas.KindFile:
		asset, err := a.resolver.Resolve(n.File)
		if err != nil {
			a.warn(errors.GetCode(err), "node %s: %s", n.ID, errors.UserMessage(err))
			return fmt.Sprintf(`<div class="node node-text" style="%s">File not found: %s</div>`,
				style, html.EscapeString(n.File))
		}
		return fmt.Sprintf(`<div class="node node-file" style="%s"><img src="%s" alt="%s"></div>`,
			style, asset.DataURL, html.EscapeString(n.File))

	case canvas.KindLink:
		url := html.EscapeString(n.URL)
		return fmt.Sprintf(`<a href="%s" class="node node-link" style="%s" target="_blank" rel="noopener">%s</a>`,
			url, style, url)

	case canvas.KindGroup:
		return fmt.Sprintf(`<div class="node node-group" style="%s"><div>%s</div></div>`,
			style, html.EscapeString(n.Label))
	}

	return ""
}

// textFragment escapes node text and converts line breaks to <br>.
// No other formatting is interpreted.
func textFragment(style, text string) string {
	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	return fmt.Sprintf(`<div class="node node-text" style="%s">%s</div>`, style, escaped)
}

// nodeStyle builds the absolute-positioning style for a node, with an
// optional border color.
func nodeStyle(n canvas.Node, pos geometry.Point) string {
	style := fmt.Sprintf("left: %spx; top: %spx; width: %spx; height: %spx;",
		px(pos.X), px(pos.Y), px(n.Width), px(n.Height))
	if c := ResolveColor(n.Color); c != "" {
		style += fmt.Sprintf(" border-color: %s;", c)
	}
	return style
}

// px formats a coordinate without a trailing ".0" for whole values.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
