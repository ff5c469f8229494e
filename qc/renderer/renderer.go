package renderer

import (
	"image"
	"image/color"

	"github.com/kegliz/feynmansim/qc/circuit"
)

// Renderer turns a circuit into an immutable image.
// Strategy pattern lets us supply many renderers (PNG, SVG, ASCII…).
type Renderer interface {
	Render(c circuit.Circuit) (image.Image, error)
}

// CutRenderer additionally shades the two halves of a Feynman register
// cut and marks the gates crossing it, for diagrams produced alongside a
// feynman.Engine run.
type CutRenderer interface {
	Renderer
	RenderWithCut(c circuit.Circuit, cutIdx int) (image.Image, error)
}

// Defaultsize & look‑n‑feel knobs
var (
	WireColor  = color.Black
	GateFill   = color.White
	GateStroke = color.Black
)
