package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/kegliz/feynmansim/qc/circuit"
	"github.com/kegliz/feynmansim/qc/gate"
)

// GGPNG renders a circuit's gates and wires to a PNG using fogleman/gg,
// optionally shading the two halves of a Feynman register cut and
// highlighting the CZ gates straddling it.
type GGPNG struct{ Cell float64 }

// NewRenderer returns a renderer that emits lossless PNGs using gg.
func NewRenderer(cellPx int) GGPNG { return GGPNG{Cell: float64(cellPx)} }

func (r GGPNG) Render(c circuit.Circuit) (image.Image, error) {
	return r.render(c, -1)
}

// RenderWithCut additionally shades qubits [0,cutIdx) vs [cutIdx,n) and
// draws a horizontal divider between them, and draws every two-qubit gate
// whose control and target fall on opposite sides with a thicker red
// connector line.
func (r GGPNG) RenderWithCut(c circuit.Circuit, cutIdx int) (image.Image, error) {
	return r.render(c, cutIdx)
}

func (r GGPNG) maxCycle(c circuit.Circuit) int {
	max := -1
	for _, g := range c.Gates() {
		if g.Cycle > max {
			max = g.Cycle
		}
	}
	return max
}

func (r GGPNG) render(c circuit.Circuit, cutIdx int) (image.Image, error) {
	steps := r.maxCycle(c) + 1
	if steps < 1 {
		steps = 1
	}
	w := int(float64(steps) * r.Cell)
	h := int(float64(c.NumQubits()) * r.Cell)
	if h <= 0 {
		h = int(r.Cell)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if cutIdx > 0 && cutIdx < c.NumQubits() {
		dc.SetRGB(0.93, 0.96, 1.0)
		dc.DrawRectangle(0, 0, float64(w), float64(cutIdx)*r.Cell)
		dc.Fill()
		dc.SetRGB(1.0, 0.97, 0.93)
		dc.DrawRectangle(0, float64(cutIdx)*r.Cell, float64(w), float64(h)-float64(cutIdx)*r.Cell)
		dc.Fill()
		dc.SetRGB(0.6, 0.2, 0.2)
		dc.SetLineWidth(2)
		y := float64(cutIdx) * r.Cell
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for i := 0; i < c.NumQubits(); i++ {
		y := r.y(i)
		dc.DrawLine(0, y, float64(w), y)
		dc.Stroke()
	}

	for _, g := range c.Gates() {
		crossing := cutIdx > 0 && g.Kind.IsTwoQubit() && (g.Control < cutIdx) != (g.Target < cutIdx)
		switch {
		case g.Kind.IsTwoQubit():
			r.drawTwoQubit(dc, g, crossing)
		default:
			r.drawBoxGate(dc, g)
		}
	}

	return dc.Image(), nil
}

func (r GGPNG) Save(path string, c circuit.Circuit) error {
	img, err := r.Render(c)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (r GGPNG) x(step int) float64 { return float64(step)*r.Cell + r.Cell/2 }
func (r GGPNG) y(line int) float64 { return float64(line)*r.Cell + r.Cell/2 }

func (r GGPNG) drawBoxGate(dc *gg.Context, g gate.Gate) {
	x, y := r.x(g.Cycle), r.y(g.Target)
	size := r.Cell * .7
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x-size/2, y-size/2, size, size)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
	dc.DrawStringAnchored(g.Kind.String(), x, y, 0.5, 0.5)
}

func (r GGPNG) drawTwoQubit(dc *gg.Context, g gate.Gate, crossing bool) {
	x := r.x(g.Cycle)
	yCtrl, yTgt := r.y(g.Control), r.y(g.Target)

	lineWidth := 1.0
	if crossing {
		lineWidth = 3.0
	}
	dc.SetRGB(0, 0, 0)
	if crossing {
		dc.SetRGB(0.7, 0.1, 0.1)
	}
	dc.SetLineWidth(lineWidth)
	dc.DrawLine(x, yCtrl, x, yTgt)
	dc.Stroke()

	dc.DrawCircle(x, yCtrl, r.Cell*0.12)
	dc.Fill()

	switch g.Kind {
	case gate.CZ:
		dc.DrawCircle(x, yTgt, r.Cell*0.12)
		dc.Fill()
	case gate.CX:
		dc.DrawCircle(x, yTgt, r.Cell*0.18)
		dc.Stroke()
		dc.DrawLine(x-r.Cell*0.18, yTgt, x+r.Cell*0.18, yTgt)
		dc.Stroke()
		dc.DrawLine(x, yTgt-r.Cell*0.18, x, yTgt+r.Cell*0.18)
		dc.Stroke()
	default:
		dc.DrawStringAnchored(fmt.Sprintf("%s", g.Kind), x, yTgt, 0.5, 0.5)
	}
}
