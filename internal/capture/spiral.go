package capture

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"neuromotion/internal/scoring"
)

// CanvasSize is the side length of the square drawing canvas in pixels.
const CanvasSize = 400

// SpiralScorer is the scoring call the spiral capture delegates to.
type SpiralScorer interface {
	SubmitSpiral(ctx context.Context, png []byte) (*scoring.SubScore, error)
}

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// SpiralCapture records freehand strokes drawn over a dashed guide
// spiral. Any number of strokes may be drawn before submission; Clear
// wipes them and leaves only the guide. Submission rasterizes the canvas
// to PNG and hands it to the scoring client. The guide is drawn lighter
// than the scoring threshold so an untouched canvas carries no ink.
type SpiralCapture struct {
	scorer    SpiralScorer
	strokes   [][]Point
	current   []Point
	drawn     bool
	submitted bool
	lastErr   error
	errTicks  int
}

func NewSpiralCapture(scorer SpiralScorer) *SpiralCapture {
	return &SpiralCapture{scorer: scorer}
}

// BeginStroke starts a new stroke at p. Starting a stroke cancels any
// pending error revert. Ignored once the capture has been submitted.
func (s *SpiralCapture) BeginStroke(p Point) {
	if s.submitted {
		return
	}
	s.lastErr = nil
	s.errTicks = 0
	s.current = []Point{p}
	s.drawn = true
}

// ExtendStroke appends p to the open stroke. Ignored when no stroke is
// open.
func (s *SpiralCapture) ExtendStroke(p Point) {
	if s.submitted || s.current == nil {
		return
	}
	s.current = append(s.current, p)
}

// EndStroke closes the open stroke.
func (s *SpiralCapture) EndStroke() {
	if s.submitted || s.current == nil {
		return
	}
	s.strokes = append(s.strokes, s.current)
	s.current = nil
}

// Clear erases all strokes, leaving only the guide. Ignored once the
// capture has been submitted.
func (s *SpiralCapture) Clear() {
	if s.submitted {
		return
	}
	s.strokes = nil
	s.current = nil
	s.drawn = false
	s.lastErr = nil
	s.errTicks = 0
}

// Tick counts down the error revert delay. When it elapses the canvas is
// cleared back to the instructional state.
func (s *SpiralCapture) Tick() {
	if s.lastErr == nil {
		return
	}
	if s.errTicks > 0 {
		s.errTicks--
	}
	if s.errTicks == 0 {
		s.Clear()
	}
}

// Drawn reports whether any stroke has been recorded since the last
// Clear.
func (s *SpiralCapture) Drawn() bool { return s.drawn }

// Err is the failure from the last submission attempt, nil otherwise.
func (s *SpiralCapture) Err() error { return s.lastErr }

// StrokeCount counts closed strokes plus any stroke still open.
func (s *SpiralCapture) StrokeCount() int {
	n := len(s.strokes)
	if s.current != nil {
		n++
	}
	return n
}

// Rasterize renders the white canvas, the dashed guide, and every stroke
// to a PNG.
func (s *SpiralCapture) Rasterize() ([]byte, error) {
	dc := gg.NewContext(CanvasSize, CanvasSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawGuide(dc)

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, stroke := range s.strokes {
		drawStroke(dc, stroke)
	}
	if s.current != nil {
		drawStroke(dc, s.current)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Submit rasterizes the canvas and sends it for scoring. A service
// failure parks the capture in the error state; the canvas clears back to
// the guide after the revert delay.
func (s *SpiralCapture) Submit(ctx context.Context) (*scoring.SubScore, error) {
	if s.submitted {
		return nil, &ValidationError{Field: "spiral", Reason: "already submitted"}
	}
	if !s.drawn {
		return nil, &ValidationError{Field: "spiral", Reason: "no stroke drawn"}
	}
	png, err := s.Rasterize()
	if err != nil {
		return nil, err
	}
	result, err := s.scorer.SubmitSpiral(ctx, png)
	if err != nil {
		s.lastErr = err
		s.errTicks = errorRevertTicks
		return nil, err
	}
	s.submitted = true
	return result, nil
}

// drawGuide renders the dashed three-turn reference spiral from the
// canvas center outward. It is a visual target only; its light grey sits
// above the ink threshold used by the analysis.
func drawGuide(dc *gg.Context) {
	const (
		turns  = 3.0
		startR = 5.0
		endR   = 175.0
	)
	growth := math.Log(endR/startR) / (turns * 2 * math.Pi)
	cx := float64(CanvasSize) / 2
	cy := float64(CanvasSize) / 2

	dc.SetRGB(0.87, 0.87, 0.87)
	dc.SetLineWidth(2)
	dc.SetDash(8, 6)
	for theta := 0.0; theta <= turns*2*math.Pi; theta += 0.05 {
		r := startR * math.Exp(growth*theta)
		x := cx + r*math.Cos(theta)
		y := cy + r*math.Sin(theta)
		if theta == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
	dc.SetDash()
}

func drawStroke(dc *gg.Context, stroke []Point) {
	if len(stroke) == 0 {
		return
	}
	if len(stroke) == 1 {
		dc.DrawPoint(stroke[0].X, stroke[0].Y, 1.5)
		dc.Fill()
		return
	}
	dc.MoveTo(stroke[0].X, stroke[0].Y)
	for _, p := range stroke[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}
