package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"

	_ "image/png"

	"neuromotion/internal/scoring"
)

// inkPixels counts pixels darker than the scoring threshold, which the
// guide spiral must stay above.
func inkPixels(t *testing.T, png []byte) int {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(png))
	if err != nil {
		t.Fatalf("decoding raster: %v", err)
	}
	count := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			if luma < 200 {
				count++
			}
		}
	}
	return count
}

func TestSpiralSubmitWithoutDrawing(t *testing.T) {
	scorer := &fakeScorer{}
	sc := NewSpiralCapture(scorer)

	var verr *ValidationError
	if _, err := sc.Submit(context.Background()); !errors.As(err, &verr) {
		t.Fatalf("empty submit error = %v, want ValidationError", err)
	}
	if scorer.spiralCalls != 0 {
		t.Errorf("empty submit reached the scorer %d times", scorer.spiralCalls)
	}
}

func TestSpiralSingleStrokeSubmit(t *testing.T) {
	scorer := &fakeScorer{}
	sc := NewSpiralCapture(scorer)

	sc.BeginStroke(Point{X: 180, Y: 200})
	sc.ExtendStroke(Point{X: 220, Y: 200})
	sc.EndStroke()
	if !sc.Drawn() {
		t.Fatal("stroke not registered as drawn")
	}

	result, err := sc.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Kind != scoring.KindSpiral {
		t.Errorf("result kind = %s, want %s", result.Kind, scoring.KindSpiral)
	}
	if !bytes.HasPrefix(scorer.lastPNG, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("submitted payload is not a PNG")
	}
}

func TestSpiralClearErasesStrokes(t *testing.T) {
	scorer := &fakeScorer{}
	sc := NewSpiralCapture(scorer)

	sc.BeginStroke(Point{X: 100, Y: 100})
	sc.ExtendStroke(Point{X: 150, Y: 150})
	sc.EndStroke()
	sc.Clear()

	if sc.Drawn() {
		t.Error("canvas reported drawn after Clear")
	}
	if sc.StrokeCount() != 0 {
		t.Errorf("stroke count after Clear = %d, want 0", sc.StrokeCount())
	}
	var verr *ValidationError
	if _, err := sc.Submit(context.Background()); !errors.As(err, &verr) {
		t.Fatalf("submit after Clear error = %v, want ValidationError", err)
	}
}

func TestSpiralGuideCarriesNoInk(t *testing.T) {
	sc := NewSpiralCapture(&fakeScorer{})

	blank, err := sc.Rasterize()
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if got := inkPixels(t, blank); got != 0 {
		t.Fatalf("untouched canvas rasterized %d ink pixels, want 0", got)
	}

	sc.BeginStroke(Point{X: 150, Y: 200})
	sc.ExtendStroke(Point{X: 250, Y: 200})
	sc.EndStroke()
	drawn, err := sc.Rasterize()
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if got := inkPixels(t, drawn); got == 0 {
		t.Error("drawn stroke rasterized no ink pixels")
	}
}

func TestSpiralSubmitFailureReverts(t *testing.T) {
	scorer := &fakeScorer{err: &scoring.ServiceError{Op: "analyze/spiral", StatusCode: 502, Body: "bad gateway"}}
	sc := NewSpiralCapture(scorer)

	sc.BeginStroke(Point{X: 100, Y: 100})
	sc.ExtendStroke(Point{X: 300, Y: 300})
	sc.EndStroke()

	if _, err := sc.Submit(context.Background()); err == nil {
		t.Fatal("failed scorer call reported success")
	}
	if sc.Err() == nil {
		t.Fatal("Err() is nil after failed submit")
	}

	// The canvas clears back to the guide after the display delay.
	sc.Tick()
	sc.Tick()
	if !sc.Drawn() {
		t.Fatal("canvas cleared before the revert delay elapsed")
	}
	sc.Tick()
	if sc.Drawn() {
		t.Error("canvas still drawn after revert")
	} else if sc.Err() != nil {
		t.Errorf("Err() after revert = %v, want nil", sc.Err())
	}
}

func TestSpiralNewStrokeCancelsRevert(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("down")}
	sc := NewSpiralCapture(scorer)

	sc.BeginStroke(Point{X: 100, Y: 100})
	sc.EndStroke()
	if _, err := sc.Submit(context.Background()); err == nil {
		t.Fatal("failed scorer call reported success")
	}

	sc.BeginStroke(Point{X: 120, Y: 120})
	sc.EndStroke()
	sc.Tick()
	sc.Tick()
	sc.Tick()
	if !sc.Drawn() {
		t.Error("revert cleared a canvas the user had redrawn")
	}
}

func TestSpiralFrozenAfterSubmit(t *testing.T) {
	scorer := &fakeScorer{}
	sc := NewSpiralCapture(scorer)

	sc.BeginStroke(Point{X: 100, Y: 100})
	sc.ExtendStroke(Point{X: 200, Y: 200})
	sc.EndStroke()
	if _, err := sc.Submit(context.Background()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	before := sc.StrokeCount()
	sc.BeginStroke(Point{X: 10, Y: 10})
	if sc.StrokeCount() != before {
		t.Error("stroke accepted after submit")
	}
	sc.Clear()
	if !sc.Drawn() {
		t.Error("Clear wiped a submitted capture")
	}

	var verr *ValidationError
	if _, err := sc.Submit(context.Background()); !errors.As(err, &verr) {
		t.Errorf("second submit error = %v, want ValidationError", err)
	}
}
