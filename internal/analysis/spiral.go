package analysis

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"
)

// Spiral rasters are normalized to this square grid before measurement.
const spiralGridSize = 256

// Luma values below inkThreshold count as drawing on the white canvas.
const inkThreshold = 200

// ErrNoDrawing is returned when the decoded image carries no ink.
var ErrNoDrawing = errors.New("no drawing detected")

// SpiralMetrics carries the raster measurements returned in the details.
type SpiralMetrics struct {
	InkPixels         int     `json:"ink_pixels"`
	InkRatio          float64 `json:"ink_ratio"`
	TremorRatio       float64 `json:"tremor_ratio"`
	CoverageComponent float64 `json:"coverage_component"`
	TremorComponent   float64 `json:"tremor_component"`
	Interpretation    string  `json:"interpretation"`
}

// ScoreSpiral measures tremor and stroke control in a drawn spiral image.
// The raster is scaled to a fixed grid and thresholded into an ink mask.
// Coverage picks up overdraw and wandering (a shaky path is longer than a
// clean one), and the residual against a blurred copy of the mask picks up
// high-frequency jitter along the stroke boundary. Both components are
// clamped to 100 and mixed evenly.
func ScoreSpiral(imageBytes []byte) (float64, *SpiralMetrics, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid image data: %w", err)
	}

	mask := rasterMask(img)

	ink := 0
	for _, v := range mask {
		if v > 0 {
			ink++
		}
	}
	if ink == 0 {
		return 0, nil, ErrNoDrawing
	}

	total := spiralGridSize * spiralGridSize
	inkRatio := float64(ink) / float64(total)

	blurred := boxBlur(mask, 2)
	tremorPixels := 0
	for i := range mask {
		d := int(mask[i]) - int(blurred[i])
		if d < 0 {
			d = -d
		}
		if d > 30 {
			tremorPixels++
		}
	}
	tremorRatio := float64(tremorPixels) / float64(total)

	coverage := clampScore(inkRatio * 2500)
	tremor := clampScore(tremorRatio * 800)
	score := round2(coverage*0.5 + tremor*0.5)

	metrics := &SpiralMetrics{
		InkPixels:         ink,
		InkRatio:          math.Round(inkRatio*1e6) / 1e6,
		TremorRatio:       math.Round(tremorRatio*1e6) / 1e6,
		CoverageComponent: round2(coverage),
		TremorComponent:   round2(tremor),
		Interpretation:    Interpretation(score),
	}
	return score, metrics, nil
}

// rasterMask scales the image to the analysis grid and thresholds it into a
// 0/255 ink mask. Transparent pixels count as background.
func rasterMask(img image.Image) []uint8 {
	scaled := image.NewRGBA(image.Rect(0, 0, spiralGridSize, spiralGridSize))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	mask := make([]uint8, spiralGridSize*spiralGridSize)
	for y := 0; y < spiralGridSize; y++ {
		for x := 0; x < spiralGridSize; x++ {
			c := scaled.RGBAAt(x, y)
			if c.A < 128 {
				continue
			}
			luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			if luma < inkThreshold {
				mask[y*spiralGridSize+x] = 255
			}
		}
	}
	return mask
}

// boxBlur smooths the mask with a (2*radius+1) square window, clamping the
// window at the grid edges.
func boxBlur(mask []uint8, radius int) []uint8 {
	out := make([]uint8, len(mask))
	for y := 0; y < spiralGridSize; y++ {
		for x := 0; x < spiralGridSize; x++ {
			sum, n := 0, 0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= spiralGridSize || ny >= spiralGridSize {
						continue
					}
					sum += int(mask[ny*spiralGridSize+nx])
					n++
				}
			}
			out[y*spiralGridSize+x] = uint8(sum / n)
		}
	}
	return out
}
