package chart

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

const (
	DefaultWidth  = 480
	DefaultHeight = 200

	margin    = 16.0
	maxHealth = 100.0
)

type Options struct {
	Width  int
	Height int
	// Dead draws the line in the wilted colour.
	Dead bool
}

// HealthImage plots a health history (0..100 per day) as a line chart.
func HealthImage(history []float64, opts Options) image.Image {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.97, 0.96, 0.92)
	dc.Clear()

	left, top := margin, margin
	plotW := float64(w) - 2*margin
	plotH := float64(h) - 2*margin

	// guide lines at 25% steps
	dc.SetRGBA(0, 0, 0, 0.12)
	dc.SetLineWidth(1)
	for i := 0; i <= 4; i++ {
		y := top + plotH*float64(i)/4
		dc.DrawLine(left, y, left+plotW, y)
		dc.Stroke()
	}

	if len(history) == 0 {
		return dc.Image()
	}

	step := plotW
	if len(history) > 1 {
		step = plotW / float64(len(history)-1)
	}
	point := func(i int) (float64, float64) {
		v := clamp(history[i], 0, maxHealth)
		return left + step*float64(i), top + plotH*(1-v/maxHealth)
	}

	if opts.Dead {
		dc.SetRGB(0.55, 0.42, 0.25)
	} else {
		dc.SetRGB(0.20, 0.60, 0.25)
	}
	dc.SetLineWidth(2.5)
	x, y := point(0)
	dc.MoveTo(x, y)
	for i := 1; i < len(history); i++ {
		x, y = point(i)
		dc.LineTo(x, y)
	}
	dc.Stroke()

	dc.DrawCircle(x, y, 3.5)
	dc.Fill()
	return dc.Image()
}

// HealthPNG renders HealthImage and encodes it as PNG.
func HealthPNG(history []float64, opts Options) ([]byte, error) {
	dc := gg.NewContextForImage(HealthImage(history, opts))
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode health chart: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
