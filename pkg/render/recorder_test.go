package render

import (
	"image/color"
	"testing"
)

func TestRecorderCapturesState(t *testing.T) {
	r := NewRecorder(800, 600)

	r.FillCircle(10, 20, 3, white)
	r.SetGlobalAlpha(0.5)
	r.SetBlend(BlendAdditive)
	r.FillCircle(10, 980, 3, color.NRGBA{R: 255, A: 128})

	circles := r.Filter(OpFillCircle)
	if len(circles) != 2 {
		t.Fatalf("expected 2 circles, got %d", len(circles))
	}
	if circles[0].Alpha != 1 || circles[0].Blend != BlendNormal {
		t.Errorf("first circle should use default state, got alpha %v blend %v", circles[0].Alpha, circles[0].Blend)
	}
	if circles[1].Alpha != 0.5 || circles[1].Blend != BlendAdditive {
		t.Errorf("second circle should capture alpha 0.5 additive, got %v %v", circles[1].Alpha, circles[1].Blend)
	}
	if got := circles[1].EffectiveAlpha(); got < 0.25 || got > 0.26 {
		t.Errorf("effective alpha should be about 0.25, got %v", got)
	}

	r.Reset()
	if len(r.Commands) != 0 || r.GlobalAlpha() != 1 {
		t.Error("Reset should clear commands and state")
	}
}

func TestRecorderCopiesSlices(t *testing.T) {
	r := NewRecorder(100, 100)
	pts := []Point{{0, 0}, {1, 0}, {1, 1}}
	r.FillPolygon(pts, white)
	pts[0].X = 99

	if r.Commands[0].Points[0].X != 0 {
		t.Error("recorded polygon must not alias the caller's slice")
	}
}
