package cable_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
)

type recorder struct {
	flags     uint
	circles   int
	segments  int
	polylines int
	dots      int
	points    int
}

func (r *recorder) DrawCircle(center, normal mgl64.Vec3, radius float64, outline cable.FColor, data any) {
	r.circles++
}

func (r *recorder) DrawSegment(a, b mgl64.Vec3, fill cable.FColor, data any) {
	r.segments++
}

func (r *recorder) DrawPolyline(points []mgl64.Vec3, fill cable.FColor, data any) {
	r.polylines++
	r.points += len(points)
}

func (r *recorder) DrawDot(size float64, pos mgl64.Vec3, fill cable.FColor, data any) {
	r.dots++
}

func (r *recorder) Flags() uint { return r.flags }
func (r *recorder) OutlineColor() cable.FColor { return cable.FColor{R: 1, G: 1, B: 1, A: 1} }
func (r *recorder) Data() any { return nil }
func (r *recorder) SurfaceColor(surface cable.Surface, data any) cable.FColor {
	return cable.FColor{R: 0.5, A: 1}
}
func (r *recorder) JointColor(joint *cable.Joint, data any) cable.FColor {
	return cable.FColor{G: float32(joint.Strain()), A: 1}
}

func TestDrawWorld(t *testing.T) {
	w := cable.NewWorld()
	c, disc := pulley(nil)
	w.AddSurface(disc)
	w.AddSurface(square())
	w.AddSurface(c.Link(0).Surface)
	w.AddCable(c)

	r := &recorder{flags: cable.DrawSurfaces}
	cable.DrawWorld(w, nil, r)
	if r.circles != 1 || r.segments != 4 || r.dots != 1 {
		t.Errorf("surfaces: %+v", r)
	}

	r = &recorder{flags: cable.DrawJoints}
	cable.DrawWorld(w, nil, r)
	if r.segments != 2 || r.dots != 4 {
		t.Errorf("joints: %+v", r)
	}

	r = &recorder{flags: cable.DrawSamples}
	cable.DrawWorld(w, nil, r)
	if r.polylines != 0 {
		t.Errorf("samples drawn without a sampler: %+v", r)
	}
	cable.DrawWorld(w, cable.NewSampler(), r)
	if r.polylines != 1 || r.points < 3 {
		t.Errorf("samples: %+v", r)
	}
}
