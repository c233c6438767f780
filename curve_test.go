package cable_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
)

func polylineLength(points ...[]mgl64.Vec3) float64 {
	var all []mgl64.Vec3
	for _, p := range points {
		all = append(all, p...)
	}
	l := 0.0
	for i := 1; i < len(all); i++ {
		l += all[i].Sub(all[i-1]).Len()
	}
	return l
}

func TestCatenary(t *testing.T) {
	p1 := mgl64.Vec3{}
	p2 := mgl64.Vec3{2, 0, 0}

	points, ok := cable.Catenary(p1, p2, 2.5, 10, nil)
	if !ok {
		t.Fatal("catenary failed")
	}
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	for _, p := range points {
		if p[1] >= 0 || p[2] != 0 {
			t.Errorf("point %v should hang below the endpoints", p)
		}
	}

	l := polylineLength([]mgl64.Vec3{p1}, points, []mgl64.Vec3{p2})
	if !approx(l, 2.5, 0.025) {
		t.Errorf("length = %v, want 2.5", l)
	}
}

func TestCatenarySlope(t *testing.T) {
	p1 := mgl64.Vec3{0, 1, 0}
	p2 := mgl64.Vec3{0, 0, 3}

	points, ok := cable.Catenary(p1, p2, 4, 20, nil)
	if !ok {
		t.Fatal("catenary failed")
	}
	for _, p := range points {
		if p[0] != 0 {
			t.Errorf("point %v left the vertical plane of the endpoints", p)
		}
	}
	l := polylineLength([]mgl64.Vec3{p1}, points, []mgl64.Vec3{p2})
	if !approx(l, 4, 0.04) {
		t.Errorf("length = %v, want 4", l)
	}
}

func TestCatenaryDegenerate(t *testing.T) {
	buf := make([]mgl64.Vec3, 4)

	if pts, ok := cable.Catenary(mgl64.Vec3{}, mgl64.Vec3{2, 0, 0}, 1.5, 10, buf); ok || len(pts) != 0 {
		t.Error("shorter than the chord")
	}
	if _, ok := cable.Catenary(mgl64.Vec3{}, mgl64.Vec3{2, 0, 0}, 2.5, 1, buf); ok {
		t.Error("single sample")
	}
	if _, ok := cable.Catenary(mgl64.Vec3{}, mgl64.Vec3{0, -2, 0}, 2.5, 10, buf); ok {
		t.Error("vertical")
	}
}

func TestSinusoid(t *testing.T) {
	origin := mgl64.Vec3{}
	direction := mgl64.Vec3{2, 0, 0}

	if _, ok := cable.Sinusoid(origin, direction, 2, 1, 10, nil); ok {
		t.Error("no slack, no wave")
	}
	if _, ok := cable.Sinusoid(origin, direction, 3, 0, 10, nil); ok {
		t.Error("zero frequency")
	}

	points, ok := cable.Sinusoid(origin, direction, 3, 1, 10, nil)
	if !ok {
		t.Fatal("sinusoid failed")
	}
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}

	// amplitude = sqrt(l^2 - d^2) / 4f
	amplitude := 0.5590169943749475
	for i, p := range points {
		if x := 2 * float64(i+1) / 9; !approx(p[0], x, 1e-12) {
			t.Errorf("point %d x = %v, want %v", i, p[0], x)
		}
		if off := (mgl64.Vec3{0, p[1], p[2]}).Len(); off > amplitude+1e-12 {
			t.Errorf("point %d offset %v exceeds the amplitude", i, off)
		}
	}
}
