package cable_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
	"github.com/setanarut/vec"
)

func TestDiscTangent(t *testing.T) {
	disc := cable.NewDisc(cable.NewTransformIdentity(), cable.NewTransformIdentity(), 1)
	s := math.Sqrt(3) / 2

	// counter-clockwise wrap touches the upper side when coming from +X.
	assertVec(t, "ccw", disc.Tangent(mgl64.Vec3{2, 0, 0}, false), mgl64.Vec3{0.5, s, 0}, 1e-12)
	assertVec(t, "cw", disc.Tangent(mgl64.Vec3{2, 0, 0}, true), mgl64.Vec3{0.5, -s, 0}, 1e-12)

	// points inside are projected on the rim.
	assertVec(t, "inside", disc.Tangent(mgl64.Vec3{0.5, 0, 0}, false), mgl64.Vec3{1, 0, 0}, 1e-12)
}

func TestDiscSurfaceDistance(t *testing.T) {
	disc := cable.NewDisc(nil, cable.NewTransformIdentity(), 2)
	a := vec.Vec2{X: 2, Y: 0}
	b := vec.Vec2{X: 0, Y: 2}

	if d := disc.SurfaceDistance(a, b, false, true); !approx(d, math.Pi, 1e-12) {
		t.Errorf("ccw shortest = %v, want %v", d, math.Pi)
	}
	if d := disc.SurfaceDistance(a, b, true, true); !approx(d, -math.Pi, 1e-12) {
		t.Errorf("cw shortest = %v, want %v", d, -math.Pi)
	}
	if d := disc.SurfaceDistance(a, b, true, false); !approx(d, 3*math.Pi, 1e-12) {
		t.Errorf("cw directed = %v, want %v", d, 3*math.Pi)
	}

	assertVec(t, "PointAtDistance ccw", disc.PointAtDistance(a, math.Pi, false), mgl64.Vec3{0, 2, 0}, 1e-12)
	assertVec(t, "PointAtDistance cw", disc.PointAtDistance(a, math.Pi, true), mgl64.Vec3{0, -2, 0}, 1e-12)
}

func TestDiscPlane(t *testing.T) {
	body := cable.NewKinematicBody()
	body.SetPosition(mgl64.Vec3{0, 1, 0})
	offset := cable.NewTransformRigid(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))
	disc := cable.NewDisc(body, offset, 1)

	assertVec(t, "PlaneNormal", disc.PlaneNormal(), mgl64.Vec3{0, -1, 0}, 1e-12)
	assertVec(t, "FromPlane", disc.FromPlane(vec.Vec2{X: 0, Y: 1}), mgl64.Vec3{0, 1, 1}, 1e-12)

	p := disc.ToPlane(mgl64.Vec3{1, 1, 1})
	if !approx(p.X, 1, 1e-12) || !approx(p.Y, 1, 1e-12) {
		t.Errorf("ToPlane = %v", p)
	}
	if disc.Body() != cable.RigidBody(body) {
		t.Errorf("Body() is not the mount")
	}
}

func TestDiscSegmentQuery(t *testing.T) {
	disc := cable.NewDisc(nil, cable.NewTransformIdentity(), 1)
	var info cable.SegmentQueryInfo

	if !disc.SegmentQuery(mgl64.Vec3{-3, 0, 0}, mgl64.Vec3{3, 0, 0}, &info) {
		t.Fatal("expected a hit")
	}
	assertVec(t, "Point", info.Point, mgl64.Vec3{-1, 0, 0}, 1e-9)
	assertVec(t, "Normal", info.Normal, mgl64.Vec3{-1, 0, 0}, 1e-9)
	if !approx(info.Alpha, 1.0/3.0, 1e-9) {
		t.Errorf("Alpha = %v", info.Alpha)
	}

	// out of the disc thickness.
	if disc.SegmentQuery(mgl64.Vec3{-3, 0, 2}, mgl64.Vec3{3, 0, 2}, &info) {
		t.Error("segment off the plane should miss")
	}
	if disc.SegmentQuery(mgl64.Vec3{-3, 2, 0}, mgl64.Vec3{3, 2, 0}, &info) {
		t.Error("segment above the disc should miss")
	}
}

func square() *cable.ConvexHull {
	return cable.NewConvexHull(nil, cable.NewTransformIdentity(), []mgl64.Vec3{
		{1, 1, 0}, {-1, 1, 0}, {0, 0, 0}, {-1, -1, 0}, {1, -1, 0}, {0.5, 0.2, 0},
	})
}

func TestConvexHullBuild(t *testing.T) {
	hull := square()

	if hull.Count() != 4 {
		t.Fatalf("Count = %d, want 4", hull.Count())
	}
	if !approx(hull.Perimeter(), 8, 1e-12) {
		t.Errorf("Perimeter = %v", hull.Perimeter())
	}

	// vertices wind counter-clockwise.
	area := 0.0
	for i := range hull.Count() {
		a, b := hull.Vert(i), hull.Vert((i+1)%hull.Count())
		area += a.X*b.Y - a.Y*b.X
	}
	if area <= 0 {
		t.Errorf("hull winds clockwise")
	}
}

func TestConvexHullTangent(t *testing.T) {
	hull := square()
	p := mgl64.Vec3{3, 0, 0}

	assertVec(t, "ccw", hull.Tangent(p, false), mgl64.Vec3{1, 1, 0}, 1e-12)
	assertVec(t, "cw", hull.Tangent(p, true), mgl64.Vec3{1, -1, 0}, 1e-12)
	assertVec(t, "inside", hull.Tangent(mgl64.Vec3{0.9, 0.2, 0}, false), mgl64.Vec3{1, 0.2, 0}, 1e-12)
}

func TestConvexHullSurfaceDistance(t *testing.T) {
	hull := square()
	a := vec.Vec2{X: 1, Y: 1}
	b := vec.Vec2{X: -1, Y: 1}

	if d := hull.SurfaceDistance(a, b, false, true); !approx(d, 2, 1e-12) {
		t.Errorf("ccw shortest = %v, want 2", d)
	}
	if d := hull.SurfaceDistance(a, b, true, true); !approx(d, -2, 1e-12) {
		t.Errorf("cw shortest = %v, want -2", d)
	}
	if d := hull.SurfaceDistance(a, b, true, false); !approx(d, 6, 1e-12) {
		t.Errorf("cw directed = %v, want 6", d)
	}

	assertVec(t, "PointAtDistance ccw", hull.PointAtDistance(a, 2, false), mgl64.Vec3{-1, 1, 0}, 1e-12)
	assertVec(t, "PointAtDistance cw", hull.PointAtDistance(a, 1, true), mgl64.Vec3{1, 0, 0}, 1e-12)
}

func TestConvexHullSegmentQuery(t *testing.T) {
	hull := square()
	var info cable.SegmentQueryInfo

	if !hull.SegmentQuery(mgl64.Vec3{-3, 0.5, 0}, mgl64.Vec3{3, 0.5, 0}, &info) {
		t.Fatal("expected a hit")
	}
	assertVec(t, "Point", info.Point, mgl64.Vec3{-1, 0.5, 0}, 1e-9)
	assertVec(t, "Normal", info.Normal, mgl64.Vec3{-1, 0, 0}, 1e-9)

	if hull.SegmentQuery(mgl64.Vec3{-3, 1.5, 0}, mgl64.Vec3{3, 1.5, 0}, &info) {
		t.Error("segment above the hull should miss")
	}
}

func TestPointAnchor(t *testing.T) {
	anchor := cable.NewPointAnchor(cable.NewTransformTranslate(mgl64.Vec3{1, 2, 3}), mgl64.Vec3{1, 0, 0})
	want := mgl64.Vec3{2, 2, 3}

	assertVec(t, "Tangent", anchor.Tangent(mgl64.Vec3{10, 0, 0}, false), want, 1e-12)
	assertVec(t, "RandomHullPoint", anchor.RandomHullPoint(), want, 1e-12)
	if anchor.SurfaceDistance(vec.Vec2{}, vec.Vec2{X: 1}, false, true) != 0 {
		t.Fail()
	}
	if anchor.Body() != nil {
		t.Error("a Transform mount has no body")
	}
}
