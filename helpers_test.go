package cable_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
)

const dt = 1.0 / 60.0

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func approxVec(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	if !approxVec(got, want, tol) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// fixedPoint returns a point anchor at p in world space.
func fixedPoint(p mgl64.Vec3) *cable.PointAnchor {
	return cable.NewPointAnchor(cable.NewTransformIdentity(), p)
}

// pulley builds an open cable from (-2,-3,0) over the top of a unit disc at the origin to (2,-3,0).
func pulley(mount cable.Mount) (*cable.Cable, *cable.Disc) {
	disc := cable.NewDisc(mount, cable.NewTransformIdentity(), 1)
	c := cable.NewCable(
		cable.Link{Surface: fixedPoint(mgl64.Vec3{-2, -3, 0}), Kind: cable.Attachment},
		cable.Link{Surface: disc, Kind: cable.Rolling, Orientation: true},
		cable.Link{Surface: fixedPoint(mgl64.Vec3{2, -3, 0}), Kind: cable.Attachment},
	)
	return c, disc
}
