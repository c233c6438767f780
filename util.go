package cable

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

const (
	infinity     float64 = math.MaxFloat64
	magicEpsilon float64 = 1e-5

	// maxTangentIterations bounds the common tangent fixed-point search.
	maxTangentIterations int = 40

	// tangentThreshold is the squared displacement under which a tangent point is considered stable.
	tangentThreshold float64 = 1e-6

	// splitMargin is the dead zone at both ends of a joint where a ray hit does not split it.
	splitMargin float64 = 0.1
)

// Mod is a modulo operator that also follows intuition for negative arguments, -1 mod 3 = 2, not -1.
func Mod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func closestPointOnSegment(v, a, b vec.Vec2) vec.Vec2 {
	delta := a.Sub(b)
	lsq := delta.Dot(delta)
	if lsq == 0 {
		return b
	}
	t := clamp01(delta.Dot(v.Sub(b)) / lsq)
	return b.Add(delta.Scale(t))
}

// arcDistance measures the arc between two perimeter parameters of a closed curve of length
// perimeter. Parameters grow counter-clockwise; orientation true measures clockwise.
func arcDistance(sa, sb, perimeter float64, orientation, shortest bool) float64 {
	if perimeter <= 0 {
		return 0
	}
	d := sb - sa
	if orientation {
		d = -d
	}
	d = Mod(d, perimeter)
	if shortest && d >= perimeter*0.5 {
		d -= perimeter
	}
	return d
}

// orthogonal returns a unit vector perpendicular to v.
func orthogonal(v mgl64.Vec3) mgl64.Vec3 {
	o := v.Cross(mgl64.Vec3{0, 0, 1})
	if o.LenSqr() < magicEpsilon {
		o = v.Cross(mgl64.Vec3{1, 0, 0})
	}
	return o.Normalize()
}
