package cable

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// Disc is a circular rolling surface centered on the origin of its cable plane.
type Disc struct {
	SurfaceFrame
	Radius float64
}

// NewDisc creates a disc of the given radius posed at offset relative to mount.
func NewDisc(mount Mount, offset Transform, radius float64) *Disc {
	return &Disc{
		SurfaceFrame: SurfaceFrame{Mount: mount, Offset: offset, Thickness: radius},
		Radius:       radius,
	}
}

// Tangent returns the tangent point of the line from p that touches the disc on the wrap side
// given by orientation. Points inside the disc are projected radially onto its rim.
func (disc *Disc) Tangent(p mgl64.Vec3, orientation bool) mgl64.Vec3 {
	local := disc.ToPlane(p)
	d := local.Mag()
	r := disc.Radius

	if d <= r {
		if d < magicEpsilon {
			return disc.FromPlane(vec.Vec2{X: r})
		}
		return disc.FromPlane(local.Scale(r / d))
	}

	phi := math.Atan2(local.Y, local.X)
	alpha := math.Acos(r / d)
	if orientation {
		alpha = -alpha
	}
	return disc.FromPlane(disc.rim(phi + alpha))
}

// SurfaceDistance implements Surface.
func (disc *Disc) SurfaceDistance(a, b vec.Vec2, orientation, shortest bool) float64 {
	r := disc.Radius
	sa := math.Atan2(a.Y, a.X) * r
	sb := math.Atan2(b.Y, b.X) * r
	return arcDistance(sa, sb, 2*math.Pi*r, orientation, shortest)
}

// PointAtDistance implements Surface.
func (disc *Disc) PointAtDistance(start vec.Vec2, distance float64, orientation bool) mgl64.Vec3 {
	if disc.Radius <= 0 {
		return disc.FromPlane(vec.Vec2{})
	}
	angle := distance / disc.Radius
	if orientation {
		angle = -angle
	}
	return disc.FromPlane(disc.rim(math.Atan2(start.Y, start.X) + angle))
}

// RandomHullPoint implements Surface.
func (disc *Disc) RandomHullPoint() mgl64.Vec3 {
	return disc.FromPlane(vec.Vec2{X: disc.Radius})
}

// Perimeter returns the circumference of the disc.
func (disc *Disc) Perimeter() float64 {
	return 2 * math.Pi * disc.Radius
}

// BB returns the bounding box of the disc in its cable plane.
func (disc *Disc) BB() BB {
	return BBOf(vec.Vec2{X: -disc.Radius, Y: -disc.Radius}, vec.Vec2{X: disc.Radius, Y: disc.Radius})
}

// SegmentQuery performs a segment query against the disc. The segment must lie within
// Thickness of the cable plane to hit.
func (disc *Disc) SegmentQuery(a, b mgl64.Vec3, info *SegmentQueryInfo) bool {
	la, lb, ok := disc.segmentToPlane(a, b)
	if !ok || !disc.BB().Touches(la, lb) {
		return false
	}

	var hit planeHit
	circleSegmentQuery(vec.Vec2{}, disc.Radius, la, lb, &hit)
	if !hit.ok {
		return false
	}

	info.Surface = disc
	info.Point = lerp3(a, b, hit.alpha)
	info.Normal = disc.Transform().ApplyVector(mgl64.Vec3{hit.normal.X, hit.normal.Y, 0})
	info.Alpha = hit.alpha
	return true
}

func (disc *Disc) rim(angle float64) vec.Vec2 {
	return vec.Vec2{X: disc.Radius * math.Cos(angle), Y: disc.Radius * math.Sin(angle)}
}

// planeHit is a segment query result in cable plane coordinates.
type planeHit struct {
	ok     bool
	normal vec.Vec2
	alpha  float64
}

func circleSegmentQuery(center vec.Vec2, r float64, a, b vec.Vec2, info *planeHit) {
	da := a.Sub(center)
	db := b.Sub(center)

	qa := da.Dot(da) - 2*da.Dot(db) + db.Dot(db)
	qb := da.Dot(db) - da.Dot(da)
	det := qb*qb - qa*(da.Dot(da)-r*r)

	if det >= 0 && qa > 0 {
		t := (-qb - math.Sqrt(det)) / qa
		if 0 <= t && t <= 1 && (!info.ok || t < info.alpha) {
			info.ok = true
			info.normal = da.Lerp(db, t).Unit()
			info.alpha = t
		}
	}
}
