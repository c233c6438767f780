package cable

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// Mount is anything with a world pose a surface can be attached to.
// *Body and Transform both satisfy it.
type Mount interface {
	Transform() Transform
}

// Surface is the geometric capability a cable link is bound to.
//
// Every surface has a cable plane: the XY plane of its local space, with the
// local +Z axis as normal. Rolling geometry is a 2D profile in that plane.
//
// Winding convention: orientation false means the cable wraps counter-clockwise
// about the plane normal, true means clockwise. Arc positions grow
// counter-clockwise.
type Surface interface {
	// Body returns the rigid body the surface moves with, nil for static scenery.
	Body() RigidBody
	// Transform returns the world pose of the surface.
	Transform() Transform
	// PlaneNormal returns the world space normal of the cable plane.
	PlaneNormal() mgl64.Vec3
	// ToPlane projects a world point into cable plane coordinates.
	ToPlane(p mgl64.Vec3) vec.Vec2
	// FromPlane maps cable plane coordinates to a world point.
	FromPlane(p vec.Vec2) mgl64.Vec3
	// Tangent returns the world point where a taut cable coming from p touches the surface.
	Tangent(p mgl64.Vec3, orientation bool) mgl64.Vec3
	// SurfaceDistance returns the arc length from a to b measured positive in the wrap
	// direction of orientation. With shortest it is signed in [-P/2, P/2), otherwise
	// it is the directed arc in [0, P), P being the perimeter.
	SurfaceDistance(a, b vec.Vec2, orientation, shortest bool) float64
	// PointAtDistance walks distance along the surface from start in the wrap direction of orientation.
	PointAtDistance(start vec.Vec2, distance float64, orientation bool) mgl64.Vec3
	// RandomHullPoint returns an arbitrary point of the surface, used to seed tangent searches.
	RandomHullPoint() mgl64.Vec3
}

// Raycaster finds the closest surface crossed by the segment from a to b.
type Raycaster interface {
	Raycast(a, b mgl64.Vec3, ignore ...Surface) (RaycastHit, bool)
}

// RaycastHit describes a ray query result.
type RaycastHit struct {
	// The surface that was hit.
	Surface Surface
	// The point of impact, in world space.
	Point mgl64.Vec3
	// The world space normal of the surface hit.
	Normal mgl64.Vec3
	// Distance from the ray origin to Point.
	Distance float64
}

// SegmentQueryInfo is segment query info struct.
type SegmentQueryInfo struct {
	// The surface that was hit, or nil if no collision occurred.
	Surface Surface
	// The point of impact, in world space.
	Point mgl64.Vec3
	// The normal of the surface hit, in world space.
	Normal mgl64.Vec3
	// The normalized distance along the query segment in the range [0, 1].
	Alpha float64
}

// SegmentQuerier is implemented by surfaces that can be hit by rays: discs and convex hulls.
type SegmentQuerier interface {
	Surface
	SegmentQuery(a, b mgl64.Vec3, info *SegmentQueryInfo) bool
}

// SurfaceFrame holds the pose shared by all surface implementations.
type SurfaceFrame struct {
	// Mount is what the surface moves with. Nil means the world origin.
	Mount Mount
	// Offset is the pose of the surface relative to Mount.
	Offset Transform
	// Thickness is the half extent of the surface along its normal. Ray queries farther
	// than this from the cable plane miss.
	Thickness float64
}

// Transform returns the world pose of the surface.
func (f SurfaceFrame) Transform() Transform {
	if f.Mount == nil {
		return f.Offset
	}
	return f.Mount.Transform().Mult(f.Offset)
}

// Body returns Mount as a rigid body, if it is one.
func (f SurfaceFrame) Body() RigidBody {
	if rb, ok := f.Mount.(RigidBody); ok {
		return rb
	}
	return nil
}

// PlaneNormal returns the world space normal of the cable plane.
func (f SurfaceFrame) PlaneNormal() mgl64.Vec3 {
	return f.Transform().ApplyVector(mgl64.Vec3{0, 0, 1})
}

// ToPlane projects a world point into cable plane coordinates.
func (f SurfaceFrame) ToPlane(p mgl64.Vec3) vec.Vec2 {
	l := f.Transform().InverseApply(p)
	return vec.Vec2{X: l[0], Y: l[1]}
}

// FromPlane maps cable plane coordinates to a world point.
func (f SurfaceFrame) FromPlane(p vec.Vec2) mgl64.Vec3 {
	return f.Transform().Apply(mgl64.Vec3{p.X, p.Y, 0})
}

// segmentToPlane projects a world segment into the cable plane. It fails when either
// end lies farther than Thickness from the plane.
func (f SurfaceFrame) segmentToPlane(a, b mgl64.Vec3) (vec.Vec2, vec.Vec2, bool) {
	t := f.Transform()
	la := t.InverseApply(a)
	lb := t.InverseApply(b)
	thickness := f.Thickness
	if thickness <= 0 {
		thickness = magicEpsilon
	}
	if abs(la[2]) > thickness || abs(lb[2]) > thickness {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	return vec.Vec2{X: la[0], Y: la[1]}, vec.Vec2{X: lb[0], Y: lb[1]}, true
}

// PointAnchor is a surface reduced to a single point, the origin of its cable plane.
// Cable can be attached to it or slide through it, but never wraps around it.
type PointAnchor struct {
	SurfaceFrame
}

// NewPointAnchor creates a point surface at offset from mount.
func NewPointAnchor(mount Mount, offset mgl64.Vec3) *PointAnchor {
	return &PointAnchor{SurfaceFrame{Mount: mount, Offset: NewTransformTranslate(offset)}}
}

// Tangent always returns the anchor point.
func (pa *PointAnchor) Tangent(p mgl64.Vec3, orientation bool) mgl64.Vec3 {
	return pa.FromPlane(vec.Vec2{})
}

// SurfaceDistance is always zero: a point stores no cable.
func (pa *PointAnchor) SurfaceDistance(a, b vec.Vec2, orientation, shortest bool) float64 {
	return 0
}

// PointAtDistance always returns the anchor point.
func (pa *PointAnchor) PointAtDistance(start vec.Vec2, distance float64, orientation bool) mgl64.Vec3 {
	return pa.FromPlane(vec.Vec2{})
}

// RandomHullPoint returns the anchor point.
func (pa *PointAnchor) RandomHullPoint() mgl64.Vec3 {
	return pa.FromPlane(vec.Vec2{})
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
