package cable

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// SplittingPlane is an edge of a convex hull. V0 is the vertex the edge ends at, N its outward normal.
type SplittingPlane struct {
	V0, N vec.Vec2
}

// ConvexHull is a convex polygonal rolling surface in its cable plane.
// Vertices are stored counter-clockwise.
type ConvexHull struct {
	SurfaceFrame
	count  int
	Planes []SplittingPlane
	// lengths[i] is the perimeter parameter of vertex i. lengths[count] is the perimeter.
	lengths []float64
	bb      BB
}

// NewConvexHull builds the convex hull of points given in the local space of offset. Points are
// projected onto the cable plane. Thickness is set to half the extent of the points along the
// plane normal, with a floor so flat hulls still receive ray hits.
func NewConvexHull(mount Mount, offset Transform, points []mgl64.Vec3) *ConvexHull {
	verts := make([]vec.Vec2, len(points))
	minZ, maxZ := infinity, -infinity
	for i, p := range points {
		verts[i] = vec.Vec2{X: p[0], Y: p[1]}
		minZ = math.Min(minZ, p[2])
		maxZ = math.Max(maxZ, p[2])
	}

	hull := &ConvexHull{SurfaceFrame: SurfaceFrame{Mount: mount, Offset: offset}}
	hull.SetVerts(verts)
	if len(points) > 0 {
		size := hull.bb.Size()
		hull.Thickness = math.Max(0.5*(maxZ-minZ), 0.5*math.Min(size.X, size.Y))
	}
	return hull
}

// SetVerts replaces the hull outline with the convex hull of verts, given in cable plane coordinates.
func (ch *ConvexHull) SetVerts(verts []vec.Vec2) {
	if len(verts) == 0 {
		ch.count = 0
		ch.Planes = nil
		ch.lengths = []float64{0}
		ch.bb = BB{}
		return
	}

	hullVerts := outline(verts)
	count := len(hullVerts)

	ch.count = count
	ch.Planes = make([]SplittingPlane, count)
	ch.lengths = make([]float64, count+1)
	ch.bb = BBOf(hullVerts...)

	for i := range count {
		a := hullVerts[(i-1+count)%count]
		b := hullVerts[i]
		ch.Planes[i].V0 = b
		ch.Planes[i].N = reversePerp(b.Sub(a)).Unit()
	}
	for i := range count {
		next := hullVerts[(i+1)%count]
		ch.lengths[i+1] = ch.lengths[i] + next.Sub(hullVerts[i]).Mag()
	}
}

// Count returns the number of hull vertices.
func (ch *ConvexHull) Count() int {
	return ch.count
}

// Vert returns hull vertex i in cable plane coordinates.
func (ch *ConvexHull) Vert(i int) vec.Vec2 {
	return ch.Planes[i].V0
}

// Perimeter returns the length of the hull outline.
func (ch *ConvexHull) Perimeter() float64 {
	return ch.lengths[ch.count]
}

// BB returns the bounding box of the hull in its cable plane.
func (ch *ConvexHull) BB() BB {
	return ch.bb
}

// Tangent returns the hull vertex a taut cable coming from p touches, on the wrap side given by
// orientation. Points inside the hull are projected onto its outline.
func (ch *ConvexHull) Tangent(p mgl64.Vec3, orientation bool) mgl64.Vec3 {
	if ch.count == 0 {
		return ch.FromPlane(vec.Vec2{})
	}
	local := ch.ToPlane(p)
	if ch.contains(local) {
		return ch.FromPlane(ch.closestPoint(local))
	}

	best := ch.Planes[0].V0
	for i := 1; i < ch.count; i++ {
		w := ch.Planes[i].V0
		c := cross2(best.Sub(local), w.Sub(local))
		if (!orientation && c < 0) || (orientation && c > 0) {
			best = w
		}
	}
	return ch.FromPlane(best)
}

// SurfaceDistance implements Surface.
func (ch *ConvexHull) SurfaceDistance(a, b vec.Vec2, orientation, shortest bool) float64 {
	return arcDistance(ch.param(a), ch.param(b), ch.Perimeter(), orientation, shortest)
}

// PointAtDistance implements Surface.
func (ch *ConvexHull) PointAtDistance(start vec.Vec2, distance float64, orientation bool) mgl64.Vec3 {
	perimeter := ch.Perimeter()
	if perimeter <= 0 {
		if ch.count > 0 {
			return ch.FromPlane(ch.Planes[0].V0)
		}
		return ch.FromPlane(vec.Vec2{})
	}
	if orientation {
		distance = -distance
	}
	s := Mod(ch.param(start)+distance, perimeter)

	for i := range ch.count {
		if s <= ch.lengths[i+1] {
			a := ch.Planes[i].V0
			b := ch.Planes[(i+1)%ch.count].V0
			edge := ch.lengths[i+1] - ch.lengths[i]
			if edge <= 0 {
				return ch.FromPlane(a)
			}
			return ch.FromPlane(a.Lerp(b, (s-ch.lengths[i])/edge))
		}
	}
	return ch.FromPlane(ch.Planes[0].V0)
}

// RandomHullPoint returns a random hull vertex.
func (ch *ConvexHull) RandomHullPoint() mgl64.Vec3 {
	if ch.count == 0 {
		return ch.FromPlane(vec.Vec2{})
	}
	return ch.FromPlane(ch.Planes[rand.IntN(ch.count)].V0)
}

// SegmentQuery performs a segment query against the hull. The segment must lie within
// Thickness of the cable plane to hit.
func (ch *ConvexHull) SegmentQuery(a, b mgl64.Vec3, info *SegmentQueryInfo) bool {
	if ch.count < 3 {
		return false
	}
	la, lb, ok := ch.segmentToPlane(a, b)
	if !ok || !ch.bb.Touches(la, lb) {
		return false
	}

	planes := ch.Planes
	count := ch.count
	var hit planeHit

	for i := range count {
		n := planes[i].N
		an := la.Dot(n)
		d := an - planes[i].V0.Dot(n)
		if d < 0 {
			continue
		}

		bn := lb.Dot(n)
		if an == bn {
			continue
		}
		t := d / (an - bn)
		if t < 0 || 1 < t {
			continue
		}

		point := la.Lerp(lb, t)
		start := planes[(i-1+count)%count].V0
		dir := planes[i].V0.Sub(start)
		dt := dir.Dot(point.Sub(start))

		if 0 <= dt && dt <= dir.Dot(dir) && (!hit.ok || t < hit.alpha) {
			hit = planeHit{ok: true, normal: n, alpha: t}
		}
	}

	if !hit.ok {
		return false
	}
	info.Surface = ch
	info.Point = lerp3(a, b, hit.alpha)
	info.Normal = ch.Transform().ApplyVector(mgl64.Vec3{hit.normal.X, hit.normal.Y, 0})
	info.Alpha = hit.alpha
	return true
}

func (ch *ConvexHull) contains(p vec.Vec2) bool {
	if ch.count < 3 {
		return false
	}
	for i := range ch.count {
		if ch.Planes[i].N.Dot(p.Sub(ch.Planes[i].V0)) > 0 {
			return false
		}
	}
	return true
}

func (ch *ConvexHull) closestPoint(p vec.Vec2) vec.Vec2 {
	_, point := ch.closestEdge(p)
	return point
}

// closestEdge returns the index of the edge starting at vertex i closest to p, and the closest point on it.
func (ch *ConvexHull) closestEdge(p vec.Vec2) (int, vec.Vec2) {
	minDist := infinity
	edge := 0
	closest := ch.Planes[0].V0

	for i := range ch.count {
		a := ch.Planes[i].V0
		b := ch.Planes[(i+1)%ch.count].V0
		c := closestPointOnSegment(p, a, b)
		if dist := p.Sub(c).Mag(); dist < minDist {
			minDist = dist
			edge = i
			closest = c
		}
	}
	return edge, closest
}

// param returns the perimeter parameter of the outline point closest to p.
func (ch *ConvexHull) param(p vec.Vec2) float64 {
	if ch.count == 0 {
		return 0
	}
	i, c := ch.closestEdge(p)
	return ch.lengths[i] + c.Sub(ch.Planes[i].V0).Mag()
}

func cross2(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func reversePerp(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: a.Y, Y: -a.X}
}

// outline returns the convex hull of points, counter-clockwise from the lowest-left point.
// Collinear and duplicate points are dropped.
func outline(points []vec.Vec2) []vec.Vec2 {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b vec.Vec2) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	sorted = slices.Compact(sorted)
	if len(sorted) < 3 {
		return sorted
	}

	// lower chain left to right, then upper chain back. Each point is kept only if the chain
	// turns left onto it.
	hull := make([]vec.Vec2, 0, 2*len(sorted))
	for pass := range 2 {
		base := len(hull)
		for _, p := range sorted {
			for len(hull) >= base+2 && cross2(hull[len(hull)-1].Sub(hull[len(hull)-2]), p.Sub(hull[len(hull)-1])) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		// the last point starts the other chain.
		hull = hull[:len(hull)-1]
		if pass == 0 {
			slices.Reverse(sorted)
		}
	}
	return hull
}
