package cable

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Draw flags
const (
	DrawSurfaces = 1 << 0
	DrawJoints   = 1 << 1
	DrawSamples  = 1 << 2
)

// attachmentDotSize is the size of the dots drawn at joint attachment points.
const attachmentDotSize = 0.02

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

// Drawer receives world space debug geometry.
type Drawer interface {
	DrawCircle(center, normal mgl64.Vec3, radius float64, outline FColor, data any)
	DrawSegment(a, b mgl64.Vec3, fill FColor, data any)
	DrawPolyline(points []mgl64.Vec3, fill FColor, data any)
	DrawDot(size float64, pos mgl64.Vec3, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	SurfaceColor(surface Surface, data any) FColor
	JointColor(joint *Joint, data any) FColor
	Data() any
}

// DrawSurface draws a surface outline with the drawer implementation
func DrawSurface(surface Surface, drawer Drawer) {
	data := drawer.Data()
	color := drawer.SurfaceColor(surface, data)

	switch s := surface.(type) {
	case *Disc:
		drawer.DrawCircle(surfaceCenter(s), s.PlaneNormal(), s.Radius, color, data)
	case *ConvexHull:
		count := s.Count()
		for i := range count {
			drawer.DrawSegment(s.FromPlane(s.Vert(i)), s.FromPlane(s.Vert((i+1)%count)), color, data)
		}
	case *PointAnchor:
		drawer.DrawDot(attachmentDotSize, surfaceCenter(s), color, data)
	default:
		panic(fmt.Sprintf("Implement me: %#v", surface))
	}
}

// DrawCable draws every joint of the cable as a segment between its attachment points.
func DrawCable(c *Cable, drawer Drawer) {
	data := drawer.Data()

	for i, joint := range c.joints {
		if joint == nil {
			continue
		}
		a, b := c.worldAttachments(i)
		color := drawer.JointColor(joint, data)

		drawer.DrawSegment(a, b, color, data)
		drawer.DrawDot(attachmentDotSize, a, color, data)
		drawer.DrawDot(attachmentDotSize, b, color, data)
	}
}

// DrawSampledCable draws the polylines of a sampled cable in world space.
func DrawSampledCable(sc *SampledCable, drawer Drawer) {
	data := drawer.Data()
	color := drawer.OutlineColor()

	var points []mgl64.Vec3
	for _, segment := range sc.Segments() {
		points = points[:0]
		for _, p := range segment {
			points = append(points, sc.Frame.Apply(p))
		}
		drawer.DrawPolyline(points, color, data)
	}
}

// DrawWorld draws the world according to the drawer flags. Sampled cables are drawn only when
// sampler is not nil.
func DrawWorld(w *World, sampler *Sampler, drawer Drawer) {
	flags := drawer.Flags()

	if flags&DrawSurfaces != 0 {
		for _, s := range w.surfaces {
			DrawSurface(s, drawer)
		}
	}

	for _, c := range w.cables {
		if flags&DrawJoints != 0 {
			DrawCable(c, drawer)
		}
		if flags&DrawSamples != 0 && sampler != nil {
			DrawSampledCable(sampler.SampleCable(c), drawer)
		}
	}
}
