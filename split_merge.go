package cable

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/vec"
)

// SplitJoint inserts a Rolling link bound to surface after link i, splitting joint i in two.
// hit is the world point where the joint crosses the surface and picks the wrap direction.
// Rest length is shared so both new joints carry the same strain.
func (c *Cable) SplitJoint(i int, surface Surface, hit mgl64.Vec3) error {
	if i < 0 || i >= len(c.joints) {
		return fmt.Errorf("split joint %d: %w", i, ErrIndexOutOfRange)
	}
	if c.joints[i] == nil {
		return fmt.Errorf("split joint %d: %w", i, ErrNullJoint)
	}
	if surface == nil {
		return fmt.Errorf("split joint %d without a surface: %w", i, ErrInvalidTopology)
	}
	c.splitJoint(i, surface, hit)
	c.restLength = c.TotalLength()
	return nil
}

// MergeLink removes the interior Rolling link i and joins its two joints into one. The link's
// stored length goes to the surviving joint.
func (c *Cable) MergeLink(i int) error {
	if i <= 0 || i >= len(c.links)-1 {
		return fmt.Errorf("merge link %d: %w", i, ErrIndexOutOfRange)
	}
	if c.links[i].Kind != Rolling {
		return fmt.Errorf("merge link %d (%v): %w", i, c.links[i].Kind, ErrNotRolling)
	}
	if c.joints[i-1] == nil || c.joints[i] == nil {
		return fmt.Errorf("merge link %d: %w", i, ErrNullJoint)
	}
	c.mergeLink(i)
	c.restLength = c.TotalLength()
	return nil
}

func (c *Cable) splitMerge() {
	if !c.DynamicSplitMerge {
		return
	}

	// iterate backwards so removals and insertions don't shift unvisited entries. A link that
	// just split stores about zero, the tolerance keeps it from merging right away.
	for i := len(c.links) - 2; i >= 1; i-- {
		link := &c.links[i]
		if link.Kind == Rolling && link.Surface != nil && c.joints[i-1] != nil && c.joints[i] != nil && link.StoredLength < -magicEpsilon {
			c.mergeLink(i)
		}
	}

	if c.Raycaster == nil {
		return
	}

	for i := len(c.joints) - 1; i >= 0; i-- {
		if c.joints[i] == nil {
			continue
		}
		a, b := c.worldAttachments(i)
		length := b.Sub(a).Len()

		hit, ok := c.Raycaster.Raycast(a, b, c.links[i].Surface, c.links[i+1].Surface)
		if !ok {
			continue
		}

		// only discs and hulls can be wrapped, and hits too close to either end are ignored.
		switch hit.Surface.(type) {
		case *Disc, *ConvexHull:
		default:
			continue
		}
		if hit.Distance > splitMargin && hit.Distance+splitMargin < length {
			c.splitJoint(i, hit.Surface, hit.Point)
		}
	}
}

func (c *Cable) mergeLink(i int) {
	prev := c.joints[i-1]
	next := c.joints[i]

	prev.RestLength += next.RestLength + c.links[i].StoredLength
	prev.OffsetB = next.OffsetB

	c.links = slices.Delete(c.links, i, i+1)
	c.joints = slices.Delete(c.joints, i, i+1)

	c.updateJoint(i-1, 0)
	prev.UpdateLength(&c.links[i-1], &c.links[i])
}

func (c *Cable) splitJoint(i int, surface Surface, hit mgl64.Vec3) {
	joint := c.joints[i]
	initialRestLength := joint.RestLength
	a, b := c.worldAttachments(i)

	// the cable wraps toward the side of the surface it struck.
	side := surface.PlaneNormal().Cross(b.Sub(a))
	orientation := hit.Sub(surfaceCenter(surface)).Dot(side) > 0

	newJoint := NewJoint(mgl64.Vec3{}, joint.OffsetB, initialRestLength)
	c.links = slices.Insert(c.links, i+1, Link{Surface: surface, Kind: Rolling, Orientation: orientation})
	c.joints = slices.Insert(c.joints, i+1, newJoint)

	link1 := &c.links[i]
	link2 := &c.links[i+1]
	link3 := &c.links[i+2]

	t1, t2 := findCommonTangents(link1, link2, a, hit, false)
	joint.OffsetA = link1.Surface.Transform().InverseApply(t1.Add(link1.spoolOffset()))
	joint.OffsetB = surface.Transform().InverseApply(t2)

	t2, t3 := findCommonTangents(link2, link3, t2, b, false)
	newJoint.OffsetA = surface.Transform().InverseApply(t2)
	newJoint.OffsetB = link3.Surface.Transform().InverseApply(t3.Add(link3.spoolOffset()))

	joint.UpdateLength(link1, link2)
	newJoint.UpdateLength(link2, link3)

	// equal tension on both sides.
	total := joint.length + newJoint.length
	if total > 0 {
		tension := initialRestLength / total
		joint.RestLength = joint.length * tension
		newJoint.RestLength = newJoint.length * tension
	} else {
		joint.RestLength = initialRestLength * 0.5
		newJoint.RestLength = initialRestLength * 0.5
	}
}

// surfaceCenter returns the world center of a surface's outline.
func surfaceCenter(s Surface) mgl64.Vec3 {
	if hull, ok := s.(*ConvexHull); ok {
		return hull.FromPlane(hull.BB().Center())
	}
	return s.FromPlane(vec.Vec2{})
}
