package cable

import (
	"github.com/go-gl/mathgl/mgl64"
)

// findCommonTangents returns the points where a taut cable leaves link1 and reaches link2.
//
// Fixed links contribute their anchors, the others their surface tangent as seen from the
// other point. The search alternates between both ends starting at seed1 and seed2 until both
// points settle or maxTangentIterations is reached, in which case the last points are returned.
// During setup hybrid links are always treated as rolling.
func findCommonTangents(link1, link2 *Link, seed1, seed2 mgl64.Vec3, setup bool) (t1, t2 mgl64.Vec3) {
	t1, t2 = seed1, seed2

	for range maxTangentIterations {
		prev1, prev2 := t1, t2

		if link2.fixed(setup) {
			t2 = link2.Surface.Transform().Apply(link2.InAnchor)
		} else {
			t2 = link2.Surface.Tangent(t1, link2.Orientation)
		}

		if link1.fixed(setup) {
			t1 = link1.Surface.Transform().Apply(link1.OutAnchor)
		} else {
			t1 = link1.Surface.Tangent(t2, !link1.Orientation)
		}

		if prev1.Sub(t1).LenSqr() <= tangentThreshold && prev2.Sub(t2).LenSqr() <= tangentThreshold {
			break
		}
	}
	return t1, t2
}

func (c *Cable) updateJoints(dt float64) {
	for i, joint := range c.joints {
		if joint != nil && c.links[i].Surface != nil && c.links[i+1].Surface != nil {
			c.updateJoint(i, dt)
		}
	}
}

// updateJoint moves the attachment points of joint i to the current common tangents. Cable
// that moved onto or off a surface is transferred between the link's stored length and the
// joint's rest length. Attachment links feed FeedSpeed*dt of new cable into the joint.
// Joint 0 of a closed cable credits its start to the last link, which stores the arc shared
// with the first.
func (c *Cable) updateJoint(i int, dt float64) {
	joint := c.joints[i]
	link1 := &c.links[i]
	link2 := &c.links[i+1]
	s1 := link1.Surface
	s2 := link2.Surface

	old1, old2 := c.worldAttachments(i)
	t1, t2 := findCommonTangents(link1, link2, old1, old2, false)

	d1 := s1.SurfaceDistance(s1.ToPlane(old1), s1.ToPlane(t1), link1.Orientation, true)
	d2 := s2.SurfaceDistance(s2.ToPlane(old2), s2.ToPlane(t2), link2.Orientation, true)

	if link1.Kind == Attachment {
		joint.RestLength += link1.FeedSpeed * dt
	}
	if link2.Kind == Attachment {
		joint.RestLength += link2.FeedSpeed * dt
	}

	t1 = t1.Add(link1.spoolOffset())
	t2 = t2.Add(link2.spoolOffset())

	stored1 := &link1.StoredLength
	if i == 0 && c.Closed() {
		stored1 = &c.links[len(c.links)-1].StoredLength
	}
	*stored1 += d1
	link2.StoredLength -= d2
	joint.RestLength += d2 - d1

	joint.OffsetA = s1.Transform().InverseApply(t1)
	joint.OffsetB = s2.Transform().InverseApply(t2)
}
