package cable

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Cable is an inextensible cable threaded through a sequence of links.
//
// Links are kept in an arena together with a parallel slice of joints: joint i sits between
// link i and link i+1. A joint is nil when either of its links has no surface, so there is
// always one joint less than links. Split and merge insert and remove entries of both
// slices in lockstep.
type Cable struct {
	// DynamicSplitMerge enables automatic splitting of joints against Raycaster geometry
	// and merging of unwound rolling links during UpdateCable.
	DynamicSplitMerge bool
	// Raycaster is queried by dynamic splitting. World sets itself when the cable is added.
	Raycaster Raycaster

	links      []Link
	joints     []*Joint
	restLength float64
}

// NewCable creates a cable through links and sets it up.
func NewCable(links ...Link) *Cable {
	c := &Cable{links: append([]Link(nil), links...)}
	c.Setup()
	return c
}

// Setup initializes hybrid links, regenerates every joint from the current poses and computes
// the rest length. Call it after editing links by hand.
func (c *Cable) Setup() {
	c.initializeLinks()
	c.generateJoints()
	c.calculateRestLength()
}

// Validate checks the link chain. Interior links need a surface and can't be Hybrid, and an
// open cable can't start or end with a Rolling link.
func (c *Cable) Validate() error {
	n := len(c.links)
	if n < 2 {
		return fmt.Errorf("%d links: %w", n, ErrInvalidTopology)
	}
	closed := c.Closed()
	for i := range c.links {
		link := &c.links[i]
		interior := i > 0 && i < n-1
		switch {
		case interior && link.Surface == nil:
			return fmt.Errorf("link %d has no surface: %w", i, ErrInvalidTopology)
		case interior && link.Kind == Hybrid:
			return fmt.Errorf("link %d: hybrid links must be first or last: %w", i, ErrInvalidTopology)
		case !interior && !closed && link.Kind == Rolling:
			return fmt.Errorf("link %d: rolling links can't end an open cable: %w", i, ErrInvalidTopology)
		}
	}
	return nil
}

// LinkCount returns the number of links.
func (c *Cable) LinkCount() int {
	return len(c.links)
}

// Link returns link i. The pointer is invalidated by topology changes.
func (c *Cable) Link(i int) *Link {
	return &c.links[i]
}

// JointCount returns the number of joints, LinkCount()-1 for a non empty cable.
func (c *Cable) JointCount() int {
	return len(c.joints)
}

// Joint returns joint i, nil for a null joint.
func (c *Cable) Joint(i int) *Joint {
	return c.joints[i]
}

// Closed reports whether the first and last links share a surface.
func (c *Cable) Closed() bool {
	n := len(c.links)
	return n > 1 && c.links[0].Surface != nil && c.links[0].Surface == c.links[n-1].Surface
}

// PreviousJoint returns the joint entering link i. Closed cables wrap around.
func (c *Cable) PreviousJoint(i int) *Joint {
	if i > 0 && i-1 < len(c.joints) {
		return c.joints[i-1]
	}
	if c.Closed() && len(c.joints) > 0 {
		return c.joints[len(c.joints)-1]
	}
	return nil
}

// NextJoint returns the joint leaving link i. Closed cables wrap around.
func (c *Cable) NextJoint(i int) *Joint {
	if i >= 0 && i < len(c.joints) {
		return c.joints[i]
	}
	if c.Closed() && len(c.joints) > 0 {
		return c.joints[0]
	}
	return nil
}

// RestLength returns the rest length of the whole cable as of the last setup or update.
func (c *Cable) RestLength() float64 {
	return c.restLength
}

// TotalLength sums the stored length of every link that stores cable and the rest length of
// every joint.
func (c *Cable) TotalLength() float64 {
	closed := c.Closed()
	total := 0.0
	for i := range c.links {
		if c.storesCable(i, closed) {
			total += c.links[i].StoredLength
		}
	}
	for _, joint := range c.joints {
		if joint != nil {
			total += joint.RestLength
		}
	}
	return total
}

// WorldAttachments returns the attachment points of joint i computed from the current poses.
func (c *Cable) WorldAttachments(i int) (a, b mgl64.Vec3, ok bool) {
	if i < 0 || i >= len(c.joints) || c.joints[i] == nil {
		return a, b, false
	}
	a, b = c.worldAttachments(i)
	return a, b, true
}

func (c *Cable) worldAttachments(i int) (mgl64.Vec3, mgl64.Vec3) {
	joint := c.joints[i]
	return c.links[i].Surface.Transform().Apply(joint.OffsetA),
		c.links[i+1].Surface.Transform().Apply(joint.OffsetB)
}

// UpdateCable brings stored lengths, rest lengths and attachment points in line with the
// current body poses, splits and merges links if enabled, and prepares joints for Solve.
func (c *Cable) UpdateCable(dt float64) {
	if len(c.joints) == 0 {
		return
	}

	for i, joint := range c.joints {
		if joint != nil {
			joint.UpdateLength(&c.links[i], &c.links[i+1])
		}
	}

	c.updateJoints(dt)
	c.updateHybridLinks()
	c.updatePinholes()
	c.splitMerge()

	for i, joint := range c.joints {
		if joint != nil {
			joint.UpdateMasses(&c.links[i], &c.links[i+1])
		}
	}

	c.restLength = c.TotalLength()
}

// Solve runs one velocity iteration over every joint, then applies axis freezing to link bodies.
func (c *Cable) Solve(dt, bias float64) {
	for i, joint := range c.joints {
		if joint != nil {
			joint.SolveVelocities(&c.links[i], &c.links[i+1], dt, bias)
		}
	}

	for i := range c.links {
		if f, ok := c.links[i].body().(Freezer); ok {
			f.ApplyFreezing()
		}
	}
}

// Step updates the cable topology and runs a single solve.
func (c *Cable) Step(dt, bias float64) {
	c.UpdateCable(dt)
	c.Solve(dt, bias)
}

func (c *Cable) initializeLinks() {
	for i := range c.links {
		link := &c.links[i]
		link.hybridRolling = link.Kind == Hybrid && link.StoredLength > 0
	}
}

func (c *Cable) generateJoints() {
	c.joints = nil
	if len(c.links) == 0 {
		return
	}
	c.joints = make([]*Joint, 0, len(c.links)-1)

	for i := 0; i < len(c.links)-1; i++ {
		link1 := &c.links[i]
		link2 := &c.links[i+1]

		if link1.Surface == nil || link2.Surface == nil {
			// null joints keep joints aligned with links.
			c.joints = append(c.joints, nil)
			continue
		}

		t1, t2 := findCommonTangents(link1, link2, link1.Surface.RandomHullPoint(), link2.Surface.RandomHullPoint(), true)
		t1 = t1.Add(link1.spoolOffset())
		t2 = t2.Add(link2.spoolOffset())

		joint := NewJoint(
			link1.Surface.Transform().InverseApply(t1),
			link2.Surface.Transform().InverseApply(t2),
			t2.Sub(t1).Len()+link1.Slack,
		)
		joint.UpdateLength(link1, link2)
		c.joints = append(c.joints, joint)
	}
}

func (c *Cable) calculateRestLength() {
	closed := c.Closed()

	for i := range c.links {
		link := &c.links[i]
		if link.Surface == nil {
			continue
		}
		s := link.Surface
		prev := c.PreviousJoint(i)
		next := c.NextJoint(i)

		if prev != nil && next != nil && !(i == 0 && closed) {
			link.StoredLength = abs(s.SurfaceDistance(s.ToPlane(prev.WorldB()), s.ToPlane(next.WorldA()), link.Orientation, false))
		} else if link.Kind == Hybrid {
			// the cable end sits StoredLength behind the tangent point.
			if next != nil {
				tangent := s.ToPlane(next.WorldA())
				link.OutAnchor = s.Transform().InverseApply(s.PointAtDistance(tangent, link.StoredLength, !link.Orientation))
			} else if prev != nil {
				tangent := s.ToPlane(prev.WorldB())
				link.InAnchor = s.Transform().InverseApply(s.PointAtDistance(tangent, link.StoredLength, link.Orientation))
			}
		}
	}

	c.restLength = c.TotalLength()
}

// storesCable reports whether the stored length of link i is part of the cable length.
func (c *Cable) storesCable(i int, closed bool) bool {
	link := &c.links[i]
	if link.Surface == nil {
		return false
	}
	if link.Kind == Hybrid {
		return true
	}
	return c.PreviousJoint(i) != nil && c.NextJoint(i) != nil && !(i == 0 && closed)
}
