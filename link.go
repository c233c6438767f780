package cable

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// LinkKind selects how a link interacts with its surface.
type LinkKind uint8

const (
	// Attachment is a fixed point on the surface. Its stored length only changes through FeedSpeed.
	Attachment LinkKind = iota
	// Rolling links wrap and unwrap cable freely around a convex surface. Mid-cable only.
	Rolling
	// Pinhole lets cable slide frictionlessly through a point, moving rest length between its joints.
	Pinhole
	// Hybrid behaves as Attachment while it stores no cable and as Rolling otherwise.
	// Only valid as the first or last link.
	Hybrid
)

func (k LinkKind) String() string {
	switch k {
	case Attachment:
		return "Attachment"
	case Rolling:
		return "Rolling"
	case Pinhole:
		return "Pinhole"
	case Hybrid:
		return "Hybrid"
	default:
		return fmt.Sprintf("LinkKind(%d)", uint8(k))
	}
}

// Link is one node of the cable path.
type Link struct {
	// Surface is the geometry the link is bound to. Nil makes both adjacent joints null.
	Surface Surface
	Kind    LinkKind
	// Orientation picks the wrap direction. False wraps counter-clockwise about the surface plane normal.
	Orientation bool
	// Slack is extra rest length given to the joint leaving this link when the cable is set up.
	Slack float64

	// StoredLength is the arc length of cable wrapped on the surface.
	StoredLength float64
	// SpoolSeparation displaces a Hybrid attachment along the plane normal per unit of stored length.
	SpoolSeparation float64
	// FeedSpeed is cable length per second fed out of an Attachment link.
	FeedSpeed float64
	// CableVelocity is the speed of cable sliding through a Pinhole link.
	CableVelocity float64

	// InAnchor and OutAnchor are surface local points where cable enters and leaves the link.
	InAnchor  mgl64.Vec3
	OutAnchor mgl64.Vec3

	hybridRolling bool
}

// HybridRolling reports whether a Hybrid link currently behaves as a rolling link.
func (l *Link) HybridRolling() bool {
	return l.hybridRolling
}

// fixed reports whether tangent resolution should use the link's anchors instead of its surface
// tangent. During setup hybrids always roll.
func (l *Link) fixed(setup bool) bool {
	switch l.Kind {
	case Attachment, Pinhole:
		return true
	case Hybrid:
		return !l.hybridRolling && !setup
	}
	return false
}

func (l *Link) body() RigidBody {
	if l.Surface == nil {
		return nil
	}
	return l.Surface.Body()
}

// spoolOffset returns the world displacement of a Hybrid attachment caused by stored cable.
func (l *Link) spoolOffset() mgl64.Vec3 {
	if l.Kind != Hybrid || l.Surface == nil {
		return mgl64.Vec3{}
	}
	return l.Surface.PlaneNormal().Mul(-l.StoredLength * l.SpoolSeparation)
}
