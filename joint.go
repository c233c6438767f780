package cable

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Joint is a unilateral distance constraint between two consecutive links. It never pushes.
//
// A joint does not hold references to its links: the cable passes the pair it sits between.
type Joint struct {
	// OffsetA and OffsetB are the attachment points in the local space of each link's surface.
	OffsetA, OffsetB mgl64.Vec3
	RestLength       float64

	length         float64
	jacobian       mgl64.Vec3
	worldA, worldB mgl64.Vec3

	invMassA, invMassB float64
	k                  float64

	totalLambda float64
}

// NewJoint creates a joint with the given attachment offsets and rest length.
func NewJoint(offsetA, offsetB mgl64.Vec3, restLength float64) *Joint {
	return &Joint{
		OffsetA:    offsetA,
		OffsetB:    offsetB,
		RestLength: restLength,
	}
}

// Length returns the distance between the attachment points measured by the last UpdateLength.
func (joint *Joint) Length() float64 {
	return joint.length
}

// Jacobian returns the unit direction from the first attachment to the second.
func (joint *Joint) Jacobian() mgl64.Vec3 {
	return joint.jacobian
}

// WorldA returns the first attachment point in world space, as of the last UpdateLength.
func (joint *Joint) WorldA() mgl64.Vec3 {
	return joint.worldA
}

// WorldB returns the second attachment point in world space, as of the last UpdateLength.
func (joint *Joint) WorldB() mgl64.Vec3 {
	return joint.worldB
}

// ImpulseMagnitude returns the impulse accumulated since the last UpdateMasses. It is never positive.
// Divide by the step to get a force, then by an acceleration to get an equivalent mass.
func (joint *Joint) ImpulseMagnitude() float64 {
	return joint.totalLambda
}

// Force returns the constraint force for a step of dt.
func (joint *Joint) Force(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return joint.totalLambda / dt
}

// EquivalentMass returns the mass that, accelerated by acceleration, would pull on the cable with
// the current force. Pass the signed gravity along the cable, e.g. -9.81 for a hanging weight.
func (joint *Joint) EquivalentMass(dt, acceleration float64) float64 {
	if acceleration == 0 {
		return 0
	}
	return joint.Force(dt) / acceleration
}

// Strain returns length / rest length, 1 for a joint with no rest length.
func (joint *Joint) Strain() float64 {
	if joint.RestLength > 0 {
		return joint.length / joint.RestLength
	}
	return 1
}

// UpdateLength measures the joint from the current poses of the surfaces of a and b.
func (joint *Joint) UpdateLength(a, b *Link) {
	joint.length = 0
	joint.jacobian = mgl64.Vec3{}

	if a.Surface == nil || b.Surface == nil {
		return
	}

	joint.worldA = a.Surface.Transform().Apply(joint.OffsetA)
	joint.worldB = b.Surface.Transform().Apply(joint.OffsetB)

	v := joint.worldB.Sub(joint.worldA)
	joint.length = v.Len()
	joint.jacobian = v.Mul(1 / (joint.length + magicEpsilon))
}

// UpdateMasses computes the effective mass along the jacobian and resets the accumulated impulse.
// Pinhole ends get a unit mass and angular term.
func (joint *Joint) UpdateMasses(a, b *Link) {
	joint.totalLambda = 0
	joint.invMassA, joint.invMassB = 0, 0
	joint.k = 0

	if a.Surface == nil || b.Surface == nil {
		return
	}

	var wA, wB float64
	joint.invMassA, wA = endpointMass(a, joint.worldA, joint.jacobian)
	joint.invMassB, wB = endpointMass(b, joint.worldB, joint.jacobian)
	joint.k = joint.invMassA + joint.invMassB + wA + wB
}

func endpointMass(l *Link, p, n mgl64.Vec3) (invMass, w float64) {
	if l.Kind == Pinhole {
		return 1, 1
	}
	body := l.body()
	if body == nil || body.IsKinematic() {
		return 0, 0
	}
	r := p.Sub(body.WorldCenterOfMass())
	w = body.InverseInertiaTensor().Mul3x1(r.Cross(n)).Cross(r).Dot(n)
	return body.InverseMass(), w
}

// SolveVelocities applies one sequential impulse iteration. bias is the fraction of the position
// error corrected per step.
func (joint *Joint) SolveVelocities(a, b *Link, dt, bias float64) {
	joint.UpdateLength(a, b)

	c := joint.length - joint.RestLength
	if a.Surface == nil || b.Surface == nil || c <= 0 || joint.k <= 0 || dt <= 0 {
		return
	}

	bodyA := a.body()
	bodyB := b.body()
	n := joint.jacobian

	cDot := (velocityAlong(bodyB, joint.worldB, n) + b.CableVelocity) -
		(velocityAlong(bodyA, joint.worldA, n) + a.CableVelocity)

	lambda := (-cDot - c*bias/dt) / joint.k

	// accumulate and clamp so the cable can only pull.
	old := joint.totalLambda
	joint.totalLambda = min(0, old+lambda)
	lambda = joint.totalLambda - old

	impulse := n.Mul(lambda)
	if bodyA != nil && !bodyA.IsKinematic() {
		bodyA.ApplyImpulse(impulse.Mul(-1), joint.worldA)
	}
	if bodyB != nil && !bodyB.IsKinematic() {
		bodyB.ApplyImpulse(impulse, joint.worldB)
	}

	if a.Kind == Pinhole {
		a.CableVelocity -= lambda * joint.invMassA
	}
	if b.Kind == Pinhole {
		b.CableVelocity += lambda * joint.invMassB
	}
}

func velocityAlong(body RigidBody, p, n mgl64.Vec3) float64 {
	if body == nil {
		return 0
	}
	return body.VelocityAtPointAlongDir(p, n)
}
