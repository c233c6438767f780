package cable

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RigidBody is the capability a cable needs from the rigid-body subsystem.
//
// Joints read masses and velocities through it and push impulses back into it.
// Kinematic or static bodies report IsKinematic and never receive impulses.
type RigidBody interface {
	InverseMass() float64
	// InverseInertiaTensor is expressed in world space.
	InverseInertiaTensor() mgl64.Mat3
	WorldCenterOfMass() mgl64.Vec3
	// VelocityAtPointAlongDir returns the velocity of the world point p projected on dir.
	VelocityAtPointAlongDir(p, dir mgl64.Vec3) float64
	// ApplyImpulse applies an impulse at a world point.
	ApplyImpulse(impulse, p mgl64.Vec3)
	IsKinematic() bool
}

// Freezer is implemented by bodies that lock some of their degrees of freedom.
// Cable.Solve calls ApplyFreezing on every link body after applying impulses.
type Freezer interface {
	ApplyFreezing()
}

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	Dynamic   BodyType = 0
	Kinematic BodyType = 1
	Static    BodyType = 2
)

// FreezeFlags locks world axes of a body's linear and angular velocity.
type FreezeFlags uint8

const (
	FreezePositionX FreezeFlags = 1 << iota
	FreezePositionY
	FreezePositionZ
	FreezeRotationX
	FreezeRotationY
	FreezeRotationZ

	FreezePosition = FreezePositionX | FreezePositionY | FreezePositionZ
	FreezeRotation = FreezeRotationX | FreezeRotationY | FreezeRotationZ
)

var bodyCur int = 0

// Body is a reference rigid body implementing RigidBody, Mount and Freezer.
//
// World integrates Body motion between cable solves. There is no collision response.
type Body struct {
	// UserData is an object that this body is associated with.
	UserData any
	// Freeze locks world axes. Locked velocity components are zeroed by ApplyFreezing.
	Freeze FreezeFlags

	id              int
	bodyType        BodyType
	mass            float64    // Mass
	massInverse     float64    // Mass inverse
	inertia         mgl64.Vec3 // Principal moments of inertia (local)
	inertiaInverse  mgl64.Vec3 // Inverse principal moments
	centerOfGravity mgl64.Vec3 // Center of gravity (local)
	position        mgl64.Vec3 // Position of the center of gravity
	rotation        mgl64.Quat
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3
	force           mgl64.Vec3
	torque          mgl64.Vec3
	transform       Transform
}

// String returns body id as string
func (b Body) String() string {
	return fmt.Sprint("Body ", b.id, ", Mass ", b.mass)
}

// NewBody initializes a dynamic rigid body with the given mass and principal moments of inertia.
//
// Guessing the moment of inertia is usually a bad idea. Use the estimation functions InertiaFor*().
func NewBody(mass float64, inertia mgl64.Vec3) *Body {
	body := &Body{
		id:       bodyCur,
		rotation: mgl64.QuatIdent(),
	}
	bodyCur++
	body.SetMass(mass)
	body.SetInertia(inertia)
	body.updateTransform()
	return body
}

// NewStaticBody allocates and initializes a Body, and set it as a static body.
func NewStaticBody() *Body {
	body := NewBody(0, mgl64.Vec3{})
	body.SetType(Static)
	return body
}

// NewKinematicBody allocates and initializes a Body, and set it as a kinematic body.
func NewKinematicBody() *Body {
	body := NewBody(0, mgl64.Vec3{})
	body.SetType(Kinematic)
	return body
}

// SetType sets the type of the body.
func (body *Body) SetType(bt BodyType) {
	body.bodyType = bt
	if bt != Dynamic {
		body.velocity = mgl64.Vec3{}
		body.angularVelocity = mgl64.Vec3{}
	}
}

// Type returns the type of the body.
func (body *Body) Type() BodyType {
	return body.bodyType
}

// Mass returns mass of the body
func (body *Body) Mass() float64 {
	return body.mass
}

// SetMass sets mass of the body. A mass of zero makes the body immovable by impulses.
func (body *Body) SetMass(mass float64) {
	body.mass = mass
	body.massInverse = invOrZero(mass)
}

// Inertia returns the principal moments of inertia of the body.
func (body *Body) Inertia() mgl64.Vec3 {
	return body.inertia
}

// SetInertia sets the principal moments of inertia, expressed in body local axes.
func (body *Body) SetInertia(inertia mgl64.Vec3) {
	body.inertia = inertia
	body.inertiaInverse = mgl64.Vec3{invOrZero(inertia[0]), invOrZero(inertia[1]), invOrZero(inertia[2])}
}

// CenterOfGravity returns the offset of the center of gravity in body local coordinates.
func (body *Body) CenterOfGravity() mgl64.Vec3 {
	return body.centerOfGravity
}

// SetCenterOfGravity sets the center of gravity in body local coordinates, keeping the body origin in place.
func (body *Body) SetCenterOfGravity(cog mgl64.Vec3) {
	origin := body.Position()
	body.centerOfGravity = cog
	body.SetPosition(origin)
}

// Position returns the position of the body origin.
func (body *Body) Position() mgl64.Vec3 {
	return body.transform.Position
}

// SetPosition sets the position of the body origin.
func (body *Body) SetPosition(position mgl64.Vec3) {
	body.position = body.rotation.Rotate(body.centerOfGravity).Add(position)
	body.updateTransform()
}

// Rotation returns the orientation of the body.
func (body *Body) Rotation() mgl64.Quat {
	return body.rotation
}

// SetRotation sets the orientation of the body, rotating about its center of gravity.
func (body *Body) SetRotation(rotation mgl64.Quat) {
	body.rotation = rotation.Normalize()
	body.updateTransform()
}

// Velocity returns the linear velocity of the center of gravity.
func (body *Body) Velocity() mgl64.Vec3 {
	return body.velocity
}

// SetVelocity sets the velocity of the body.
func (body *Body) SetVelocity(v mgl64.Vec3) {
	body.velocity = v
}

// AngularVelocity returns the angular velocity of the body in world space.
func (body *Body) AngularVelocity() mgl64.Vec3 {
	return body.angularVelocity
}

// SetAngularVelocity sets the angular velocity of the body in world space.
func (body *Body) SetAngularVelocity(w mgl64.Vec3) {
	body.angularVelocity = w
}

// Force returns the force applied to the body for the next time step.
func (body *Body) Force() mgl64.Vec3 {
	return body.force
}

// SetForce sets the force applied to the body for the next time step.
func (body *Body) SetForce(force mgl64.Vec3) {
	body.force = force
}

// SetTorque sets the torque applied to the body for the next time step.
func (body *Body) SetTorque(torque mgl64.Vec3) {
	body.torque = torque
}

// Transform returns body's transform
func (body *Body) Transform() Transform {
	return body.transform
}

// InverseMass implements RigidBody.
func (body *Body) InverseMass() float64 {
	if body.bodyType != Dynamic {
		return 0
	}
	return body.massInverse
}

// InverseInertiaTensor returns R * I^-1 * R^T.
func (body *Body) InverseInertiaTensor() mgl64.Mat3 {
	if body.bodyType != Dynamic {
		return mgl64.Mat3{}
	}
	r := body.transform.RotationMatrix()
	return r.Mul3(mgl64.Diag3(body.inertiaInverse)).Mul3(r.Transpose())
}

// WorldCenterOfMass implements RigidBody.
func (body *Body) WorldCenterOfMass() mgl64.Vec3 {
	return body.position
}

// VelocityAtPoint returns the world velocity of the world point p.
func (body *Body) VelocityAtPoint(p mgl64.Vec3) mgl64.Vec3 {
	r := p.Sub(body.position)
	return body.velocity.Add(body.angularVelocity.Cross(r))
}

// VelocityAtPointAlongDir implements RigidBody.
func (body *Body) VelocityAtPointAlongDir(p, dir mgl64.Vec3) float64 {
	return body.VelocityAtPoint(p).Dot(dir)
}

// ApplyImpulse applies an impulse at the world point p. Non dynamic bodies ignore it.
func (body *Body) ApplyImpulse(impulse, p mgl64.Vec3) {
	if body.bodyType != Dynamic {
		return
	}
	r := p.Sub(body.position)
	body.velocity = body.velocity.Add(impulse.Mul(body.massInverse))
	body.angularVelocity = body.angularVelocity.Add(body.InverseInertiaTensor().Mul3x1(r.Cross(impulse)))
}

// IsKinematic implements RigidBody. Static bodies are reported as kinematic as well.
func (body *Body) IsKinematic() bool {
	return body.bodyType != Dynamic
}

// ApplyFreezing zeroes the locked world components of the body's velocities.
func (body *Body) ApplyFreezing() {
	if body.Freeze == 0 {
		return
	}
	for i := range 3 {
		if body.Freeze&(FreezePositionX<<i) != 0 {
			body.velocity[i] = 0
		}
		if body.Freeze&(FreezeRotationX<<i) != 0 {
			body.angularVelocity[i] = 0
		}
	}
}

// UpdateVelocity is the default velocity integration function.
func (body *Body) UpdateVelocity(gravity mgl64.Vec3, damping, dt float64) {
	if body.bodyType != Dynamic {
		return
	}

	body.velocity = body.velocity.Mul(damping).Add(gravity.Add(body.force.Mul(body.massInverse)).Mul(dt))
	body.angularVelocity = body.angularVelocity.Mul(damping).Add(body.InverseInertiaTensor().Mul3x1(body.torque).Mul(dt))

	body.force = mgl64.Vec3{}
	body.torque = mgl64.Vec3{}
	body.ApplyFreezing()
}

// UpdatePosition is the default position integration function.
func (body *Body) UpdatePosition(dt float64) {
	if body.bodyType == Static {
		return
	}
	body.position = body.position.Add(body.velocity.Mul(dt))

	w := body.angularVelocity
	if w.LenSqr() > 0 {
		spin := mgl64.Quat{W: 0, V: w}.Mul(body.rotation).Scale(0.5 * dt)
		body.rotation = body.rotation.Add(spin).Normalize()
	}
	body.updateTransform()
}

func (body *Body) updateTransform() {
	c := body.rotation.Rotate(body.centerOfGravity)
	body.transform = Transform{
		Position: body.position.Sub(c),
		Rotation: body.rotation,
	}
}

func invOrZero(x float64) float64 {
	if x == 0 || math.IsInf(x, 0) {
		return 0
	}
	return 1 / x
}
