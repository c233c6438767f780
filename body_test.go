package cable_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
)

func TestBodyApplyImpulse(t *testing.T) {
	body := cable.NewBody(2, cable.InertiaForSphere(2, 1))

	body.ApplyImpulse(mgl64.Vec3{2, 0, 0}, body.WorldCenterOfMass())
	assertVec(t, "velocity", body.Velocity(), mgl64.Vec3{1, 0, 0}, 1e-12)
	assertVec(t, "angular velocity", body.AngularVelocity(), mgl64.Vec3{}, 1e-12)

	// an impulse above the center spins the body about -Z.
	body.ApplyImpulse(mgl64.Vec3{0.8, 0, 0}, mgl64.Vec3{0, 1, 0})
	if body.AngularVelocity()[2] >= 0 {
		t.Errorf("angular velocity = %v, want negative Z", body.AngularVelocity())
	}
}

func TestBodyStaticIgnoresImpulse(t *testing.T) {
	body := cable.NewStaticBody()
	body.ApplyImpulse(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{})

	if body.Velocity() != (mgl64.Vec3{}) {
		t.Fail()
	}
	if !body.IsKinematic() || body.InverseMass() != 0 {
		t.Fail()
	}
}

func TestBodyFreeze(t *testing.T) {
	body := cable.NewBody(1, cable.InertiaForBox(1, mgl64.Vec3{1, 1, 1}))
	body.Freeze = cable.FreezePositionY | cable.FreezeRotation
	body.SetVelocity(mgl64.Vec3{1, 1, 1})
	body.SetAngularVelocity(mgl64.Vec3{1, 1, 1})

	body.ApplyFreezing()

	assertVec(t, "velocity", body.Velocity(), mgl64.Vec3{1, 0, 1}, 0)
	assertVec(t, "angular velocity", body.AngularVelocity(), mgl64.Vec3{}, 0)
}

func TestBodyIntegration(t *testing.T) {
	body := cable.NewBody(1, cable.InertiaForCylinder(1, 1, 0.2))
	body.SetPosition(mgl64.Vec3{0, 10, 0})

	body.UpdateVelocity(mgl64.Vec3{0, -10, 0}, 1, 0.5)
	body.UpdatePosition(0.5)

	assertVec(t, "velocity", body.Velocity(), mgl64.Vec3{0, -5, 0}, 1e-12)
	assertVec(t, "position", body.Position(), mgl64.Vec3{0, 7.5, 0}, 1e-12)
}

func TestBodyCenterOfGravity(t *testing.T) {
	body := cable.NewBody(1, cable.InertiaForSphere(1, 1))
	body.SetPosition(mgl64.Vec3{1, 0, 0})
	body.SetCenterOfGravity(mgl64.Vec3{0, 1, 0})

	assertVec(t, "position", body.Position(), mgl64.Vec3{1, 0, 0}, 1e-12)
	assertVec(t, "center of mass", body.WorldCenterOfMass(), mgl64.Vec3{1, 1, 0}, 1e-12)
}
