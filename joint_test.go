package cable_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/setanarut/cable"
)

// hangingMass hangs a body of the given mass from the origin.
func hangingMass(mass float64, position mgl64.Vec3) (*cable.Cable, *cable.Body) {
	body := cable.NewBody(mass, cable.InertiaForSphere(mass, 0.1))
	body.SetPosition(position)
	c := cable.NewCable(
		cable.Link{Surface: fixedPoint(mgl64.Vec3{}), Kind: cable.Attachment},
		cable.Link{Surface: cable.NewPointAnchor(body, mgl64.Vec3{}), Kind: cable.Attachment},
	)
	return c, body
}

func TestJointEquivalentMass(t *testing.T) {
	c, body := hangingMass(2, mgl64.Vec3{0, -1.1, 0})
	joint := c.Joint(0)
	joint.RestLength = 1
	body.SetVelocity(mgl64.Vec3{0, -9.81 * dt, 0})

	c.UpdateCable(dt)
	c.Solve(dt, 0)
	c.Solve(dt, 0)

	if joint.ImpulseMagnitude() > 0 {
		t.Errorf("impulse = %v, a cable can't push", joint.ImpulseMagnitude())
	}
	if m := joint.EquivalentMass(dt, -9.81); !approx(m, 2, 1e-3) {
		t.Errorf("EquivalentMass = %v, want 2", m)
	}
	assertVec(t, "velocity", body.Velocity(), mgl64.Vec3{}, 1e-4)
	if !approx(joint.Strain(), 1.1, 1e-9) {
		t.Errorf("Strain = %v, want 1.1", joint.Strain())
	}
}

func TestJointSlackDoesNotPull(t *testing.T) {
	c, body := hangingMass(1, mgl64.Vec3{0, -0.5, 0})
	c.Joint(0).RestLength = 1
	body.SetVelocity(mgl64.Vec3{0, -1, 0})

	c.Step(dt, 0.2)

	if c.Joint(0).ImpulseMagnitude() != 0 {
		t.Errorf("impulse = %v, want 0", c.Joint(0).ImpulseMagnitude())
	}
	assertVec(t, "velocity", body.Velocity(), mgl64.Vec3{0, -1, 0}, 0)
}

func TestJointPinholeSlides(t *testing.T) {
	left := cable.NewBody(1, cable.InertiaForSphere(1, 0.1))
	left.SetPosition(mgl64.Vec3{-1, -1, 0})
	right := cable.NewBody(1, cable.InertiaForSphere(1, 0.1))
	right.SetPosition(mgl64.Vec3{1, -1, 0})

	c := cable.NewCable(
		cable.Link{Surface: cable.NewPointAnchor(left, mgl64.Vec3{}), Kind: cable.Attachment},
		cable.Link{Surface: fixedPoint(mgl64.Vec3{}), Kind: cable.Pinhole},
		cable.Link{Surface: cable.NewPointAnchor(right, mgl64.Vec3{}), Kind: cable.Attachment},
	)

	// pull the right end away: the slack moves through the pinhole and the left joint pulls.
	right.SetPosition(mgl64.Vec3{1.2, -1.2, 0})
	c.UpdateCable(dt)
	if !approx(c.Joint(1).RestLength, c.Joint(1).Length(), 1e-9) {
		t.Errorf("right rest = %v, want %v", c.Joint(1).RestLength, c.Joint(1).Length())
	}
	c.Solve(dt, 0.2)

	if c.Link(1).CableVelocity == 0 {
		t.Error("cable should slide through the pinhole")
	}
	if c.Joint(0).ImpulseMagnitude() >= 0 {
		t.Errorf("impulse = %v, want negative", c.Joint(0).ImpulseMagnitude())
	}
}

func TestWorldHangingMass(t *testing.T) {
	w := cable.NewWorld()
	c, body := hangingMass(2, mgl64.Vec3{0, -1, 0})
	w.AddBody(body)
	w.AddCable(c)

	for i := range 120 {
		w.Step(dt)
		if c.Joint(0).ImpulseMagnitude() > 0 {
			t.Fatalf("step %d: impulse = %v", i, c.Joint(0).ImpulseMagnitude())
		}
	}

	if l := body.Position().Len(); !approx(l, 1, 0.05) {
		t.Errorf("length = %v, want 1", l)
	}
	if m := c.Joint(0).EquivalentMass(dt, -9.81); !approx(m, 2, 0.1) {
		t.Errorf("EquivalentMass = %v, want 2", m)
	}
}
