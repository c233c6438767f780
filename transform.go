package cable

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a rigid 3D transformation: a rotation followed by a translation.
//
//	p' = Rotation * p + Position
//
// There is no scale: lengths measured in local space equal lengths in world space.
//
// A Transform also satisfies Mount, so it can be used directly as the pose of
// a static surface.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransformIdentity creates and returns an identity transformation.
func NewTransformIdentity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// NewTransformTranslate returns a new transformation with translation only.
func NewTransformTranslate(translate mgl64.Vec3) Transform {
	return Transform{Position: translate, Rotation: mgl64.QuatIdent()}
}

// NewTransformRigid creates a new rigid transformation that combines
// translation and rotation.
//
// Parameters:
//   - translate: A 3D vector specifying the translation component.
//   - rotation: A unit quaternion specifying the orientation.
//
// Returns:
//   - A Transform representing the combined translation and rotation.
func NewTransformRigid(translate mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{Position: translate, Rotation: rotation.Normalize()}
}

// Transform returns t itself. It makes a fixed pose usable as a Mount.
func (t Transform) Transform() Transform {
	return t
}

// Apply applies the transformation to a point p and returns the transformed point.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(p).Add(t.Position)
}

// ApplyVector rotates a direction. Translation does not affect vectors.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(v)
}

// InverseApply maps a world point into the local space of t.
func (t Transform) InverseApply(p mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(p.Sub(t.Position))
}

// InverseApplyVector maps a world direction into the local space of t.
func (t Transform) InverseApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(v)
}

// Inverse returns the inverse of this rigid transform.
func (t Transform) Inverse() Transform {
	inv := t.rotation().Conjugate()
	return Transform{
		Position: inv.Rotate(t.Position.Mul(-1)),
		Rotation: inv,
	}
}

// Mult composes t with t2. The result applies t2 first, then t.
func (t Transform) Mult(t2 Transform) Transform {
	return Transform{
		Position: t.Apply(t2.Position),
		Rotation: t.rotation().Mul(t2.rotation()).Normalize(),
	}
}

// RotationMatrix returns the 3x3 rotation matrix of t.
func (t Transform) RotationMatrix() mgl64.Mat3 {
	return t.rotation().Mat4().Mat3()
}

// rotation treats the zero quaternion as identity so that a zero Transform is usable.
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.LenSqr() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}
