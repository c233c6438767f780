package cable

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InertiaForCylinder calculates the principal moments of inertia for a solid cylinder
// whose axis is the local Z axis, the axis discs and convex hulls roll about.
func InertiaForCylinder(mass, radius, height float64) mgl64.Vec3 {
	side := mass * (3*radius*radius + height*height) / 12.0
	return mgl64.Vec3{side, side, 0.5 * mass * radius * radius}
}

// InertiaForBox calculates the principal moments of inertia for a solid box with the given full extents.
func InertiaForBox(mass float64, size mgl64.Vec3) mgl64.Vec3 {
	x, y, z := size[0]*size[0], size[1]*size[1], size[2]*size[2]
	return mgl64.Vec3{mass * (y + z) / 12.0, mass * (x + z) / 12.0, mass * (x + y) / 12.0}
}

// InertiaForSphere calculates the principal moments of inertia for a solid sphere.
func InertiaForSphere(mass, radius float64) mgl64.Vec3 {
	i := 0.4 * mass * radius * radius
	return mgl64.Vec3{i, i, i}
}
