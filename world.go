package cable

import (
	"log"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// World steps bodies and the cables threaded through them.
//
// It is a minimal host for the cable solver: bodies are integrated without collisions, and
// ray queries test every surface that supports them.
type World struct {
	UserData any

	// Iterations is number of iterations to use in the impulse solver. Must be non-zero.
	Iterations uint

	// Gravity to pass to rigid bodies when integrating velocity.
	Gravity mgl64.Vec3

	// Damping rate expressed as the fraction of velocity bodies retain each second.
	//
	// A value of 0.9 would mean that each body's velocity will drop 10% per second.
	// The default value is 1.0, meaning no Damping is applied.
	Damping float64

	// Bias is the fraction of cable overstretch corrected per step. Defaults to 0.2.
	Bias float64

	// PostStepCallbacks run once after the next step, when the world is unlocked.
	PostStepCallbacks []func(w *World)

	bodies   []*Body
	surfaces []Surface
	cables   []*Cable
	locked   bool
}

// NewWorld allocates and initializes a World.
func NewWorld() *World {
	return &World{
		Iterations: 10,
		Gravity:    mgl64.Vec3{0, -9.81, 0},
		Damping:    1.0,
		Bias:       0.2,
	}
}

// IsLocked returns true while the world is stepping, when objects cannot be added or removed.
func (w *World) IsLocked() bool {
	return w.locked
}

func (w *World) assertUnlocked() {
	if w.locked {
		panic("World is locked: objects can't be added or removed during a step. Use a post step callback.")
	}
}

// AddBody adds a body to the world.
func (w *World) AddBody(body *Body) *Body {
	w.assertUnlocked()
	w.bodies = append(w.bodies, body)
	return body
}

// RemoveBody removes a body from the world.
func (w *World) RemoveBody(body *Body) {
	w.assertUnlocked()
	w.bodies = slices.DeleteFunc(w.bodies, func(b *Body) bool {
		return b == body
	})
}

// AddSurface adds a surface to the world. Surfaces implementing SegmentQuerier can be hit by Raycast.
func (w *World) AddSurface(surface Surface) Surface {
	w.assertUnlocked()
	w.surfaces = append(w.surfaces, surface)
	return surface
}

// RemoveSurface removes a surface from the world.
func (w *World) RemoveSurface(surface Surface) {
	w.assertUnlocked()
	w.surfaces = slices.DeleteFunc(w.surfaces, func(s Surface) bool {
		return s == surface
	})
}

// AddCable adds a cable to the world and makes the world its raycaster.
// Invalid cables are added anyway, with a warning.
func (w *World) AddCable(c *Cable) *Cable {
	w.assertUnlocked()
	if err := c.Validate(); err != nil {
		log.Println("Warning: adding invalid cable:", err)
	}
	c.Raycaster = w
	w.cables = append(w.cables, c)
	return c
}

// RemoveCable removes a cable from the world.
func (w *World) RemoveCable(c *Cable) {
	w.assertUnlocked()
	w.cables = slices.DeleteFunc(w.cables, func(other *Cable) bool {
		return other == c
	})
	if c.Raycaster == w {
		c.Raycaster = nil
	}
}

// Bodies returns the bodies of the world.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Cables returns the cables of the world.
func (w *World) Cables() []*Cable {
	return w.cables
}

// AddPostStepCallback schedules f to run after the current or next step.
func (w *World) AddPostStepCallback(f func(w *World)) {
	w.PostStepCallbacks = append(w.PostStepCallbacks, f)
}

// Raycast implements Raycaster. It returns the closest hit along the segment from a to b,
// skipping the surfaces in ignore.
func (w *World) Raycast(a, b mgl64.Vec3, ignore ...Surface) (RaycastHit, bool) {
	best := SegmentQueryInfo{Alpha: infinity}
	for _, s := range w.surfaces {
		q, ok := s.(SegmentQuerier)
		if !ok || slices.Contains(ignore, s) {
			continue
		}
		var info SegmentQueryInfo
		if q.SegmentQuery(a, b, &info) && info.Alpha < best.Alpha {
			best = info
		}
	}
	if best.Surface == nil {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Surface:  best.Surface,
		Point:    best.Point,
		Normal:   best.Normal,
		Distance: best.Alpha * b.Sub(a).Len(),
	}, true
}

// Step makes the world step forward in time by dt.
func (w *World) Step(dt float64) {
	if dt == 0 {
		return
	}

	w.locked = true
	{
		// Integrate positions
		for _, body := range w.bodies {
			body.UpdatePosition(dt)
		}

		// Prestep the cables.
		for _, c := range w.cables {
			c.UpdateCable(dt)
		}

		// Integrate velocities.
		damping := math.Pow(w.Damping, dt)
		for _, body := range w.bodies {
			body.UpdateVelocity(w.Gravity, damping, dt)
		}

		// Run the impulse solver.
		for range w.Iterations {
			for _, c := range w.cables {
				c.Solve(dt, w.Bias)
			}
		}
	}
	w.locked = false

	callbacks := w.PostStepCallbacks
	w.PostStepCallbacks = nil
	for _, f := range callbacks {
		f(w)
	}
}
