package cable

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	catenaryStep = 0.005
	// maxCatenarySteps caps the shape parameter search at z = 20, where sinh(z)/z is already ~1.2e7.
	maxCatenarySteps = 4000
)

// Catenary samples the hanging chain of arc length l between p1 and p2, with Y up.
//
// samples counts both endpoints, but only the interior points are appended to dst[:0]. The
// shape parameter is found by a linear search. It returns false if the chain can't hang: fewer
// than 2 samples, endpoints vertically aligned, or l not longer than the chord.
func Catenary(p1, p2 mgl64.Vec3, l float64, samples int, dst []mgl64.Vec3) ([]mgl64.Vec3, bool) {
	dst = dst[:0]
	if samples < 2 {
		return dst, false
	}

	vector := p2.Sub(p1)
	horizontal := mgl64.Vec3{vector[0], 0, vector[2]}
	u := horizontal.Len()
	v := vector[1]
	if u < magicEpsilon || l*l <= v*v {
		return dst, false
	}
	horizontal = horizontal.Mul(1 / u)

	// find z such that sinh(z)/z reaches the target ratio.
	target := math.Sqrt(l*l-v*v) / u
	z := catenaryStep
	for steps := 0; math.Sinh(z)/z < target; steps++ {
		if steps == maxCatenarySteps {
			log.Println("Warning: catenary search reached its step cap, target ratio:", target)
			break
		}
		z += catenaryStep
	}
	if z <= catenaryStep {
		return dst, false
	}

	a := u / 2 / z
	p := (u - a*math.Log((l+v)/(l-v))) / 2
	q := (v - l*math.Cosh(z)/math.Sinh(z)) / 2

	inc := u / float64(samples-1)
	for i := 1; i < samples-1; i++ {
		x := inc * float64(i)
		y := a*math.Cosh((x-p)/a) + q
		dst = append(dst, p1.Add(horizontal.Mul(x)).Add(mgl64.Vec3{0, y, 0}))
	}
	return dst, true
}

// Sinusoid samples a sine wave of the given frequency from origin along direction, with an
// amplitude that gives the wave an arc length of about l.
//
// Like Catenary it appends only interior samples to dst[:0]. It returns false for a zero
// frequency or span, or when l is too short for any amplitude.
func Sinusoid(origin, direction mgl64.Vec3, l float64, frequency uint, samples int, dst []mgl64.Vec3) ([]mgl64.Vec3, bool) {
	dst = dst[:0]

	magnitude := direction.Len()
	if magnitude <= 1e-4 || samples < 2 || frequency == 0 {
		return dst, false
	}

	direction = direction.Mul(1 / magnitude)
	ortho := orthogonal(direction)

	inc := magnitude / float64(samples-1)

	// small angle approximation of the wave arc length.
	d := float64(frequency) * 4
	d2 := d * d
	amplitude := math.Sqrt(l*l/d2 - magnitude*magnitude/d2)
	if !(amplitude > 0) {
		return dst, false
	}

	for i := 1; i < samples-1; i++ {
		pct := float64(i) / float64(samples-1)
		wave := math.Sin(pct*math.Pi*2*float64(frequency)) * amplitude
		dst = append(dst, origin.Add(direction.Mul(inc*float64(i))).Add(ortho.Mul(wave)))
	}
	return dst, true
}
