package cable

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// BB is an axis-aligned box in cable plane coordinates.
type BB struct {
	Min, Max vec.Vec2
}

// BBOf returns the smallest box holding every point. The zero BB is returned for no points.
func BBOf(points ...vec.Vec2) BB {
	if len(points) == 0 {
		return BB{}
	}
	bb := BB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb.Min = vec.Vec2{X: math.Min(bb.Min.X, p.X), Y: math.Min(bb.Min.Y, p.Y)}
		bb.Max = vec.Vec2{X: math.Max(bb.Max.X, p.X), Y: math.Max(bb.Max.Y, p.Y)}
	}
	return bb
}

func (bb BB) String() string {
	return fmt.Sprintf("[%v %v]-[%v %v]", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// Center returns the middle of the box.
func (bb BB) Center() vec.Vec2 {
	return bb.Min.Lerp(bb.Max, 0.5)
}

// Size returns the width and height of the box.
func (bb BB) Size() vec.Vec2 {
	return bb.Max.Sub(bb.Min)
}

// Contains reports whether p lies inside the box or on its border.
func (bb BB) Contains(p vec.Vec2) bool {
	return bb.Min.X <= p.X && p.X <= bb.Max.X && bb.Min.Y <= p.Y && p.Y <= bb.Max.Y
}

// Touches reports whether the segment from a to b passes through the box.
func (bb BB) Touches(a, b vec.Vec2) bool {
	enter, exit := 0.0, 1.0
	for _, axis := range [2]struct{ from, to, lo, hi float64 }{
		{a.X, b.X, bb.Min.X, bb.Max.X},
		{a.Y, b.Y, bb.Min.Y, bb.Max.Y},
	} {
		d := axis.to - axis.from
		if d == 0 {
			if axis.from < axis.lo || axis.from > axis.hi {
				return false
			}
			continue
		}
		t0 := (axis.lo - axis.from) / d
		t1 := (axis.hi - axis.from) / d
		enter = math.Max(enter, math.Min(t0, t1))
		exit = math.Min(exit, math.Max(t0, t1))
		if enter > exit {
			return false
		}
	}
	return true
}
