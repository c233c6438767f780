package cable

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SampledCable is a cable centerline made of one or more polylines.
//
// Segment buffers are kept across Clear calls and refilled, so sampling every frame does not
// allocate once the buffers have grown.
type SampledCable struct {
	// Frame is the pose of the space samples are stored in. The zero value is world space.
	Frame Transform

	segments     [][]mgl64.Vec3
	segmentCount int
	lastSample   mgl64.Vec3
	length       float64
}

// AppendSample adds a world space point to the last segment and accumulates the sampled length.
func (sc *SampledCable) AppendSample(p mgl64.Vec3) {
	p = sc.Frame.InverseApply(p)

	if sc.segmentCount > 0 && len(sc.segments[0]) > 0 {
		sc.length += p.Sub(sc.lastSample).Len()
	}

	if sc.segmentCount == 0 {
		sc.segmentCount = 1
	}
	if len(sc.segments) == 0 {
		sc.segments = append(sc.segments, nil)
	}

	sc.segments[sc.segmentCount-1] = append(sc.segments[sc.segmentCount-1], p)
	sc.lastSample = p
}

// NewSegment starts a new polyline. Segments emptied by Clear are reused.
func (sc *SampledCable) NewSegment() {
	sc.segmentCount++
	if len(sc.segments) < sc.segmentCount {
		sc.segments = append(sc.segments, nil)
	}
}

// Clear empties every segment without releasing its buffer.
func (sc *SampledCable) Clear() {
	for i := range sc.segments {
		sc.segments[i] = sc.segments[i][:0]
	}
	sc.segmentCount = 0
	sc.length = 0
}

// Close repeats the first sample at the end of the last segment.
func (sc *SampledCable) Close() {
	if sc.segmentCount > 0 && len(sc.segments[0]) > 0 {
		sc.segments[sc.segmentCount-1] = append(sc.segments[sc.segmentCount-1], sc.segments[0][0])
	}
}

// Segments returns the polylines sampled since the last Clear.
func (sc *SampledCable) Segments() [][]mgl64.Vec3 {
	return sc.segments[:sc.segmentCount]
}

// Length returns the sampled length.
func (sc *SampledCable) Length() float64 {
	return sc.length
}

// Strain returns the sampled length over restLength, 1 if restLength is not positive.
func (sc *SampledCable) Strain(restLength float64) float64 {
	if restLength > 0 {
		return sc.length / restLength
	}
	return 1
}

// Sampler turns a cable into a polyline for display. Joints with slack are drawn hanging as a
// catenary, or as a sine wave when they are close to vertical.
type Sampler struct {
	// Frame is the pose of the space samples are produced in.
	Frame Transform

	// EdgeLoopSpacing is the desired distance between samples.
	EdgeLoopSpacing float64
	// MaxEdgeLoopsPerLooseJoint caps the samples of a joint with slack.
	MaxEdgeLoopsPerLooseJoint int
	// MaxEdgeLoopsPerTautJoint caps the samples of a taut joint.
	MaxEdgeLoopsPerTautJoint int

	// LoosenessScale in [0, 1] is the fraction of slack drawn. Zero draws every joint taut.
	LoosenessScale float64
	// MaxLooseCable caps the slack drawn per joint. It is applied before LoosenessScale.
	MaxLooseCable float64

	// VerticalThreshold is the squared horizontal (XZ) span under which a joint is considered vertical.
	VerticalThreshold float64
	// VerticalCurliness is the frequency of the sine wave used for vertical joints.
	VerticalCurliness uint

	sampled SampledCable
	buffer  []mgl64.Vec3
}

// NewSampler returns a Sampler with default quality settings.
func NewSampler() *Sampler {
	return &Sampler{
		Frame:                     NewTransformIdentity(),
		EdgeLoopSpacing:           0.2,
		MaxEdgeLoopsPerLooseJoint: 10,
		MaxEdgeLoopsPerTautJoint:  2,
		LoosenessScale:            1,
		MaxLooseCable:             0.25,
		VerticalThreshold:         0.25,
		VerticalCurliness:         1,
	}
}

// SampleCable samples c from the current poses of its surfaces. The cable is not modified.
// The returned SampledCable is owned by the sampler and overwritten by the next call.
func (s *Sampler) SampleCable(c *Cable) *SampledCable {
	s.sampled.Clear()
	s.sampled.Frame = s.Frame

	if len(c.links) == 0 || len(c.joints) == 0 {
		return &s.sampled
	}

	closed := c.Closed()
	for i := range c.links {
		link := &c.links[i]
		if link.Surface == nil {
			continue
		}

		// the first link of a closed cable is drawn as part of the last one.
		if !(i == 0 && closed) || link.Kind == Attachment || link.Kind == Pinhole {
			s.sampleLink(link, c.PreviousJoint(i), c.NextJoint(i))
		}

		if i < len(c.joints) && c.joints[i] != nil {
			s.sampleJoint(c, i)
		}
	}

	if closed {
		s.sampled.Close()
	}
	return &s.sampled
}

func (s *Sampler) spacing() float64 {
	return max(s.EdgeLoopSpacing, 0.01)
}

func (s *Sampler) sampleLink(link *Link, prev, next *Joint) {
	tr := link.Surface.Transform()
	var t1, t2 mgl64.Vec3
	if prev != nil {
		t1 = tr.Apply(prev.OffsetB)
	}
	if next != nil {
		t2 = tr.Apply(next.OffsetA)
	}

	switch link.Kind {
	case Hybrid:
		// walk from the tangent to the cable end, then reverse for the first link.
		if prev != nil {
			s.appendSurfaceSamples(link, t1, link.StoredLength, link.Orientation, false)
		} else if next != nil {
			s.appendSurfaceSamples(link, t2, link.StoredLength, !link.Orientation, true)
		}
	case Rolling:
		if prev != nil && next != nil {
			sf := link.Surface
			distance := sf.SurfaceDistance(sf.ToPlane(t1), sf.ToPlane(t2), link.Orientation, false)
			s.appendSurfaceSamples(link, t1, distance, link.Orientation, false)
		}
	default:
		if prev != nil {
			s.sampled.AppendSample(tr.Apply(link.InAnchor))
		}
		if prev != nil && next != nil && link.InAnchor.Sub(link.OutAnchor).LenSqr() > magicEpsilon*magicEpsilon {
			s.sampled.NewSegment()
		}
		if next != nil {
			s.sampled.AppendSample(tr.Apply(link.OutAnchor))
		}
	}
}

// appendSurfaceSamples samples distance of cable along the surface of link starting at the
// world point start. Hybrid links lift each sample off the plane by the cable still spooled
// beneath it.
func (s *Sampler) appendSurfaceSamples(link *Link, start mgl64.Vec3, distance float64, orientation, reverse bool) {
	sf := link.Surface
	origin := sf.ToPlane(start)
	normal := sf.PlaneNormal()

	n := 0
	if distance > 0 {
		n = max(int(distance/s.spacing()), 1)
	}

	s.buffer = s.buffer[:0]
	for k := 0; k <= n; k++ {
		walked := 0.0
		if n > 0 {
			walked = distance * float64(k) / float64(n)
		}
		p := sf.PointAtDistance(origin, walked, orientation)
		if link.Kind == Hybrid {
			p = p.Sub(normal.Mul((link.StoredLength - walked) * link.SpoolSeparation))
		}
		s.buffer = append(s.buffer, p)
	}

	if reverse {
		for k := len(s.buffer) - 1; k >= 0; k-- {
			s.sampled.AppendSample(s.buffer[k])
		}
		return
	}
	for _, p := range s.buffer {
		s.sampled.AppendSample(p)
	}
}

func (s *Sampler) sampleJoint(c *Cable, i int) {
	joint := c.joints[i]
	p1, p2 := c.worldAttachments(i)
	length := p2.Sub(p1).Len()
	restLength := joint.RestLength

	if length < restLength && s.LoosenessScale > 0 {
		sampledLength := lerp(length, min(restLength, length+s.MaxLooseCable), s.LoosenessScale)
		samples := min(int(sampledLength/s.spacing()), s.MaxEdgeLoopsPerLooseJoint)

		dir := p2.Sub(p1)
		var ok bool
		if dir[0]*dir[0]+dir[2]*dir[2] > s.VerticalThreshold {
			s.buffer, ok = Catenary(p1, p2, sampledLength, samples, s.buffer)
		} else {
			s.buffer, ok = Sinusoid(p1, dir, sampledLength, s.VerticalCurliness, samples, s.buffer)
		}
		if ok {
			for _, p := range s.buffer {
				s.sampled.AppendSample(p)
			}
			return
		}
	}

	// taut, or the slack curve can't be represented: straight line.
	samples := min(int(restLength/s.spacing()), s.MaxEdgeLoopsPerTautJoint)
	for j := 1; j < samples-1; j++ {
		s.sampled.AppendSample(lerp3(p1, p2, float64(j)/float64(samples-1)))
	}
}
