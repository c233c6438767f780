package cable

func (c *Cable) updateHybridLinks() {
	n := len(c.links)
	if n < 2 {
		return
	}

	// only the first and last links can be hybrid.
	if c.links[0].Surface != nil && c.links[0].Kind == Hybrid && c.joints[0] != nil {
		c.updateHybridLink(0, false)
	}
	if last := n - 1; c.links[last].Surface != nil && c.links[last].Kind == Hybrid && c.joints[last-1] != nil {
		c.updateHybridLink(last, true)
	}
}

// updateHybridLink switches a hybrid end link between attachment and rolling behavior.
// cableGoesIn is true for the last link, where the cable enters through InAnchor.
//
// A rolling hybrid that ran out of stored cable becomes an attachment. An attachment hybrid
// starts rolling once its anchor leaves the arc of the surface visible from the other end of
// the joint, winding toward the nearer tangent.
func (c *Cable) updateHybridLink(i int, cableGoesIn bool) {
	link := &c.links[i]
	j := i
	if cableGoesIn {
		j = i - 1
	}

	if link.hybridRolling {
		if link.StoredLength <= 0 {
			link.hybridRolling = false
			c.updateJoint(j, 0)
		}
		return
	}

	s := link.Surface
	a, b := c.worldAttachments(j)
	other, anchor := b, link.OutAnchor
	if cableGoesIn {
		other, anchor = a, link.InAnchor
	}

	tplus := s.ToPlane(s.Tangent(other, false))
	tminus := s.ToPlane(s.Tangent(other, true))
	t := s.ToPlane(s.Transform().Apply(anchor))

	dPlus := s.SurfaceDistance(t, tplus, false, true)
	dMinus := s.SurfaceDistance(tminus, t, false, true)

	if dPlus < 0 || dMinus < 0 {
		// pick the closest tangent, both distances can change sign in the same step.
		link.hybridRolling = true
		if abs(dPlus) < abs(dMinus) {
			link.Orientation = !cableGoesIn
		} else {
			link.Orientation = cableGoesIn
		}
		c.updateJoint(j, 0)
	}
}

func (c *Cable) updatePinholes() {
	for i := 1; i < len(c.links)-1; i++ {
		if c.links[i].Kind != Pinhole || c.links[i].Surface == nil {
			continue
		}
		prev, next := c.joints[i-1], c.joints[i]
		if prev != nil && next != nil {
			prev.UpdateLength(&c.links[i-1], &c.links[i])
			next.UpdateLength(&c.links[i], &c.links[i+1])
			updatePinhole(prev, next)
		}
	}
}

// updatePinhole slides cable through a pinhole so that neither joint is longer than its rest
// length, moving the excess from one joint to the other.
func updatePinhole(joint1, joint2 *Joint) {
	rest1 := joint1.RestLength
	rest2 := joint2.RestLength

	if joint1.length > rest1 {
		delta := joint1.length - rest1
		joint1.RestLength += delta
		joint2.RestLength -= delta
	}
	if joint2.length > rest2 {
		delta := joint2.length - rest2
		joint1.RestLength -= delta
		joint2.RestLength += delta
	}
}
