package field

// Alignment is the field-wide gather state
type Alignment struct {
	Active bool
	Target Point
}

// Snapshot is a read-only copy of the field for one render pass
type Snapshot struct {
	Instances []Instance
	Alignment Alignment
}

// Len returns the instance count
func (s Snapshot) Len() int {
	return len(s.Instances)
}

// Project returns where inst is rendered: the alignment target while alignment is active,
// its own resting position otherwise
func (s Snapshot) Project(inst Instance) Point {
	if s.Alignment.Active {
		return s.Alignment.Target
	}
	return inst.Position()
}

// Position is Project for the i-th instance
func (s Snapshot) Position(i int) Point {
	return s.Project(s.Instances[i])
}

// CountByLayer tallies instances per tier; invalid layers are counted as background
func (s Snapshot) CountByLayer() [LayerCount]int {
	var counts [LayerCount]int
	for _, inst := range s.Instances {
		l := inst.Layer
		if !l.Valid() {
			l = LayerBackground
		}
		counts[l]++
	}
	return counts
}

// Last returns the newest instance
func (s Snapshot) Last() (Instance, bool) {
	if len(s.Instances) == 0 {
		return Instance{}, false
	}
	return s.Instances[len(s.Instances)-1], true
}
