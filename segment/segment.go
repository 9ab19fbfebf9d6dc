package segment

import (
	"github.com/canopy-parse/canopy/forest"
	"github.com/canopy-parse/canopy/grammar"
	"github.com/canopy-parse/canopy/reduce"
)

// span is the (start, end) key used to group same-interval pieces across
// lex variants into one Segment.
type span struct{ start, end int }

// Segment is an interval between boundaries, searched independently. Its
// bases hold one reduction-search iterator per lex variant that produced
// this interval; its continuations are the segments immediately following
// it in the input.
type Segment struct {
	Start, End    int
	Continuations []*Segment

	hopper *reduce.Hopper
	picker *reduce.Picker
}

func newSegment(g *grammar.Grammar, filters []string, n int, sp span, variants []*forest.Parse) *Segment {
	h := reduce.NewHopper(n, filters)
	pk := reduce.NewPicker(h)
	pk.Seed(g, variants)
	return &Segment{Start: sp.start, End: sp.end, hopper: h, picker: pk}
}

// Next pops an iterator and advances it one step, feeding this segment's
// own hopper. Returns false once the segment has no more work.
func (s *Segment) Next() bool { return s.picker.Step() }

// Done reports whether this segment's search has exhausted its worklist or
// its own hopper already reports satisfied, mirroring Picker.Run's loop
// condition at the segment layer.
func (s *Segment) Done() bool {
	if !s.picker.HasWork() {
		s.picker.Stuck() // may panic per gconf.GetBool("canopy.panic-on-stuck-picker")
		return true
	}
	return s.hopper.Satisfied()
}

// Results returns the parses this segment's hopper currently holds.
func (s *Segment) Results() []*forest.Parse { return s.hopper.Results() }

// Mass is the segment's character length.
func (s *Segment) Mass() int { return s.End - s.Start }

// Weight prioritizes scheduling: mass times the segment's current hopper
// size.
func (s *Segment) Weight() int { return s.Mass() * s.hopper.Size() }

// TotalParses is this segment's hopper size times the sum of its
// continuations' total_parses (1 for a final segment with no
// continuations).
func (s *Segment) TotalParses() int {
	if len(s.Continuations) == 0 {
		return s.hopper.Size()
	}
	sum := 0
	for _, c := range s.Continuations {
		sum += c.TotalParses()
	}
	return s.hopper.Size() * sum
}

// Build splits every lex variant into pieces by boundary/trash nodes,
// groups same-interval pieces into Segments, links each segment to its
// continuations (segments starting where it ends), and returns the
// segments that start at offset 0.
func Build(g *grammar.Grammar, filters []string, n int, variants []*forest.Parse) []*Segment {
	grouped := map[span][]*forest.Parse{}
	var order []span
	for _, v := range variants {
		for _, pc := range splitByBoundary(v) {
			sp := span{pc.start, pc.end}
			if _, seen := grouped[sp]; !seen {
				order = append(order, sp)
			}
			grouped[sp] = append(grouped[sp], subParse(v.Text(), pc.roots))
		}
	}

	segments := make(map[span]*Segment, len(order))
	for _, sp := range order {
		segments[sp] = newSegment(g, filters, n, sp, grouped[sp])
	}
	for _, sp := range order {
		for _, other := range order {
			if other.start == sp.end {
				segments[sp].Continuations = append(segments[sp].Continuations, segments[other])
			}
		}
	}

	var initial []*Segment
	for _, sp := range order {
		if sp.start == 0 {
			initial = append(initial, segments[sp])
		}
	}
	tracer().Debugf("segment.Build: %d variant(s), %d segment(s), %d initial", len(variants), len(order), len(initial))
	return initial
}

// Compose cross-products a segment's own results with each continuation's
// composed results, concatenating root vectors to produce whole parses.
// A segment with no continuations composes to its own results unchanged.
func Compose(s *Segment) []*forest.Parse {
	own := s.Results()
	if len(s.Continuations) == 0 {
		return own
	}
	var combined []*forest.Parse
	for _, cont := range s.Continuations {
		for _, contParse := range Compose(cont) {
			for _, o := range own {
				combined = append(combined, forest.Concat(o, contParse))
			}
		}
	}
	return combined
}
