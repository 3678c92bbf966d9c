package pathbool

import "fmt"

// Segment is an anchor point of a Path, with incoming and outgoing cubic control handles that are relative to the anchor. A segment with both handles zero joins its neighbours with straight lines.
type Segment struct {
	point     Point
	handleIn  Point
	handleOut Point

	path  *Path
	index int
}

// NewSegment returns a detached segment at the given point with relative handles.
func NewSegment(point, handleIn, handleOut Point) *Segment {
	return &Segment{point: point, handleIn: handleIn, handleOut: handleOut, index: -1}
}

// Point returns the anchor point.
func (s *Segment) Point() Point {
	return s.point
}

// HandleIn returns the incoming handle, relative to the anchor.
func (s *Segment) HandleIn() Point {
	return s.handleIn
}

// HandleOut returns the outgoing handle, relative to the anchor.
func (s *Segment) HandleOut() Point {
	return s.handleOut
}

// SetPoint moves the anchor point.
func (s *Segment) SetPoint(p Point) {
	s.point = p
	s.changed()
}

// SetHandleIn sets the incoming handle, relative to the anchor.
func (s *Segment) SetHandleIn(p Point) {
	s.handleIn = p
	s.changed()
}

// SetHandleOut sets the outgoing handle, relative to the anchor.
func (s *Segment) SetHandleOut(p Point) {
	s.handleOut = p
	s.changed()
}

// HasHandles returns true if either handle is set.
func (s *Segment) HasHandles() bool {
	return !s.handleIn.IsZero() || !s.handleOut.IsZero()
}

// clearHandles zeroes both handles.
func (s *Segment) clearHandles() {
	s.handleIn = Point{}
	s.handleOut = Point{}
	s.changed()
}

// Index returns the position of the segment within its path, or -1 when detached.
func (s *Segment) Index() int {
	return s.index
}

// Path returns the owning path, or nil when detached.
func (s *Segment) Path() *Path {
	return s.path
}

// IsFirst returns true if this is the first segment of its path.
func (s *Segment) IsFirst() bool {
	return s.index == 0
}

// IsLast returns true if this is the last segment of its path.
func (s *Segment) IsLast() bool {
	return s.path != nil && s.index == len(s.path.segments)-1
}

// Next returns the following segment, wrapping around on closed paths. It returns nil at the end of an open path.
func (s *Segment) Next() *Segment {
	if s.path == nil {
		return nil
	}
	if s.index+1 < len(s.path.segments) {
		return s.path.segments[s.index+1]
	} else if s.path.closed {
		return s.path.segments[0]
	}
	return nil
}

// Prev returns the preceding segment, wrapping around on closed paths. It returns nil at the start of an open path.
func (s *Segment) Prev() *Segment {
	if s.path == nil {
		return nil
	}
	if 0 < s.index {
		return s.path.segments[s.index-1]
	} else if s.path.closed {
		return s.path.segments[len(s.path.segments)-1]
	}
	return nil
}

// curveOut returns the curve leaving this segment, or nil when there is none.
func (s *Segment) curveOut() *Curve {
	if s.path == nil {
		return nil
	}
	curves := s.path.Curves()
	if s.index < len(curves) {
		return curves[s.index]
	}
	return nil
}

func (s *Segment) changed() {
	if s.path != nil {
		s.path.version++
	}
}

func (s *Segment) String() string {
	if s.HasHandles() {
		return fmt.Sprintf("%v<%v,%v>", s.point, s.handleIn, s.handleOut)
	}
	return s.point.String()
}
