package leveler

import (
	"context"
	"fmt"
)

type scanState int

const (
	stateStart scanState = iota
	stateInPositive
	stateInNegative
)

// groupScanner is the GroupFinder state machine. A sign change or a zero
// sample closes the open group; finish flushes the trailing one.
type groupScanner struct {
	state   scanState
	current Group
	groups  Groups
}

func (s *groupScanner) push(pos int64, v int32) {
	switch {
	case v > 0:
		if s.state == stateInPositive {
			s.current.extend(pos, v)
			return
		}
		s.flush()
		s.current = newGroup(pos, v)
		s.state = stateInPositive
	case v < 0:
		if s.state == stateInNegative {
			s.current.extend(pos, v)
			return
		}
		s.flush()
		s.current = newGroup(pos, v)
		s.state = stateInNegative
	default:
		s.flush()
	}
}

func (s *groupScanner) flush() {
	switch s.state {
	case stateInPositive:
		s.groups.Positive = append(s.groups.Positive, s.current)
	case stateInNegative:
		s.groups.Negative = append(s.groups.Negative, s.current)
	case stateStart:
		return
	}
	s.state = stateStart
}

func (s *groupScanner) finish() Groups {
	s.flush()
	return s.groups
}

// FindGroups reads exactly src.FrameCount() samples and splits them into
// positive and negative excursion groups, each list ordered by position.
// progress may be nil.
func FindGroups(ctx context.Context, src Source, progress Progress) (Groups, error) {
	return findGroups(ctx, src, progress, progressStride)
}

func findGroups(ctx context.Context, src Source, progress Progress, stride int) (Groups, error) {
	if src == nil {
		return Groups{}, ErrNilSource
	}

	total := src.FrameCount()
	meter := newPassMeter(ctx, progress, total, stride)

	var scanner groupScanner
	for pos := int64(0); pos < total; pos++ {
		v, err := readSample(src, pos, total)
		if err != nil {
			return Groups{}, err
		}
		scanner.push(pos, v)

		if err := meter.step(); err != nil {
			return Groups{}, fmt.Errorf("scan groups: %w", err)
		}
	}
	meter.finish()

	return scanner.finish(), nil
}
