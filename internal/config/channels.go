package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operation is what happens to an input channel on its way to the output.
type Operation int

const (
	// Adjust levels the channel.
	Adjust Operation = iota
	// Copy passes the channel through unchanged.
	Copy
)

func (o Operation) String() string {
	if o == Copy {
		return "copy"
	}
	return "adjust"
}

// ErrChannelSyntax reports a malformed channel operation list.
var ErrChannelSyntax = errors.New("channel operations must look like IN>OUT[:adjust|copy]")

// ChannelOp routes input channel In to output channel Out.
type ChannelOp struct {
	In  int
	Out int
	Op  Operation
}

func (c ChannelOp) String() string {
	return fmt.Sprintf("%d>%d:%s", c.In, c.Out, c.Op)
}

// ParseChannelOps parses a comma separated list such as
// "0>0:adjust,1>1:copy". The operation defaults to adjust. Each output
// channel may be written only once.
func ParseChannelOps(s string) ([]ChannelOp, error) {
	var ops []ChannelOp
	seen := make(map[int]bool)

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		route, opName, hasOp := strings.Cut(field, ":")
		in, out, ok := strings.Cut(route, ">")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrChannelSyntax, field)
		}

		op := ChannelOp{Op: Adjust}
		var err error
		if op.In, err = parseIndex(in); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrChannelSyntax, field, err)
		}
		if op.Out, err = parseIndex(out); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrChannelSyntax, field, err)
		}

		if hasOp {
			switch strings.ToLower(strings.TrimSpace(opName)) {
			case "adjust":
				op.Op = Adjust
			case "copy":
				op.Op = Copy
			default:
				return nil, fmt.Errorf("%w: %q: unknown operation %q", ErrChannelSyntax, field, opName)
			}
		}

		if seen[op.Out] {
			return nil, fmt.Errorf("output channel %d written twice", op.Out)
		}
		seen[op.Out] = true
		ops = append(ops, op)
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrChannelSyntax)
	}
	return ops, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative channel %d", n)
	}
	return n, nil
}

// DefaultChannelOps adjusts every channel in place.
func DefaultChannelOps(channels int) []ChannelOp {
	ops := make([]ChannelOp, channels)
	for i := range ops {
		ops[i] = ChannelOp{In: i, Out: i, Op: Adjust}
	}
	return ops
}

// OutputChannels returns the number of output channels ops produce.
func OutputChannels(ops []ChannelOp) int {
	n := 0
	for _, op := range ops {
		n = max(n, op.Out+1)
	}
	return n
}
