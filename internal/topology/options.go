package topology

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateNode   = errors.New("duplicate node")
	ErrUndeclaredNode  = errors.New("undeclared node")
	ErrUnknownTopology = errors.New("unknown topology")
)

// LinkClass selects how a link is realized.
type LinkClass string

const (
	// ClassLink is a plain veth pair. Shaping options declared on it are
	// kept in the descriptor but not applied.
	ClassLink LinkClass = "Link"
	// ClassTCLink applies bandwidth, delay and queue limits with tc.
	ClassTCLink LinkClass = "TCLink"
)

// LinkOptions are the per-link parameters. Zero values mean unconstrained.
type LinkOptions struct {
	Class        LinkClass
	Bandwidth    float64 // Mbit/s
	Delay        string  // e.g. "50ms"
	MaxQueueSize int     // packets
}

// Shaping is the traffic control applied to both ends of a shaped link.
type Shaping struct {
	Bandwidth    float64
	Delay        time.Duration
	MaxQueueSize int
}

// DelayDuration parses Delay. An empty delay is zero.
func (o LinkOptions) DelayDuration() (time.Duration, error) {
	if o.Delay == "" {
		return 0, nil
	}
	return time.ParseDuration(o.Delay)
}

// Shaping returns the traffic control to apply for o, or nil when the link
// class does not shape traffic or no parameter is set.
func (o LinkOptions) Shaping() *Shaping {
	if o.Class != ClassTCLink {
		return nil
	}
	delay, err := o.DelayDuration()
	if err != nil {
		return nil
	}
	if o.Bandwidth == 0 && delay == 0 && o.MaxQueueSize == 0 {
		return nil
	}
	return &Shaping{
		Bandwidth:    o.Bandwidth,
		Delay:        delay,
		MaxQueueSize: o.MaxQueueSize,
	}
}

func (o LinkOptions) validate() error {
	switch o.Class {
	case "", ClassLink, ClassTCLink:
	default:
		return fmt.Errorf("unknown link class %q", o.Class)
	}
	if o.Bandwidth < 0 {
		return fmt.Errorf("negative bandwidth %v", o.Bandwidth)
	}
	if o.MaxQueueSize < 0 {
		return fmt.Errorf("negative max queue size %d", o.MaxQueueSize)
	}
	d, err := o.DelayDuration()
	if err != nil {
		return fmt.Errorf("invalid delay %q: %w", o.Delay, err)
	}
	if d < 0 {
		return fmt.Errorf("negative delay %s", o.Delay)
	}
	return nil
}
