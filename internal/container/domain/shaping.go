package domain

import (
	"time"

	"github.com/vishvananda/netlink"
)

const (
	// DefaultNetemLimit is the netem queue length when none is given.
	DefaultNetemLimit = 1000
	// tbfMinBurst covers at least two full-size frames.
	tbfMinBurst = 2 * 1514
	// tbfLatency is how much traffic the token bucket may queue, in time.
	tbfLatency = 50 * time.Millisecond
)

var (
	tbfHandle   = netlink.MakeHandle(1, 0)
	tbfClass    = netlink.MakeHandle(1, 1)
	netemHandle = netlink.MakeHandle(10, 0)
)

// TrafficControl is the shaping installed on one end of a link: a token
// bucket at the root for the rate and a netem below it for the delay and the
// queue length.
type TrafficControl struct {
	// Bandwidth in Mbit/s, 0 for unlimited.
	Bandwidth float64       `json:"bandwidth,omitempty"`
	Delay     time.Duration `json:"delay,omitempty"`
	// MaxQueueSize in packets, 0 for the default.
	MaxQueueSize int `json:"max_queue_size,omitempty"`
}

// Qdiscs returns the queueing disciplines to install, root first.
func (tc TrafficControl) Qdiscs(linkIndex int) []netlink.Qdisc {
	var qdiscs []netlink.Qdisc
	netemParent := uint32(netlink.HANDLE_ROOT)

	if tc.Bandwidth > 0 {
		rate := uint64(tc.Bandwidth * 1e6 / 8)
		burst := uint32(rate / 100)
		if burst < tbfMinBurst {
			burst = tbfMinBurst
		}
		qdiscs = append(qdiscs, &netlink.Tbf{
			QdiscAttrs: netlink.QdiscAttrs{
				LinkIndex: linkIndex,
				Handle:    tbfHandle,
				Parent:    netlink.HANDLE_ROOT,
			},
			Rate:   rate,
			Buffer: burst,
			Limit:  burst + uint32(float64(rate)*tbfLatency.Seconds()),
		})
		netemParent = tbfClass
	}

	if tc.Delay > 0 || tc.MaxQueueSize > 0 {
		limit := uint32(DefaultNetemLimit)
		if tc.MaxQueueSize > 0 {
			limit = uint32(tc.MaxQueueSize)
		}
		qdiscs = append(qdiscs, netlink.NewNetem(
			netlink.QdiscAttrs{
				LinkIndex: linkIndex,
				Handle:    netemHandle,
				Parent:    netemParent,
			},
			netlink.NetemQdiscAttrs{
				Latency: uint32(tc.Delay.Microseconds()),
				Limit:   limit,
			},
		))
	}
	return qdiscs
}
