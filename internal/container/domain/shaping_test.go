package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"

	"github.com/AidanWoolley/demikernel/internal/container/domain"
)

func TestQdiscs(t *testing.T) {
	t.Run("rate delay and queue", func(t *testing.T) {
		qdiscs := domain.TrafficControl{
			Bandwidth:    10,
			Delay:        50 * time.Millisecond,
			MaxQueueSize: 10,
		}.Qdiscs(7)
		require.Len(t, qdiscs, 2)

		tbf, ok := qdiscs[0].(*netlink.Tbf)
		require.True(t, ok)
		assert.Equal(t, 7, tbf.LinkIndex)
		assert.Equal(t, uint32(netlink.HANDLE_ROOT), tbf.Parent)
		assert.Equal(t, netlink.MakeHandle(1, 0), tbf.Handle)
		assert.Equal(t, uint64(1250000), tbf.Rate)
		assert.Equal(t, uint32(12500), tbf.Buffer)
		assert.Equal(t, uint32(12500+62500), tbf.Limit)

		netem, ok := qdiscs[1].(*netlink.Netem)
		require.True(t, ok)
		assert.Equal(t, netlink.MakeHandle(1, 1), netem.Parent)
		assert.Equal(t, uint32(10), netem.Limit)
	})

	t.Run("slow link keeps minimum burst", func(t *testing.T) {
		qdiscs := domain.TrafficControl{Bandwidth: 1}.Qdiscs(3)
		require.Len(t, qdiscs, 1)
		tbf := qdiscs[0].(*netlink.Tbf)
		assert.Equal(t, uint64(125000), tbf.Rate)
		assert.Equal(t, uint32(2*1514), tbf.Buffer)
	})

	t.Run("delay only", func(t *testing.T) {
		qdiscs := domain.TrafficControl{Delay: time.Millisecond}.Qdiscs(3)
		require.Len(t, qdiscs, 1)
		netem, ok := qdiscs[0].(*netlink.Netem)
		require.True(t, ok)
		assert.Equal(t, uint32(netlink.HANDLE_ROOT), netem.Parent)
		assert.Equal(t, uint32(domain.DefaultNetemLimit), netem.Limit)
	})

	t.Run("nothing", func(t *testing.T) {
		assert.Empty(t, domain.TrafficControl{}.Qdiscs(3))
	})
}

func TestVethEnd(t *testing.T) {
	a := &domain.Namespace{Name: "alice"}
	b := &domain.Namespace{Name: "s1"}
	v := &domain.Veth{Name: "alice-eth0", PeerName: "s1-eth0", NamespaceA: a, NamespaceB: b}

	assert.Same(t, a, v.End("alice-eth0"))
	assert.Same(t, b, v.End("s1-eth0"))
	assert.Nil(t, v.End("bob-eth0"))
	assert.Error(t, v.Configure("bob-eth0", "", ""))
	assert.Error(t, v.Shape("bob-eth0", domain.TrafficControl{}))
}
