package domain

import (
	"fmt"
	"net"
	"time"

	"github.com/vishvananda/netlink"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

// Veth represents a virtual ethernet pair whose ends live in two node
// namespaces.
type Veth struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	PeerName   string     `json:"peer_name"`
	NamespaceA *Namespace `json:"namespace_a,omitempty"`
	NamespaceB *Namespace `json:"namespace_b,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// CreateVeth creates the pair nameA<->nameB in the init namespace and moves
// nameA into nsA and nameB into nsB.
func CreateVeth(nsA, nsB *Namespace, nameA, nameB string) (*Veth, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	v := &Veth{
		ID:         id,
		Name:       nameA,
		PeerName:   nameB,
		NamespaceA: nsA,
		NamespaceB: nsB,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	err = InitNamespace.Do(func() error {
		link := &netlink.Veth{
			LinkAttrs: netlink.LinkAttrs{
				Name: nameA,
			},
			PeerName: nameB,
		}
		if err := netlink.LinkAdd(link); err != nil {
			return fmt.Errorf("create veth %s<->%s: %w", nameA, nameB, err)
		}
		if err := moveToNamespace(nameA, nsA); err != nil {
			return err
		}
		return moveToNamespace(nameB, nsB)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// moveToNamespace must run in the namespace currently holding ifname.
func moveToNamespace(ifname string, namespace *Namespace) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return fmt.Errorf("find interface %s: %w", ifname, err)
	}
	handle, err := namespace.Handle()
	if err != nil {
		return fmt.Errorf("open namespace %s: %w", namespace.Name, err)
	}
	defer handle.Close()

	if err := netlink.LinkSetNsFd(link, int(handle)); err != nil {
		return fmt.Errorf("set netns for %s: %w", ifname, err)
	}
	return nil
}

// End returns the namespace holding ifname, nil if ifname is not an end of
// the pair.
func (v *Veth) End(ifname string) *Namespace {
	switch ifname {
	case v.Name:
		return v.NamespaceA
	case v.PeerName:
		return v.NamespaceB
	}
	return nil
}

// Configure sets the hardware address and the address of one end, either
// may be empty, and brings the end up.
func (v *Veth) Configure(ifname, mac, ipCIDR string) error {
	namespace := v.End(ifname)
	if namespace == nil {
		return fmt.Errorf("%s is not an end of veth %s", ifname, v.Name)
	}

	var hwAddr net.HardwareAddr
	if mac != "" {
		var err error
		if hwAddr, err = net.ParseMAC(mac); err != nil {
			return fmt.Errorf("parse mac: %w", err)
		}
	}
	var addr *netlink.Addr
	if ipCIDR != "" {
		var err error
		if addr, err = netlink.ParseAddr(ipCIDR); err != nil {
			return fmt.Errorf("parse addr: %w", err)
		}
	}

	return namespace.Do(func() error {
		link, err := netlink.LinkByName(ifname)
		if err != nil {
			return fmt.Errorf("get link %s: %w", ifname, err)
		}
		if hwAddr != nil {
			if err := netlink.LinkSetHardwareAddr(link, hwAddr); err != nil {
				return fmt.Errorf("set mac on %s: %w", ifname, err)
			}
		}
		if addr != nil {
			if err := netlink.AddrAdd(link, addr); err != nil {
				return fmt.Errorf("add addr to %s: %w", ifname, err)
			}
		}
		if err := netlink.LinkSetUp(link); err != nil {
			return fmt.Errorf("set up %s: %w", ifname, err)
		}
		return nil
	})
}

// Shape installs tc on one end of the pair.
func (v *Veth) Shape(ifname string, tc TrafficControl) error {
	namespace := v.End(ifname)
	if namespace == nil {
		return fmt.Errorf("%s is not an end of veth %s", ifname, v.Name)
	}
	return namespace.Do(func() error {
		link, err := netlink.LinkByName(ifname)
		if err != nil {
			return fmt.Errorf("get link %s: %w", ifname, err)
		}
		for _, qdisc := range tc.Qdiscs(link.Attrs().Index) {
			if err := netlink.QdiscReplace(qdisc); err != nil {
				return fmt.Errorf("%s qdisc on %s: %w", qdisc.Type(), ifname, err)
			}
		}
		return nil
	})
}

// Delete removes the pair. Deleting either end deletes both; a namespace
// that is already gone took the pair with it.
func (v *Veth) Delete() error {
	if v.NamespaceA == nil {
		return nil
	}
	handle, err := v.NamespaceA.Handle()
	if err != nil {
		return nil
	}
	handle.Close()

	return v.NamespaceA.Do(func() error {
		link, err := netlink.LinkByName(v.Name)
		if err != nil {
			return nil
		}
		return netlink.LinkDel(link)
	})
}
