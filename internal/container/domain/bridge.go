package domain

import (
	"fmt"
	"time"

	"github.com/vishvananda/netlink"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

// Bridge is the forwarding plane of a switch node.
type Bridge struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Namespace *Namespace `json:"namespace,omitempty"`
	CreatedAt string     `json:"created_at"`
	Ports     []string   `json:"ports,omitempty"`
}

// CreateBridge creates and brings up a bridge inside namespace.
func CreateBridge(name string, namespace *Namespace) (*Bridge, error) {
	err := namespace.Do(func() error {
		br := &netlink.Bridge{
			LinkAttrs: netlink.LinkAttrs{
				Name: name,
			},
		}
		if err := netlink.LinkAdd(br); err != nil {
			return fmt.Errorf("bridge add: %w", err)
		}

		// Look up the bridge we just created to get a fresh handle
		link, err := netlink.LinkByName(name)
		if err != nil {
			return fmt.Errorf("lookup bridge: %w", err)
		}
		if err := netlink.LinkSetUp(link); err != nil {
			return fmt.Errorf("bridge up: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	return &Bridge{
		ID:        id,
		Name:      name,
		Namespace: namespace,
		CreatedAt: time.Now().Format(time.RFC3339),
		Ports:     []string{},
	}, nil
}

// AttachInterfaceByName enslaves ifName to the bridge and brings it up.
func (b *Bridge) AttachInterfaceByName(ifName string) error {
	err := b.Namespace.Do(func() error {
		brLink, err := netlink.LinkByName(b.Name)
		if err != nil {
			return fmt.Errorf("lookup bridge %s: %w", b.Name, err)
		}
		ifLink, err := netlink.LinkByName(ifName)
		if err != nil {
			return fmt.Errorf("lookup interface %s: %w", ifName, err)
		}
		if err := netlink.LinkSetMaster(ifLink, brLink); err != nil {
			return fmt.Errorf("set master: %w", err)
		}
		if err := netlink.LinkSetUp(ifLink); err != nil {
			return fmt.Errorf("set up: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.Ports = append(b.Ports, ifName)
	return nil
}

// Delete removes the bridge. A namespace that is already gone took the
// bridge with it.
func (b *Bridge) Delete() error {
	if b.Namespace == nil {
		return nil
	}
	handle, err := b.Namespace.Handle()
	if err != nil {
		return nil
	}
	handle.Close()
	return b.Namespace.Do(func() error {
		br, err := netlink.LinkByName(b.Name)
		if err != nil {
			return nil
		}
		return netlink.LinkDel(br)
	})
}
