package domain

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/vishvananda/netns"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

// NETNS_DIR is where named namespaces are bind mounted.
const NETNS_DIR = "/var/run/netns"

// InitNamespace is the network namespace of pid 1. Veth pairs are created
// there before their ends are moved to the nodes.
var InitNamespace = &Namespace{Name: "init", Path: "/proc/1/ns/net"}

// Namespace represents a named network namespace
type Namespace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Path      string `json:"path"`
}

// CreateNamespace creates a named namespace without leaving the calling
// thread inside it.
func CreateNamespace(name string) (*Namespace, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origNS, err := netns.Get()
	if err != nil {
		return nil, fmt.Errorf("get current netns: %w", err)
	}
	defer origNS.Close()

	// NewNamed switches the thread into the new namespace
	ns, err := netns.NewNamed(name)
	if err != nil {
		netns.Set(origNS)
		return nil, fmt.Errorf("create netns %s: %w", name, err)
	}
	ns.Close()

	if err := netns.Set(origNS); err != nil {
		return nil, fmt.Errorf("setns back: %w", err)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	return &Namespace{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().Format(time.RFC3339),
		Path:      filepath.Join(NETNS_DIR, name),
	}, nil
}

// Do runs fn with the calling thread inside the namespace and restores the
// original namespace afterwards.
func (ns *Namespace) Do(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	origNS, err := netns.Get()
	if err != nil {
		return fmt.Errorf("get current netns: %w", err)
	}
	defer origNS.Close()

	targetNS, err := netns.GetFromPath(ns.Path)
	if err != nil {
		return fmt.Errorf("open netns '%s': %w", ns.Name, err)
	}
	defer targetNS.Close()

	if err := netns.Set(targetNS); err != nil {
		return fmt.Errorf("setns %s: %w", ns.Name, err)
	}
	fnErr := fn()
	if err := netns.Set(origNS); err != nil {
		return fmt.Errorf("setns back: %w", err)
	}
	return fnErr
}

// Handle opens the namespace, e.g. to move a link into it.
func (ns *Namespace) Handle() (netns.NsHandle, error) {
	return netns.GetFromPath(ns.Path)
}

// Delete removes the network namespace
func (ns *Namespace) Delete() error {
	if err := netns.DeleteNamed(ns.Name); err != nil {
		return fmt.Errorf("delete netns: %w", err)
	}
	return nil
}
