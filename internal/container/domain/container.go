package domain

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/AidanWoolley/demikernel/internal/container/utils"
)

// NsenterCommand is the hidden subcommand the binary re-executes itself with
// to open a shell inside a node.
const NsenterCommand = "__catnet_nsenter__"

type Kind string

const (
	KindHost   Kind = "host"
	KindSwitch Kind = "switch"
)

var ErrNoNamespace = errors.New("container does not have a namespace")

// Container is an emulated node: a network namespace plus the bridges and
// veth pairs created for it.
type Container struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	CreatedAt string     `json:"created_at"`
	Namespace *Namespace `json:"namespace,omitempty"`
	Bridges   []Bridge   `json:"bridges,omitempty"`
	Veths     []Veth     `json:"veths,omitempty"`
}

func NewContainer(name string, kind Kind) *Container {
	return &Container{
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().Format(time.RFC3339),
		Bridges:   []Bridge{},
		Veths:     []Veth{},
	}
}

// CreateWithNamespace creates a new container and its namespace, named after
// the container.
func CreateWithNamespace(name string, kind Kind) (*Container, error) {
	container := NewContainer(name, kind)
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	container.ID = id

	ns, err := CreateNamespace(name)
	if err != nil {
		return nil, err
	}

	container.Namespace = ns
	return container, nil
}

// AddBridge creates and adds a bridge to the container's namespace
func (c *Container) AddBridge(name string) (*Bridge, error) {
	if c.Namespace == nil {
		return nil, ErrNoNamespace
	}

	bridge, err := CreateBridge(name, c.Namespace)
	if err != nil {
		return nil, fmt.Errorf("create bridge: %w", err)
	}

	c.Bridges = append(c.Bridges, *bridge)
	return &c.Bridges[len(c.Bridges)-1], nil
}

// Connect creates a veth pair from this container (end ifName) to peer (end
// peerIfName) and records it on both.
func (c *Container) Connect(peer *Container, ifName, peerIfName string) (*Veth, error) {
	if c.Namespace == nil || peer.Namespace == nil {
		return nil, ErrNoNamespace
	}

	veth, err := CreateVeth(c.Namespace, peer.Namespace, ifName, peerIfName)
	if err != nil {
		return nil, fmt.Errorf("create veth: %w", err)
	}

	c.Veths = append(c.Veths, *veth)
	peer.Veths = append(peer.Veths, *veth)
	return veth, nil
}

// Exec executes a command inside the container's namespace
func (c *Container) Exec(cmd []string) error {
	if c.Namespace == nil {
		return ErrNoNamespace
	}
	if len(cmd) == 0 {
		return errors.New("empty command")
	}

	// The child is forked from the locked thread and inherits its namespace.
	return c.Namespace.Do(func() error {
		execution := exec.Command(cmd[0], cmd[1:]...)
		execution.Stdout = os.Stdout
		execution.Stderr = os.Stderr
		execution.Stdin = os.Stdin
		return execution.Run()
	})
}

// AttachShell attaches to an interactive shell in the container's namespace
// by re-executing the binary with NsenterCommand.
func (c *Container) AttachShell() error {
	if c.Namespace == nil {
		return ErrNoNamespace
	}

	cmd := exec.Command("/proc/self/exe", NsenterCommand, c.Namespace.Path, c.Name)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	return cmd.Run()
}

// Nsenter enters the namespace at nsPath and replaces the process with bash.
// It only returns on failure.
func Nsenter(nsPath, containerName string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	nsFd, err := os.Open(nsPath)
	if err != nil {
		return fmt.Errorf("open namespace: %w", err)
	}
	defer nsFd.Close()

	if err := unix.Setns(int(nsFd.Fd()), unix.CLONE_NEWNET); err != nil {
		return fmt.Errorf("setns: %w", err)
	}

	os.Setenv("PS1", fmt.Sprintf("catnet@%s:\\w $ ", containerName))

	bashArgs := []string{
		"bash",
		"--noprofile",
		"--norc",
	}
	if err := syscall.Exec("/bin/bash", bashArgs, os.Environ()); err != nil {
		return fmt.Errorf("exec bash: %w", err)
	}
	return nil
}
