package topology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HostDesc is the serializable form of a host.
type HostDesc struct {
	Name string `json:"name" yaml:"name"`
	IP   string `json:"ip" yaml:"ip"`
	MAC  string `json:"mac" yaml:"mac"`
}

// LinkDesc is the serializable form of a link. Unset options are omitted.
type LinkDesc struct {
	A            string    `json:"a" yaml:"a"`
	B            string    `json:"b" yaml:"b"`
	Class        LinkClass `json:"cls,omitempty" yaml:"cls,omitempty"`
	Bandwidth    float64   `json:"bw,omitempty" yaml:"bw,omitempty"`
	Delay        string    `json:"delay,omitempty" yaml:"delay,omitempty"`
	MaxQueueSize int       `json:"max_queue_size,omitempty" yaml:"max_queue_size,omitempty"`
}

// Desc is a pointer-free description of a topology, in declaration order.
type Desc struct {
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Hosts    []HostDesc `json:"hosts" yaml:"hosts"`
	Switches []string   `json:"switches" yaml:"switches"`
	Links    []LinkDesc `json:"links" yaml:"links"`
}

// Transform converts t into its serializable description.
func (t *Topology) Transform() Desc {
	desc := Desc{
		Hosts:    []HostDesc{},
		Switches: []string{},
		Links:    make([]LinkDesc, 0, len(t.Links)),
	}
	for _, name := range t.order {
		n := t.Nodes[name]
		switch n.Type {
		case NodeHost:
			desc.Hosts = append(desc.Hosts, HostDesc{Name: n.Name, IP: n.IP, MAC: n.MAC})
		case NodeSwitch:
			desc.Switches = append(desc.Switches, n.Name)
		}
	}
	for _, l := range t.Links {
		desc.Links = append(desc.Links, LinkDesc{
			A:            l.NodeA,
			B:            l.NodeB,
			Class:        l.Options.Class,
			Bandwidth:    l.Options.Bandwidth,
			Delay:        l.Options.Delay,
			MaxQueueSize: l.Options.MaxQueueSize,
		})
	}
	return desc
}

// Topology rebuilds a topology from d. Hosts are declared before switches.
func (d Desc) Topology() (*Topology, error) {
	t := NewTopology()
	for _, h := range d.Hosts {
		t.AddHost(h.Name, h.IP, h.MAC)
	}
	for _, s := range d.Switches {
		t.AddSwitch(s)
	}
	for _, l := range d.Links {
		t.AddLink(l.A, l.B, LinkOptions{
			Class:        l.Class,
			Bandwidth:    l.Bandwidth,
			Delay:        l.Delay,
			MaxQueueSize: l.MaxQueueSize,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal serializes d as YAML or, when useYAML is false, as indented JSON.
func (d Desc) Marshal(useYAML bool) ([]byte, error) {
	if useYAML {
		return yaml.Marshal(d)
	}
	return json.MarshalIndent(d, "", "\t")
}

// ReadDesc deserializes a description. If dict is empty the file whose name
// is given is read to acquire the bytes.
func ReadDesc(filename string, useYAML bool, dict []byte) (*Desc, error) {
	var err error
	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	desc := Desc{}
	if useYAML {
		err = yaml.Unmarshal(dict, &desc)
	} else {
		err = json.Unmarshal(dict, &desc)
	}
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

// IsYAML selects the encoding for filename from its extension.
func IsYAML(filename string) (bool, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true, nil
	case ".json":
		return false, nil
	}
	return false, fmt.Errorf("%s: unsupported extension, want .yaml, .yml or .json", filename)
}

// WriteToFile stores the description of t under filename. Serialization to
// json or to yaml is selected based on the extension of this name.
func WriteToFile(t *Topology, name, filename string) error {
	useYAML, err := IsYAML(filename)
	if err != nil {
		return err
	}
	desc := t.Transform()
	desc.Name = name
	bytes, err := desc.Marshal(useYAML)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}
	return os.WriteFile(filename, bytes, 0o644)
}

// ReadFromFile loads and validates a topology written by WriteToFile.
func ReadFromFile(filename string) (*Topology, string, error) {
	useYAML, err := IsYAML(filename)
	if err != nil {
		return nil, "", err
	}
	desc, err := ReadDesc(filename, useYAML, nil)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", filename, err)
	}
	t, err := desc.Topology()
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", filename, err)
	}
	return t, desc.Name, nil
}
