package memstore

import (
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/scigolib/nwb/internal/utils"
)

// yamlValue is the snapshot form of a dataset or attribute. Exactly one of
// Text and Numeric is set; a value with neither is an empty text value.
type yamlValue struct {
	Text       *[]string            `yaml:"text,omitempty"`
	Numeric    *[]float64           `yaml:"numeric,omitempty"`
	Chunked    bool                 `yaml:"chunked,omitempty"`
	Attributes map[string]yamlValue `yaml:"attributes,omitempty"`
}

// yamlGroup is the snapshot form of a group.
type yamlGroup struct {
	Attributes map[string]yamlValue `yaml:"attributes,omitempty"`
	Datasets   map[string]yamlValue `yaml:"datasets,omitempty"`
	Groups     map[string]yamlGroup `yaml:"groups,omitempty"`
}

// LoadYAML builds a container from a YAML snapshot:
//
//	attributes:
//	  nwb_version: {text: ["2.2.4"]}
//	datasets:
//	  session_description: {text: ["patch clamp"]}
//	groups:
//	  acquisition:
//	    groups:
//	      timeseries: {}
func LoadYAML(r io.Reader) (*Store, error) {
	var root yamlGroup
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && err != io.EOF {
		return nil, utils.WrapError("yaml decode failed", err)
	}

	s := New()
	if err := fillGroup(s.root, root); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadYAMLFile reads a YAML snapshot from disk.
func LoadYAMLFile(filename string) (*Store, error) {
	//nolint:gosec // G304: user supplied fixture path is intentional
	f, err := os.Open(filename)
	if err != nil {
		return nil, utils.WrapError("file open failed", err)
	}
	defer func() { _ = f.Close() }()

	return LoadYAML(f)
}

func fillGroup(n *node, g yamlGroup) error {
	for name, attr := range g.Attributes {
		v, err := fromYAMLValue(attr)
		if err != nil {
			return utils.WrapPathError("attribute", name, err)
		}
		n.attrs[name] = v
	}
	for name, ds := range g.Datasets {
		if _, dup := g.Groups[name]; dup {
			return fmt.Errorf("%q is both a group and a dataset", name)
		}
		v, err := fromYAMLValue(ds)
		if err != nil {
			return utils.WrapPathError("dataset", name, err)
		}
		child := newDatasetNode(v, ds.Chunked)
		for attrName, attr := range ds.Attributes {
			av, err := fromYAMLValue(attr)
			if err != nil {
				return utils.WrapPathError("attribute", name+"@"+attrName, err)
			}
			child.attrs[attrName] = av
		}
		n.children[name] = child
	}
	for name, sub := range g.Groups {
		child := newGroupNode()
		if err := fillGroup(child, sub); err != nil {
			return utils.WrapPathError("group", name, err)
		}
		n.children[name] = child
	}
	return nil
}

func fromYAMLValue(y yamlValue) (value, error) {
	switch {
	case y.Text != nil && y.Numeric != nil:
		return value{}, fmt.Errorf("value has both text and numeric payloads")
	case y.Numeric != nil:
		return value{numbers: slices.Clone(*y.Numeric), numeric: true}, nil
	case y.Text != nil:
		return value{text: slices.Clone(*y.Text)}, nil
	default:
		return value{text: []string{}}, nil
	}
}

func toYAMLValue(v value) yamlValue {
	if v.numeric {
		numbers := slices.Clone(v.numbers)
		if numbers == nil {
			numbers = []float64{}
		}
		return yamlValue{Numeric: &numbers}
	}
	text := slices.Clone(v.text)
	if text == nil {
		text = []string{}
	}
	return yamlValue{Text: &text}
}

func toYAMLAttributes(attrs map[string]value) map[string]yamlValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]yamlValue, len(attrs))
	for name, v := range attrs {
		out[name] = toYAMLValue(v)
	}
	return out
}

func toYAMLGroup(n *node) yamlGroup {
	g := yamlGroup{Attributes: toYAMLAttributes(n.attrs)}
	for name, child := range n.children {
		if child.group {
			if g.Groups == nil {
				g.Groups = make(map[string]yamlGroup)
			}
			g.Groups[name] = toYAMLGroup(child)
			continue
		}
		if g.Datasets == nil {
			g.Datasets = make(map[string]yamlValue)
		}
		ds := toYAMLValue(child.data)
		ds.Chunked = child.chunked
		ds.Attributes = toYAMLAttributes(child.attrs)
		g.Datasets[name] = ds
	}
	return g
}

// DumpYAML writes the container as a YAML snapshot that LoadYAML accepts.
// Map keys are emitted in sorted order, so dumps are deterministic.
func (s *Store) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLGroup(s.root)); err != nil {
		return utils.WrapError("yaml encode failed", err)
	}
	return enc.Close()
}
