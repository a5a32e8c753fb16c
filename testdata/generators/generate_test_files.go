//go:build ignore
// +build ignore

// Generates testdata/nwb_v1.h5 from testdata/valid_session.yaml.
//
//	go run testdata/generators/generate_test_files.go
//
// The tree is handed as JSON to write_hdf5.py, which needs only the Python
// standard library. Text is written as fixed-length strings; the hdf5
// reader rejects variable-length ones.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/scigolib/nwb/store"
	"github.com/scigolib/nwb/store/memstore"
)

const (
	source = "testdata/valid_session.yaml"
	target = "testdata/nwb_v1.h5"
	writer = "testdata/generators/write_hdf5.py"
)

// value and group mirror the JSON tree write_hdf5.py reads.
type value struct {
	Text       []string         `json:"text,omitempty"`
	Numeric    []float64        `json:"numeric,omitempty"`
	Attributes map[string]value `json:"attributes,omitempty"`
}

type group struct {
	Attributes map[string]value `json:"attributes,omitempty"`
	Datasets   map[string]value `json:"datasets,omitempty"`
	Groups     map[string]group `json:"groups,omitempty"`
}

func main() {
	s, err := memstore.LoadYAMLFile(source)
	if err != nil {
		log.Fatalf("load %s: %v", source, err)
	}

	tree, err := walk(s, "/")
	if err != nil {
		log.Fatalf("walk %s: %v", source, err)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(tree); err != nil {
		log.Fatalf("encode tree: %v", err)
	}

	cmd := exec.Command("python3", writer, target)
	cmd.Stdin = &buf
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Fatalf("python3 %s: %v", writer, err)
	}
	fmt.Printf("wrote %s\n", target)
}

func walk(s *memstore.Store, p string) (group, error) {
	g := group{Datasets: map[string]value{}, Groups: map[string]group{}}
	attrs, err := attributes(s, p)
	if err != nil {
		return g, err
	}
	g.Attributes = attrs

	members, err := s.ListMembers(p)
	if err != nil {
		return g, err
	}
	for _, name := range members {
		child := store.JoinPath(p, name)
		if s.GroupExists(child) {
			if g.Groups[name], err = walk(s, child); err != nil {
				return g, err
			}
			continue
		}

		var v value
		text, err := s.LoadTextDataset(child)
		switch {
		case err == nil:
			v.Text = text
		case errors.Is(err, store.ErrNotText):
			if v.Numeric, err = s.LoadNumericDataset(child); err != nil {
				return g, err
			}
		default:
			return g, err
		}
		if v.Attributes, err = attributes(s, child); err != nil {
			return g, err
		}
		g.Datasets[name] = v
	}
	return g, nil
}

func attributes(s *memstore.Store, p string) (map[string]value, error) {
	names, err := s.ListAttributes(p)
	if err != nil {
		return nil, err
	}
	out := make(map[string]value, len(names))
	for _, name := range names {
		text, err := s.LoadTextAttribute(p, name)
		switch {
		case err == nil:
			out[name] = value{Text: text}
		case errors.Is(err, store.ErrNotText):
			numeric, err := s.LoadNumericAttribute(p, name)
			if err != nil {
				return nil, err
			}
			out[name] = value{Numeric: numeric}
		default:
			return nil, err
		}
	}
	return out, nil
}
