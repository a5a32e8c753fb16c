// Package memstore implements an in-memory hierarchical container.
//
// It backs the writer path (a session is assembled in memory and can be
// dumped as YAML) and serves as the container for tests and fixtures.
// A Store is not safe for concurrent use.
package memstore

import (
	"errors"
	"fmt"
	"slices"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// value is a typed payload of a dataset or an attribute.
type value struct {
	text    []string
	numbers []float64
	numeric bool
}

// node is a group or a dataset in the tree.
type node struct {
	group    bool
	children map[string]*node
	attrs    map[string]value
	data     value
	chunked  bool
}

func newGroupNode() *node {
	return &node{
		group:    true,
		children: make(map[string]*node),
		attrs:    make(map[string]value),
	}
}

func newDatasetNode(v value, chunked bool) *node {
	return &node{
		attrs:   make(map[string]value),
		data:    v,
		chunked: chunked,
	}
}

func (n *node) sortedChildren() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Store is an in-memory container.
type Store struct {
	root   *node
	open   int
	closed bool
}

var (
	_ store.ReadWriter = (*Store)(nil)
	_ store.Group      = (*group)(nil)
)

// New returns an empty container holding only the root group.
func New() *Store {
	return &Store{root: newGroupNode()}
}

// Close releases the container. Further operations fail with store.ErrClosed.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

// OpenHandles returns the number of group handles acquired and not yet closed.
func (s *Store) OpenHandles() int {
	return s.open
}

// lookup resolves an absolute path.
func (s *Store) lookup(p string) (*node, error) {
	if s.closed {
		return nil, store.ErrClosed
	}
	n := s.root
	for _, part := range store.SplitPath(p) {
		if !n.group {
			return nil, store.ErrNotFound
		}
		child, ok := n.children[part]
		if !ok {
			return nil, store.ErrNotFound
		}
		n = child
	}
	return n, nil
}

func (s *Store) lookupGroup(p string) (*node, error) {
	n, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	if !n.group {
		return nil, store.ErrNotGroup
	}
	return n, nil
}

func (s *Store) groupExists(p string) bool {
	n, err := s.lookup(p)
	return err == nil && n.group
}

func (s *Store) datasetExists(p string) bool {
	n, err := s.lookup(p)
	return err == nil && !n.group
}

func (s *Store) listGroups(p string) ([]string, error) {
	n, err := s.lookupGroup(p)
	if err != nil {
		return nil, utils.WrapPathError("list groups", p, err)
	}
	var names []string
	for _, name := range n.sortedChildren() {
		if n.children[name].group {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Store) listMembers(p string) ([]string, error) {
	n, err := s.lookupGroup(p)
	if err != nil {
		return nil, utils.WrapPathError("list members", p, err)
	}
	return n.sortedChildren(), nil
}

func (s *Store) dataset(p string) (*node, error) {
	n, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	if n.group {
		return nil, store.ErrNotFound
	}
	return n, nil
}

func (s *Store) loadText(p string) ([]string, error) {
	n, err := s.dataset(p)
	if err != nil {
		return nil, utils.WrapPathError("load text dataset", p, err)
	}
	if n.data.numeric {
		return nil, utils.WrapPathError("load text dataset", p, store.ErrNotText)
	}
	return slices.Clone(n.data.text), nil
}

func (s *Store) loadNumeric(p string) ([]float64, error) {
	n, err := s.dataset(p)
	if err != nil {
		return nil, utils.WrapPathError("load numeric dataset", p, err)
	}
	if !n.data.numeric {
		return nil, utils.WrapPathError("load numeric dataset", p, store.ErrNotNumeric)
	}
	return slices.Clone(n.data.numbers), nil
}

func (s *Store) listAttributes(p string) ([]string, error) {
	n, err := s.lookup(p)
	if err != nil {
		return nil, utils.WrapPathError("list attributes", p, err)
	}
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) loadTextAttribute(p, name string) ([]string, error) {
	n, err := s.lookup(p)
	if err != nil {
		return nil, utils.WrapPathError("load attribute", p, err)
	}
	attr, ok := n.attrs[name]
	if !ok {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotFound)
	}
	if attr.numeric {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotText)
	}
	return slices.Clone(attr.text), nil
}

func (s *Store) loadNumericAttribute(p, name string) ([]float64, error) {
	n, err := s.lookup(p)
	if err != nil {
		return nil, utils.WrapPathError("load attribute", p, err)
	}
	attr, ok := n.attrs[name]
	if !ok {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotFound)
	}
	if !attr.numeric {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotNumeric)
	}
	return slices.Clone(attr.numbers), nil
}

func (s *Store) openGroup(p string) (store.Group, error) {
	if _, err := s.lookupGroup(p); err != nil {
		return nil, utils.WrapPathError("open group", p, err)
	}
	s.open++
	return &group{s: s, path: p}, nil
}

// GroupExists implements store.Reader.
func (s *Store) GroupExists(p string) bool { return s.groupExists(store.CleanPath(p)) }

// DatasetExists implements store.Reader.
func (s *Store) DatasetExists(p string) bool { return s.datasetExists(store.CleanPath(p)) }

// ListGroups implements store.Reader.
func (s *Store) ListGroups(p string) ([]string, error) { return s.listGroups(store.CleanPath(p)) }

// ListMembers implements store.Reader.
func (s *Store) ListMembers(p string) ([]string, error) { return s.listMembers(store.CleanPath(p)) }

// LoadTextDataset implements store.Reader.
func (s *Store) LoadTextDataset(p string) ([]string, error) { return s.loadText(store.CleanPath(p)) }

// LoadNumericDataset implements store.Reader.
func (s *Store) LoadNumericDataset(p string) ([]float64, error) {
	return s.loadNumeric(store.CleanPath(p))
}

// ListAttributes implements store.Reader.
func (s *Store) ListAttributes(p string) ([]string, error) {
	return s.listAttributes(store.CleanPath(p))
}

// LoadTextAttribute implements store.Reader.
func (s *Store) LoadTextAttribute(p, name string) ([]string, error) {
	return s.loadTextAttribute(store.CleanPath(p), name)
}

// LoadNumericAttribute implements store.Reader.
func (s *Store) LoadNumericAttribute(p, name string) ([]float64, error) {
	return s.loadNumericAttribute(store.CleanPath(p), name)
}

// OpenGroup implements store.Reader.
func (s *Store) OpenGroup(p string) (store.Group, error) { return s.openGroup(store.CleanPath(p)) }

// CreateGroup implements store.Writer.
func (s *Store) CreateGroup(p string) error {
	_, err := s.mkdirAll(store.CleanPath(p))
	return err
}

func (s *Store) mkdirAll(p string) (*node, error) {
	if s.closed {
		return nil, store.ErrClosed
	}
	n := s.root
	for _, part := range store.SplitPath(p) {
		child, ok := n.children[part]
		if !ok {
			child = newGroupNode()
			n.children[part] = child
		}
		if !child.group {
			return nil, utils.WrapPathError("create group", p, store.ErrExists)
		}
		n = child
	}
	return n, nil
}

func (s *Store) putDataset(p string, v value, cfg store.WriteConfig) error {
	p = store.CleanPath(p)
	if p == "/" {
		return utils.WrapPathError("write dataset", p, store.ErrExists)
	}
	parent, err := s.mkdirAll(store.Dir(p))
	if err != nil {
		return err
	}
	name := store.Base(p)
	if existing, ok := parent.children[name]; ok && existing.group {
		return utils.WrapPathError("write dataset", p, store.ErrExists)
	}
	parent.children[name] = newDatasetNode(v, cfg.Chunked)
	return nil
}

// WriteTextDataset implements store.Writer.
func (s *Store) WriteTextDataset(p string, values []string, opts ...store.WriteOption) error {
	return s.putDataset(p, value{text: slices.Clone(values)}, store.ApplyWriteOptions(opts...))
}

// WriteNumericDataset implements store.Writer.
func (s *Store) WriteNumericDataset(p string, values []float64, opts ...store.WriteOption) error {
	return s.putDataset(p, value{numbers: slices.Clone(values), numeric: true}, store.ApplyWriteOptions(opts...))
}

// AppendTextDataset implements store.Writer. Appending to a dataset that was
// not written chunked fails, mirroring fixed-size HDF5 layouts.
func (s *Store) AppendTextDataset(p string, values ...string) error {
	p = store.CleanPath(p)
	n, err := s.lookup(p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.putDataset(p, value{text: slices.Clone(values)}, store.WriteConfig{Chunked: true})
		}
		return utils.WrapPathError("append dataset", p, err)
	}
	switch {
	case n.group:
		return utils.WrapPathError("append dataset", p, store.ErrExists)
	case n.data.numeric:
		return utils.WrapPathError("append dataset", p, store.ErrNotText)
	case !n.chunked:
		return utils.WrapPathError("append dataset", p, fmt.Errorf("dataset is not chunked"))
	}
	n.data.text = append(n.data.text, values...)
	return nil
}

func (s *Store) putAttribute(p, name string, v value) error {
	p = store.CleanPath(p)
	n, err := s.lookup(p)
	if err != nil {
		return utils.WrapPathError("write attribute", p, err)
	}
	n.attrs[name] = v
	return nil
}

// WriteTextAttribute implements store.Writer.
func (s *Store) WriteTextAttribute(p, name string, values ...string) error {
	return s.putAttribute(p, name, value{text: slices.Clone(values)})
}

// WriteNumericAttribute implements store.Writer.
func (s *Store) WriteNumericAttribute(p, name string, values ...float64) error {
	return s.putAttribute(p, name, value{numbers: slices.Clone(values), numeric: true})
}

// IsChunked reports whether the dataset at p was written with store.Chunked.
func (s *Store) IsChunked(p string) bool {
	n, err := s.dataset(store.CleanPath(p))
	return err == nil && n.chunked
}

// group is a handle rooted at one group of a Store.
type group struct {
	s      *Store
	path   string
	closed bool
}

func (g *group) resolve(p string) string { return store.JoinPath(g.path, p) }

func (g *group) Path() string { return g.path }

func (g *group) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.s.open--
	return nil
}

func (g *group) GroupExists(p string) bool {
	return !g.closed && g.s.groupExists(g.resolve(p))
}

func (g *group) DatasetExists(p string) bool {
	return !g.closed && g.s.datasetExists(g.resolve(p))
}

func (g *group) ListGroups(p string) ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.listGroups(g.resolve(p))
}

func (g *group) ListMembers(p string) ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.listMembers(g.resolve(p))
}

func (g *group) LoadTextDataset(p string) ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.loadText(g.resolve(p))
}

func (g *group) LoadNumericDataset(p string) ([]float64, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.loadNumeric(g.resolve(p))
}

func (g *group) ListAttributes(p string) ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.listAttributes(g.resolve(p))
}

func (g *group) LoadTextAttribute(p, name string) ([]string, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.loadTextAttribute(g.resolve(p), name)
}

func (g *group) LoadNumericAttribute(p, name string) ([]float64, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.loadNumericAttribute(g.resolve(p), name)
}

func (g *group) OpenGroup(p string) (store.Group, error) {
	if g.closed {
		return nil, store.ErrClosed
	}
	return g.s.openGroup(g.resolve(p))
}
