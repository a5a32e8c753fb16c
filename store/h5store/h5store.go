// Package h5store exposes an HDF5 file as a read-only hierarchical container.
//
// It is built on the pure Go reader of github.com/scigolib/hdf5: groups are
// resolved by walking Group.Children from the root, text datasets are read
// with Dataset.ReadStrings and numeric ones with Dataset.Read.
package h5store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/scigolib/hdf5"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// Store is an open HDF5 file.
type Store struct {
	file *hdf5.File
	open int
}

var (
	_ store.Reader = (*Store)(nil)
	_ store.Group  = (*group)(nil)
)

// Open opens an HDF5 file for reading.
func Open(filename string) (*Store, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, utils.WrapError("hdf5 open failed", err)
	}
	return &Store{file: f}, nil
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// OpenHandles returns the number of group handles acquired and not yet closed.
func (s *Store) OpenHandles() int {
	return s.open
}

// lookup walks from the root group to the object at an absolute path.
func (s *Store) lookup(p string) (hdf5.Object, error) {
	if s.file == nil {
		return nil, store.ErrClosed
	}
	var obj hdf5.Object = s.file.Root()
	for _, part := range store.SplitPath(p) {
		g, ok := obj.(*hdf5.Group)
		if !ok {
			return nil, store.ErrNotFound
		}
		obj = nil
		for _, child := range g.Children() {
			if child.Name() == part {
				obj = child
				break
			}
		}
		if obj == nil {
			return nil, store.ErrNotFound
		}
	}
	return obj, nil
}

func (s *Store) lookupGroup(p string) (*hdf5.Group, error) {
	obj, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	g, ok := obj.(*hdf5.Group)
	if !ok {
		return nil, store.ErrNotGroup
	}
	return g, nil
}

func (s *Store) lookupDataset(p string) (*hdf5.Dataset, error) {
	obj, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	d, ok := obj.(*hdf5.Dataset)
	if !ok {
		return nil, store.ErrNotFound
	}
	return d, nil
}

func (s *Store) groupExists(p string) bool {
	_, err := s.lookupGroup(p)
	return err == nil
}

func (s *Store) datasetExists(p string) bool {
	_, err := s.lookupDataset(p)
	return err == nil
}

func (s *Store) listGroups(p string) ([]string, error) {
	g, err := s.lookupGroup(p)
	if err != nil {
		return nil, utils.WrapPathError("list groups", p, err)
	}
	var names []string
	for _, child := range g.Children() {
		if _, ok := child.(*hdf5.Group); ok {
			names = append(names, child.Name())
		}
	}
	return names, nil
}

func (s *Store) listMembers(p string) ([]string, error) {
	g, err := s.lookupGroup(p)
	if err != nil {
		return nil, utils.WrapPathError("list members", p, err)
	}
	children := g.Children()
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name())
	}
	return names, nil
}

func (s *Store) loadText(p string) ([]string, error) {
	d, err := s.lookupDataset(p)
	if err != nil {
		return nil, utils.WrapPathError("load text dataset", p, err)
	}
	values, err := d.ReadStrings()
	if err != nil {
		return nil, utils.WrapPathError("load text dataset", p, textError(err))
	}
	return values, nil
}

func (s *Store) loadNumeric(p string) ([]float64, error) {
	d, err := s.lookupDataset(p)
	if err != nil {
		return nil, utils.WrapPathError("load numeric dataset", p, err)
	}
	values, err := d.Read()
	if err != nil {
		return nil, utils.WrapPathError("load numeric dataset", p, fmt.Errorf("%w: %v", store.ErrNotNumeric, err))
	}
	return values, nil
}

// attributeNames returns the attribute names of the object at p in storage order.
func (s *Store) attributeNames(p string) ([]string, error) {
	obj, err := s.lookup(p)
	if err != nil {
		return nil, utils.WrapPathError("list attributes", p, err)
	}
	var names []string
	switch o := obj.(type) {
	case *hdf5.Group:
		attrs, err := o.Attributes()
		if err != nil {
			return nil, utils.WrapPathError("list attributes", p, err)
		}
		for _, attr := range attrs {
			names = append(names, attr.Name)
		}
	case *hdf5.Dataset:
		names, err = o.ListAttributes()
		if err != nil {
			return nil, utils.WrapPathError("list attributes", p, err)
		}
	}
	return names, nil
}

// attributeValue finds the attribute name on the object at p and decodes it.
// Datasets are read through Dataset.ReadAttribute. Groups have no such
// method, so their attribute messages are searched directly.
func (s *Store) attributeValue(p, name string) (interface{}, error) {
	obj, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *hdf5.Dataset:
		names, err := o.ListAttributes()
		if err != nil {
			return nil, err
		}
		if !slices.Contains(names, name) {
			return nil, store.ErrNotFound
		}
		v, err := o.ReadAttribute(name)
		if err != nil {
			return nil, valueError(err)
		}
		return v, nil
	case *hdf5.Group:
		attrs, err := o.Attributes()
		if err != nil {
			return nil, err
		}
		for _, attr := range attrs {
			if attr.Name != name {
				continue
			}
			if attr.Datatype != nil && attr.Datatype.IsVariableString() {
				return nil, textError(errors.New("variable-length string attribute"))
			}
			v, err := attr.ReadValue()
			if err != nil {
				return nil, valueError(err)
			}
			return v, nil
		}
	}
	return nil, store.ErrNotFound
}

// Fragments of the reader's messages for variable-length values, which it
// cannot decode yet. They come from fmt.Errorf calls without sentinels.
var variableLengthMessages = []string{
	"variable-length",
	"class_9",
	"datatype class 9",
}

func isVariableLength(err error) bool {
	msg := err.Error()
	for _, frag := range variableLengthMessages {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

// textError marks a failed string read as ErrNotText, and additionally as
// ErrUnsupported when the value is a variable-length string.
func textError(err error) error {
	if isVariableLength(err) {
		return fmt.Errorf("%w: %w: %v", store.ErrUnsupported, store.ErrNotText, err)
	}
	return fmt.Errorf("%w: %v", store.ErrNotText, err)
}

// valueError marks a failed attribute decode. Only variable-length values
// get a sentinel; other failures are returned as they are.
func valueError(err error) error {
	if isVariableLength(err) {
		return textError(err)
	}
	return err
}

func (s *Store) loadTextAttribute(p, name string) ([]string, error) {
	v, err := s.attributeValue(p, name)
	if err != nil {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, err)
	}
	switch text := v.(type) {
	case string:
		return []string{text}, nil
	case []string:
		return text, nil
	default:
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotText)
	}
}

func (s *Store) loadNumericAttribute(p, name string) ([]float64, error) {
	v, err := s.attributeValue(p, name)
	if err != nil {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, err)
	}
	values, ok := toFloat64s(v)
	if !ok {
		return nil, utils.WrapPathError("load attribute", p+"@"+name, store.ErrNotNumeric)
	}
	return values, nil
}

// toFloat64s widens the scalar and slice types Attribute.ReadValue yields.
func toFloat64s(v interface{}) ([]float64, bool) {
	switch n := v.(type) {
	case float64:
		return []float64{n}, true
	case float32:
		return []float64{float64(n)}, true
	case int32:
		return []float64{float64(n)}, true
	case int64:
		return []float64{float64(n)}, true
	case []float64:
		return n, true
	case []float32:
		return widen(n), true
	case []int32:
		return widen(n), true
	case []int64:
		return widen(n), true
	default:
		return nil, false
	}
}

func widen[T float32 | int32 | int64](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
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
	return s.attributeNames(store.CleanPath(p))
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

// group is a handle rooted at one group of the file.
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
	return g.s.attributeNames(g.resolve(p))
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
