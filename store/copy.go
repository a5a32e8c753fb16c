package store

import (
	"errors"

	"github.com/scigolib/nwb/internal/utils"
)

// chunkReporter is implemented by containers that track dataset layouts.
type chunkReporter interface {
	IsChunked(path string) bool
}

// Copy replicates every group, dataset and attribute of src into dst.
// Values keep their text or numeric type. The chunked layout is carried over
// when src reports it.
func Copy(dst Writer, src Reader) error {
	return copyGroup(dst, src, "/")
}

func copyGroup(dst Writer, src Reader, p string) error {
	if err := dst.CreateGroup(p); err != nil {
		return utils.WrapPathError("copy group", p, err)
	}
	if err := copyAttributes(dst, src, p); err != nil {
		return err
	}

	members, err := src.ListMembers(p)
	if err != nil {
		return utils.WrapPathError("copy group", p, err)
	}
	for _, name := range members {
		child := JoinPath(p, name)
		if src.GroupExists(child) {
			if err := copyGroup(dst, src, child); err != nil {
				return err
			}
			continue
		}
		if err := copyDataset(dst, src, child); err != nil {
			return err
		}
		if err := copyAttributes(dst, src, child); err != nil {
			return err
		}
	}
	return nil
}

func copyDataset(dst Writer, src Reader, p string) error {
	var opts []WriteOption
	if c, ok := src.(chunkReporter); ok && c.IsChunked(p) {
		opts = append(opts, Chunked())
	}

	text, err := src.LoadTextDataset(p)
	if err == nil {
		return utils.WrapPathError("copy dataset", p, dst.WriteTextDataset(p, text, opts...))
	}
	if !errors.Is(err, ErrNotText) || errors.Is(err, ErrUnsupported) {
		return utils.WrapPathError("copy dataset", p, err)
	}

	numbers, err := src.LoadNumericDataset(p)
	if err != nil {
		return utils.WrapPathError("copy dataset", p, err)
	}
	return utils.WrapPathError("copy dataset", p, dst.WriteNumericDataset(p, numbers, opts...))
}

func copyAttributes(dst Writer, src Reader, p string) error {
	names, err := src.ListAttributes(p)
	if err != nil {
		return utils.WrapPathError("copy attributes", p, err)
	}
	for _, name := range names {
		text, err := src.LoadTextAttribute(p, name)
		if err == nil {
			if err := dst.WriteTextAttribute(p, name, text...); err != nil {
				return utils.WrapPathError("copy attribute", p+"@"+name, err)
			}
			continue
		}
		if !errors.Is(err, ErrNotText) || errors.Is(err, ErrUnsupported) {
			return utils.WrapPathError("copy attribute", p+"@"+name, err)
		}

		numbers, err := src.LoadNumericAttribute(p, name)
		if err != nil {
			return utils.WrapPathError("copy attribute", p+"@"+name, err)
		}
		if err := dst.WriteNumericAttribute(p, name, numbers...); err != nil {
			return utils.WrapPathError("copy attribute", p+"@"+name, err)
		}
	}
	return nil
}
