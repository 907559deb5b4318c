package script

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
)

// Archive is a directory that receives scripts taken out of (or backed up
// from) the versions directory. Every change reseals its archive.sum.
type Archive struct {
	dir string
}

// OpenArchive returns the archive rooted at dir, creating it when missing.
func OpenArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return nil, errors.Wrapf(err, "failed to create archive directory: %s", dir)
	}

	return &Archive{dir: dir}, nil
}

// Dir returns the archive directory.
func (a *Archive) Dir() string { return a.dir }

// Move relocates the file at path into the archive and returns its new path.
func (a *Archive) Move(path string) (string, error) {
	dest := filepath.Join(a.dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", errors.Wrapf(err, "failed to archive %s", path)
	}

	slog.Debug("Archived script", "from", path, "to", dest)
	return dest, a.Seal()
}

// Copy stores a copy of the file at path in the archive, replacing any
// earlier copy with the same name, and returns the copy's path.
func (a *Archive) Copy(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = src.Close() }()

	dest := filepath.Join(a.dir, filepath.Base(path))
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.ModeFile)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dest)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", errors.Wrapf(err, "failed to copy %s", path)
	}

	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", dest)
	}

	slog.Debug("Backed up script", "from", path, "to", dest)
	return dest, a.Seal()
}

// Sum computes the sum of the scripts currently in the archive.
func (a *Archive) Sum() (*SumFile, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read archive: %s", a.dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".py") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	sum := NewSumFile()
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(a.dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read archived script: %s", name)
		}

		sum.Add(name, content)
	}

	return sum, nil
}

// Seal rewrites archive.sum from the archive's current content.
func (a *Archive) Seal() error {
	sum, err := a.Sum()
	if err != nil {
		return err
	}

	path := filepath.Join(a.dir, consts.ArchiveSumFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.ModeFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create sum file: %s", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := sum.WriteTo(f); err != nil {
		return errors.Wrapf(err, "failed to write sum file: %s", path)
	}

	return nil
}

// Verify reports whether archive.sum matches the archive's content. A
// missing sum file only verifies an empty archive.
func (a *Archive) Verify() (bool, error) {
	current, err := a.Sum()
	if err != nil {
		return false, err
	}

	f, err := os.Open(filepath.Join(a.dir, consts.ArchiveSumFile))
	if os.IsNotExist(err) {
		return len(current.Names()) == 0, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to open sum file")
	}
	defer func() { _ = f.Close() }()

	recorded, err := ReadSumFile(f)
	if err != nil {
		return false, err
	}

	return current.Equal(recorded), nil
}
