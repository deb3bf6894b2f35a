// Package packager assembles built wheels into executable zipapps.
package packager

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed main.py
var mainScript []byte

// mainEntry is the entry point Python runs when executing a zip file.
const mainEntry = "__main__.py"

// epoch is the modification time stamped on every entry so identical wheels
// produce identical packages. Zip cannot represent times before 1980.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Zipapp implements ports.Packager by writing a zipapp: a shebang line
// followed by a zip archive holding the wheel's importable files.
type Zipapp struct{}

var _ ports.Packager = (*Zipapp)(nil)

// NewZipapp creates a new Zipapp packager.
func NewZipapp() *Zipapp {
	return &Zipapp{}
}

// Package writes an executable package for wheel to dest.
// The file is written next to dest and renamed into place once complete.
func (z *Zipapp) Package(ctx context.Context, wheel, interpreter, dest string) error {
	rc, err := zip.OpenReader(wheel)
	if err != nil {
		return packagingError(err, "failed to open wheel", wheel)
	}
	defer func() {
		_ = rc.Close()
	}()

	entries, err := collectEntries(rc.File)
	if err != nil {
		return packagingError(err, "invalid wheel", wheel)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return packagingError(err, "failed to create output directory", dest)
	}

	tmp, err := os.CreateTemp(dir, ".wheelwright-*.pyz")
	if err != nil {
		return packagingError(err, "failed to create package file", dest)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := writeArchive(ctx, tmp, shebang(interpreter), entries); err != nil {
		_ = tmp.Close()
		return packagingError(err, "failed to write package", dest)
	}
	if err := tmp.Close(); err != nil {
		return packagingError(err, "failed to close package file", dest)
	}
	if err := os.Chmod(tmpName, domain.ExecutablePerm); err != nil {
		return packagingError(err, "failed to mark package executable", dest)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return packagingError(err, "failed to move package into place", dest)
	}
	return nil
}

// entry is one file copied from the wheel into the package.
type entry struct {
	name string
	file *zip.File
}

// collectEntries maps wheel members to package paths.
//
// Files under <dist>.data/purelib and <dist>.data/platlib belong on sys.path
// and are moved to the archive root; the other .data schemes (scripts,
// headers, data) have no meaning inside a zipapp and are dropped.
func collectEntries(files []*zip.File) ([]entry, error) {
	entries := make([]entry, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		name, ok := installPath(f.Name)
		if !ok {
			continue
		}
		if !filepath.IsLocal(name) {
			return nil, zerr.With(zerr.New("wheel member escapes the archive"), "member", f.Name)
		}
		if name == mainEntry {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, entry{name: name, file: f})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.name, b.name)
	})
	return entries, nil
}

func installPath(member string) (string, bool) {
	first, rest, found := strings.Cut(member, "/")
	if !found || !strings.HasSuffix(first, ".data") {
		return member, true
	}
	scheme, rel, found := strings.Cut(rest, "/")
	if !found || (scheme != "purelib" && scheme != "platlib") {
		return "", false
	}
	return path.Clean(rel), true
}

func writeArchive(ctx context.Context, w io.Writer, header []byte, entries []entry) error {
	if _, err := w.Write(header); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	zw.SetOffset(int64(len(header)))

	if err := writeEntry(zw, mainEntry, bytes.NewReader(mainScript)); err != nil {
		return err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyEntry(zw, e); err != nil {
			return err
		}
	}

	return zw.Close()
}

func copyEntry(zw *zip.Writer, e entry) error {
	src, err := e.file.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read wheel member"), "member", e.file.Name)
	}
	defer func() {
		_ = src.Close()
	}()
	return writeEntry(zw, e.name, src)
}

func writeEntry(zw *zip.Writer, name string, r io.Reader) error {
	fh := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: epoch,
	}
	fh.SetMode(domain.FilePerm)

	dst, err := zw.CreateHeader(fh)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add package member"), "member", name)
	}
	if _, err := io.Copy(dst, r); err != nil { //nolint:gosec // wheel contents are produced by the build
		return zerr.With(zerr.Wrap(err, "failed to write package member"), "member", name)
	}
	return nil
}

// shebang returns the interpreter line for the package. Bare interpreter
// names are resolved through env at run time.
func shebang(interpreter string) []byte {
	if filepath.IsAbs(interpreter) {
		return []byte("#!" + interpreter + "\n")
	}
	return []byte("#!/usr/bin/env " + interpreter + "\n")
}

func packagingError(err error, msg, target string) error {
	wrapped := zerr.Wrap(domain.ErrPackagingFailed, msg+": "+err.Error())
	return zerr.With(wrapped, "path", target)
}
