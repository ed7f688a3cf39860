// Package archive opens the ZIP archive recovered from a .ushay container and
// classifies its entries.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ushay-etl/internal/domain"
)

var reservedNames = map[string]bool{
	domain.MetadataEntryName: true,
	domain.InfoEntryName:     true,
	domain.CrestEntryName:    true,
}

// Archive is an opened, structurally valid ZIP archive held in memory.
type Archive struct {
	zr     *zip.Reader
	names  []string
	byName map[string]*zip.File
}

// Open parses data, which must start at an archive signature. It fails when
// the bytes are truncated or the central directory is corrupt.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		return nil, err
	}

	a := &Archive{
		zr:     zr,
		names:  make([]string, 0, len(zr.File)),
		byName: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		a.names = append(a.names, f.Name)
		// duplicate names: the last one listed wins
		a.byName[f.Name] = f
	}
	return a, nil
}

// Entries returns entry names in central directory order.
func (a *Archive) Entries() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Has reports whether name is listed in the archive.
func (a *Archive) Has(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// ReadEntry returns the decompressed content of name.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	f, ok := a.byName[name]
	if !ok {
		return nil, &domain.MissingEntryError{Name: name}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Entry reads name into an ArchiveEntry.
func (a *Archive) Entry(name string) (domain.ArchiveEntry, error) {
	data, err := a.ReadEntry(name)
	if err != nil {
		return domain.ArchiveEntry{}, err
	}
	return domain.ArchiveEntry{Name: name, RawBytes: data}, nil
}

// Attachments returns every name that is not one of the reserved primary
// entries, compared case-insensitively. Order is preserved.
func Attachments(names []string) []string {
	var out []string
	for _, n := range names {
		if reservedNames[strings.ToLower(n)] {
			continue
		}
		out = append(out, n)
	}
	return out
}

// FindPrimaryDocument returns the first name that looks like the technical
// specifications document: it mentions "pli" or "tecnicas" and is a .pdf or
// .doc file. The match is deliberately loose; issuers name this file freely.
func FindPrimaryDocument(names []string) (string, bool) {
	for _, n := range names {
		lower := strings.ToLower(n)
		if !strings.Contains(lower, "pli") && !strings.Contains(lower, "tecnicas") {
			continue
		}
		if strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".doc") {
			return n, true
		}
	}
	return "", false
}

// Contents builds the contents index rows for a container.
func Contents(containerFile string, names []string) []domain.ContentsEntry {
	out := make([]domain.ContentsEntry, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ContentsEntry{ContainerFile: containerFile, EntryName: n})
	}
	return out
}

// Dump writes every file entry into dir using only the entry's base name, so
// archive paths can never escape dir. It returns the written paths.
func (a *Archive) Dump(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for _, name := range a.names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		base := path.Base(strings.ReplaceAll(name, "\\", "/"))
		if base == "." || base == "/" || base == ".." {
			continue
		}
		data, err := a.ReadEntry(name)
		if err != nil {
			return written, err
		}
		target := filepath.Join(dir, base)
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
