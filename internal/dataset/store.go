// Package dataset persists named datasets as flat tensor files. Each
// array lives in its own <name>.t64 file: a single text header line
// ("t64" followed by the dimensions) and a little-endian float64
// payload.
package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"batchfeed/internal/feed"
	"batchfeed/internal/tensor"
)

const fileMagic = "t64"

// Load reads every tensor file under root into a NamedData keyed by
// file base name. Duplicate names across subdirectories are an error.
func Load(root string) (feed.NamedData, error) {
	paths, err := Discover(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no tensor files under %s", root)
	}
	data := make(feed.NamedData, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, ok := data[name]; ok {
			return nil, errors.Errorf("duplicate array name %s under %s", name, root)
		}
		arr, err := ReadTensor(path)
		if err != nil {
			return nil, err
		}
		data[name] = arr
	}
	return data, nil
}

// Save writes each named array to <root>/<name>.t64, creating root if
// needed.
func Save(root string, data feed.NamedData) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return errors.Wrap(err, "create dataset dir")
	}
	for _, name := range data.Names() {
		path := filepath.Join(root, name+".t64")
		if err := WriteTensor(path, data[name]); err != nil {
			return err
		}
	}
	return nil
}

// ReadTensor decodes a single tensor file.
func ReadTensor(path string) (*tensor.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open tensor file")
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", path)
	}
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != fileMagic {
		return nil, errors.Errorf("%s: malformed header %q", path, strings.TrimSpace(header))
	}
	shape := make([]int, 0, len(fields)-1)
	size := 1
	for _, field := range fields[1:] {
		dim, err := strconv.Atoi(field)
		if err != nil || dim < 0 {
			return nil, errors.Errorf("%s: bad dimension %q", path, field)
		}
		shape = append(shape, dim)
		size *= dim
	}
	data := make([]float64, size)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, errors.Wrapf(err, "read payload of %s", path)
	}
	if _, err := r.ReadByte(); err == nil {
		return nil, errors.Errorf("%s: trailing data after %d elements", path, size)
	}
	return tensor.FromData(data, shape...), nil
}

// WriteTensor encodes a single tensor file.
func WriteTensor(path string, t *tensor.Tensor) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create tensor file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dims := make([]string, 0, t.Dims())
	for _, dim := range t.Shape() {
		dims = append(dims, strconv.Itoa(dim))
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", fileMagic, strings.Join(dims, " ")); err != nil {
		return errors.Wrapf(err, "write header of %s", path)
	}
	if err := binary.Write(w, binary.LittleEndian, t.Data()); err != nil {
		return errors.Wrapf(err, "write payload of %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return f.Close()
}
