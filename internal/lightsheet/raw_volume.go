package lightsheet

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// SaveRawVolume writes N0, N1, N2 as little-endian int32 followed by the
// voxels as little-endian float64 in (y, x, z) order.
func SaveRawVolume(v *optics.Volume, path string) error {
	if v.N0 < 0 || v.N1 < 0 || v.N2 < 0 {
		return fmt.Errorf("negative dimensions: %v", v.Dims())
	}
	exp64 := int64(v.N0) * int64(v.N1) * int64(v.N2)
	if int64(len(v.Data)) != exp64 {
		return fmt.Errorf("data length mismatch: got %d, expected %d (N0*N1*N2)", len(v.Data), exp64)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, d := range v.Dims() {
		if err := binary.Write(w, binary.LittleEndian, int32(d)); err != nil {
			return err
		}
	}
	if exp64 > 0 {
		if err := binary.Write(w, binary.LittleEndian, v.Data); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadRawVolume reads a file written by SaveRawVolume.
func LoadRawVolume(path string) (*optics.Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var dims [3]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("raw header: %w", err)
	}
	if dims[0] < 0 || dims[1] < 0 || dims[2] < 0 {
		return nil, fmt.Errorf("raw header: negative dimensions %v", dims)
	}
	v := optics.NewVolume(int(dims[0]), int(dims[1]), int(dims[2]))
	if err := binary.Read(r, binary.LittleEndian, v.Data); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, fmt.Errorf("raw body truncated: %w", err)
		}
		return nil, err
	}
	return v, nil
}
