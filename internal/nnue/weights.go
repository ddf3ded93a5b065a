package nnue

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/danielpang35/rustychess/internal/board"
)

var magicBytes = [4]byte{'N', 'N', 'U', 'E'}

const fileVersion = 2

// LoadWeights reads a network from filename in the little-endian NNUE
// weights format described by the file format documentation, including the
// optional fast head detected by remaining byte length.
func (n *Network) LoadWeights(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read weights file: %w", err)
	}
	return n.Load(bytes.NewReader(data))
}

// SaveWeights writes the network to filename in the NNUE weights format.
func (n *Network) SaveWeights(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()
	return n.Save(f)
}

// Load reads a network from r, failing with an error on bad magic, bad
// version, or unexpected dimensions.
func (n *Network) Load(r *bytes.Reader) error {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	if magic != magicBytes {
		return fmt.Errorf("invalid data: bad magic %q", magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	if version != fileVersion {
		return fmt.Errorf("invalid data: unsupported version %d", version)
	}

	var numFeat, hidden, h1, h2 uint32
	for _, p := range []*uint32{&numFeat, &hidden, &h1, &h2} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
	}
	if numFeat != NumFeatures || hidden != board.NNUEHiddenSize || h1 != 32 || h2 != 32 {
		return fmt.Errorf("invalid data: unexpected dimensions %d/%d/%d/%d", numFeat, hidden, h1, h2)
	}
	n.NumFeat, n.Hidden, n.H1, n.H2 = int32(numFeat), int32(hidden), int32(h1), int32(h2)

	for _, p := range []*int32{&n.ScaleEmb, &n.ScaleFC1, &n.ScaleFC2, &n.ScaleOut} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
	}

	n.Emb = make([]int16, int(numFeat)*int(hidden))
	n.B1 = make([]int32, hidden)
	n.FC1W = make([]int16, int(h1)*int(2*hidden))
	n.FC1B = make([]int32, h1)
	n.FC2W = make([]int16, int(h2)*int(h1))
	n.FC2B = make([]int32, h2)
	n.OutW = make([]int16, h2)

	for _, block := range []any{n.Emb, n.B1, n.FC1W, n.FC1B, n.FC2W, n.FC2B, n.OutW} {
		if err := binary.Read(r, binary.LittleEndian, block); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &n.OutB); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}

	n.HasFastHead = r.Len() > 0
	if n.HasFastHead {
		if err := binary.Read(r, binary.LittleEndian, &n.ScaleFastOut); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
		n.FastOutW = make([]int16, 2*hidden)
		if err := binary.Read(r, binary.LittleEndian, n.FastOutW); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &n.FastOutB); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
	}

	return nil
}

// Save writes the network to w in the NNUE weights format.
func (n *Network) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, magicBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(fileVersion)); err != nil {
		return err
	}
	dims := []uint32{uint32(n.NumFeat), uint32(n.Hidden), uint32(n.H1), uint32(n.H2)}
	for _, d := range dims {
		if err := binary.Write(w, binary.LittleEndian, d); err != nil {
			return err
		}
	}
	scales := []int32{n.ScaleEmb, n.ScaleFC1, n.ScaleFC2, n.ScaleOut}
	for _, s := range scales {
		if err := binary.Write(w, binary.LittleEndian, s); err != nil {
			return err
		}
	}
	for _, block := range []any{n.Emb, n.B1, n.FC1W, n.FC1B, n.FC2W, n.FC2B, n.OutW} {
		if err := binary.Write(w, binary.LittleEndian, block); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, n.OutB); err != nil {
		return err
	}
	if n.HasFastHead {
		if err := binary.Write(w, binary.LittleEndian, n.ScaleFastOut); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, n.FastOutW); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, n.FastOutB); err != nil {
			return err
		}
	}
	return nil
}
