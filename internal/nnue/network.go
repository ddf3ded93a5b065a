package nnue

import (
	"math"

	"github.com/danielpang35/rustychess/internal/board"
)

// Network holds a quantized NNUE evaluator: emb -> acc -> fc1 -> fc2 -> out,
// with an optional single-layer fast head over the raw accumulators.
type Network struct {
	NumFeat int32
	Hidden  int32 // 256
	H1      int32 // 32
	H2      int32 // 32

	ScaleEmb int32
	ScaleFC1 int32
	ScaleFC2 int32
	ScaleOut int32

	Emb []int16 // NumFeat x Hidden, row-major by feature index
	B1  []int32 // Hidden

	FC1W []int16 // H1 x (2*Hidden)
	FC1B []int32 // H1

	FC2W []int16 // H2 x H1
	FC2B []int32 // H2

	OutW []int16 // H2
	OutB int32

	HasFastHead  bool
	ScaleFastOut int32
	FastOutW     []int16 // 2*Hidden
	FastOutB     int32
}

// NewNetwork allocates a zeroed network of the standard 256/32/32 shape.
func NewNetwork() *Network {
	n := &Network{
		NumFeat:  NumFeatures,
		Hidden:   int32(board.NNUEHiddenSize),
		H1:       32,
		H2:       32,
		ScaleEmb: 64,
		ScaleFC1: 64,
		ScaleFC2: 64,
		ScaleOut: 64,
	}
	n.Emb = make([]int16, int(n.NumFeat)*int(n.Hidden))
	n.B1 = make([]int32, n.Hidden)
	n.FC1W = make([]int16, int(n.H1)*int(2*n.Hidden))
	n.FC1B = make([]int32, n.H1)
	n.FC2W = make([]int16, int(n.H2)*int(n.H1))
	n.FC2B = make([]int32, n.H2)
	n.OutW = make([]int16, n.H2)
	return n
}

func clippedReLU(x int32, scale int32) int32 {
	hi := 127 * scale
	if x < 0 {
		return 0
	}
	if x > hi {
		return hi
	}
	return x
}

// roundHalfAwayFromZero implements the rounding rule the forward pass uses
// to convert the raw network output to centipawns.
func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(math.Floor(x + 0.5))
	}
	return -int(math.Floor(-x + 0.5))
}

// Forward runs the network given the side-to-move and not-side-to-move
// accumulators, returning a centipawn score from stm's perspective.
func (n *Network) Forward(stm, nstm board.Accumulator) int {
	hidden := int(n.Hidden)
	act := make([]int32, 2*hidden)
	for i := 0; i < hidden; i++ {
		act[i] = clippedReLU(stm[i], n.ScaleEmb)
		act[hidden+i] = clippedReLU(nstm[i], n.ScaleEmb)
	}

	if n.HasFastHead {
		sum := int64(n.FastOutB)
		for i, a := range act {
			sum += int64(a) * int64(n.FastOutW[i])
		}
		return roundHalfAwayFromZero(float64(sum*1200) / float64(int64(n.ScaleEmb)*int64(n.ScaleFastOut)))
	}

	h1 := int(n.H1)
	fc1Out := make([]int32, h1)
	for i := 0; i < h1; i++ {
		row := n.FC1W[i*2*hidden : (i+1)*2*hidden]
		var sum int64
		for j, a := range act {
			sum += int64(a) * int64(row[j])
		}
		sum += int64(n.FC1B[i])
		fc1Out[i] = clippedReLU(int32(sum/int64(n.ScaleFC1)), n.ScaleFC1)
	}

	h2 := int(n.H2)
	fc2Out := make([]int32, h2)
	for i := 0; i < h2; i++ {
		row := n.FC2W[i*h1 : (i+1)*h1]
		var sum int64
		for j, a := range fc1Out {
			sum += int64(a) * int64(row[j])
		}
		sum += int64(n.FC2B[i])
		fc2Out[i] = clippedReLU(int32(sum/int64(n.ScaleFC2)), n.ScaleFC2)
	}

	sum := int64(n.OutB)
	for i, a := range fc2Out {
		sum += int64(a) * int64(n.OutW[i])
	}
	return roundHalfAwayFromZero(float64(sum*1200) / float64(int64(n.ScaleEmb)*int64(n.ScaleOut)))
}

// InitRandom fills the network with small deterministic weights, for tests
// that need a network without a weights file.
func (n *Network) InitRandom(seed int64) {
	state := uint64(seed)
	next := func() int16 {
		state = state*6364136223846793005 + 1442695040888963407
		return int16((state >> 48) & 0xFF) - 128
	}
	for i := range n.Emb {
		n.Emb[i] = next() >> 4
	}
	for i := range n.B1 {
		n.B1[i] = int32(next() >> 3)
	}
	for i := range n.FC1W {
		n.FC1W[i] = next() >> 4
	}
	for i := range n.FC1B {
		n.FC1B[i] = int32(next())
	}
	for i := range n.FC2W {
		n.FC2W[i] = next() >> 4
	}
	for i := range n.FC2B {
		n.FC2B[i] = int32(next())
	}
	for i := range n.OutW {
		n.OutW[i] = next() >> 4
	}
	n.OutB = int32(next())
}
