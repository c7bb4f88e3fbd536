package nnue

import (
	"encoding/binary"
	_ "embed"
	"math/rand"
)

// weightsBlob would normally be produced by an offline training/quantization
// pipeline (out of scope for this module — see the build-time bundling
// Non-goal) and embedded as a binary asset. No trained network shipped with
// this module, so weights.bin is a small deterministically seeded
// placeholder with the real network's exact shape and quantization scheme;
// swapping in a real trained file only requires regenerating weights.bin in
// the same binary layout consumed by Load below.
//
//go:embed weights.bin
var weightsBlob []byte

// Load decodes the embedded weight blob into a Network. The blob layout is
// input weights (FeatureDim*HiddenDim int16), input bias (HiddenDim int16),
// output weights (2*HiddenDim int16), output bias (int32), all little
// endian.
func Load() *Network {
	n := &Network{}
	r := weightsBlob
	pos := 0
	readI16 := func() int16 {
		v := int16(binary.LittleEndian.Uint16(r[pos:]))
		pos += 2
		return v
	}
	for i := 0; i < FeatureDim; i++ {
		for j := 0; j < HiddenDim; j++ {
			n.inputWeights[i][j] = readI16()
		}
	}
	for j := 0; j < HiddenDim; j++ {
		n.inputBias[j] = readI16()
	}
	for j := 0; j < 2*HiddenDim; j++ {
		n.outputWeights[j] = readI16()
	}
	n.outputBias = int32(binary.LittleEndian.Uint32(r[pos:]))
	return n
}

// generatePlaceholder deterministically fills a binary-layout-compatible
// blob matching weights.bin's format; kept for reference documentation of
// that format rather than invoked at runtime.
func generatePlaceholder(seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, 0, FeatureDim*HiddenDim*2+HiddenDim*2+2*HiddenDim*2+4)
	put16 := func(v int16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		buf = append(buf, b[:]...)
	}
	for i := 0; i < FeatureDim*HiddenDim; i++ {
		put16(int16(r.Intn(41) - 20))
	}
	for i := 0; i < HiddenDim; i++ {
		put16(0)
	}
	for i := 0; i < 2*HiddenDim; i++ {
		put16(int16(r.Intn(41) - 20))
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], 0)
	buf = append(buf, b[:]...)
	return buf
}
