//go:build amd64

package nnue

import "golang.org/x/sys/cpu"

func init() {
	// AVX2 machines get a 4-wide manually unrolled accumulation; this stays
	// pure Go (no cgo/asm) but gives the compiler wider straight-line code
	// to vectorize than the plain loop in scalar.go, and is gated at
	// startup rather than per-call.
	if cpu.X86.HasAVX2 {
		dotFn = unrolledDot
	}
}

func unrolledDot(n *Network, us, them *[HiddenDim]int16) int32 {
	var s0, s1, s2, s3 int32
	for i := 0; i < HiddenDim; i += 4 {
		s0 += clippedReLU(us[i]) * int32(n.outputWeights[i])
		s1 += clippedReLU(us[i+1]) * int32(n.outputWeights[i+1])
		s2 += clippedReLU(us[i+2]) * int32(n.outputWeights[i+2])
		s3 += clippedReLU(us[i+3]) * int32(n.outputWeights[i+3])
	}
	for i := 0; i < HiddenDim; i += 4 {
		o := HiddenDim + i
		s0 += clippedReLU(them[i]) * int32(n.outputWeights[o])
		s1 += clippedReLU(them[i+1]) * int32(n.outputWeights[o+1])
		s2 += clippedReLU(them[i+2]) * int32(n.outputWeights[o+2])
		s3 += clippedReLU(them[i+3]) * int32(n.outputWeights[o+3])
	}
	return s0 + s1 + s2 + s3 + n.outputBias
}
