package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/board"
)

// Known-good perft counts from the standard starting position, used
// throughout the engine literature as the baseline move-generator check.
func TestPerftStartPosition(t *testing.T) {
	cases := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, c := range cases {
		pos := board.NewPosition()
		assert.Equal(t, c.want, Count(pos, c.depth), "perft depth %d", c.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), Count(pos, 1))
}
