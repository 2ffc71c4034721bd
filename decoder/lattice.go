package decoder

import "github.com/ieee0824/codeswitch-go/internal/mathutil"

// lattice is the L x T table of best cumulative scores and backpointers for
// one decode call. It is never shared.
type lattice struct {
	score mathutil.Mat
	back  [][]int32
}

func newLattice(steps, states int) *lattice {
	return &lattice{
		score: mathutil.NewMatFill(steps, states, mathutil.LogZero),
		back:  mathutil.NewIndexMat(steps, states),
	}
}

// retrace follows backpointers from state end in the last column and returns
// the state path in forward order.
func (l *lattice) retrace(end int) []int {
	n := len(l.score)
	path := make([]int, n)
	path[n-1] = end
	for k := n - 1; k > 0; k-- {
		path[k-1] = int(l.back[k][path[k]])
	}
	return path
}
