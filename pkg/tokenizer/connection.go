package tokenizer

import "fmt"

// ConnMatrix is the dense connection cost table indexed by
// (right context class of the left node, left context class of the right node).
// It is built once and read-only afterwards; concurrent reads are safe.
type ConnMatrix struct {
	size  int
	costs []int16
}

// NewConnMatrix builds a square matrix from rows. All rows must have the same
// length as the row count.
func NewConnMatrix(rows [][]int16) (*ConnMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("connection matrix is empty")
	}
	costs := make([]int16, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("connection matrix row %d has length %d, want %d", i, len(row), n)
		}
		costs = append(costs, row...)
	}
	return &ConnMatrix{size: n, costs: costs}, nil
}

// Size returns the number of context classes covered by the matrix.
func (m *ConnMatrix) Size() int {
	return m.size
}

// Cost returns the transition cost from the right context class of the left
// node to the left context class of the right node. Class ids are only ever
// produced by the dictionary loaded together with this matrix, so an
// out-of-range id is a bug in dictionary construction, not a runtime
// condition; it panics rather than returning an error.
func (m *ConnMatrix) Cost(right, left uint16) int16 {
	if int(right) >= m.size || int(left) >= m.size {
		panic(fmt.Sprintf("tokenizer: connection cost (%d,%d) out of range for %d classes", right, left, m.size))
	}
	return m.costs[int(right)*m.size+int(left)]
}
