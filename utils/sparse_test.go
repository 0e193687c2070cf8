package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	{ // DOK assembly and conversion
		dok := NewDOK(2, 3).SetName("difference")
		dok.Set(0, 0, 1).Set(0, 1, -1)
		dok.Set(1, 1, 1).Set(1, 2, -1)
		assert.Equal(t, 1., dok.At(0, 0))
		assert.Equal(t, -1., dok.At(0, 1))
		assert.Equal(t, 0., dok.At(1, 0))
		csr := dok.ToCSR()
		nr, nc := csr.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 3, nc)
		assert.Equal(t, 4, csr.NNZ())
	}
	{ // MulVec computes the signed interface difference
		K := 4
		dok := NewDOK(K, K+1)
		for i := 0; i < K; i++ {
			dok.Set(i, i, 1).Set(i, i+1, -1)
		}
		csr := dok.ToCSR()
		f := NewVector(K+1, []float64{1, 3, 6, 10, 15})
		df := csr.MulVec(f)
		assert.Equal(t, []float64{-2, -3, -4, -5}, df.DataP())
		assert.Panics(t, func() { csr.MulVec(NewVector(K)) })
	}
}
