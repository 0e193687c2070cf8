package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK is the mutable assembly form for sparse operators, converted to CSR for
// application.
type DOK struct {
	M    *sparse.DOK
	name string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		"unnamed",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK {
	m.M.Set(i, j, val)
	return m
}

func (m DOK) SetName(name string) DOK {
	m.name = name
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is the compressed application form, read-only once built.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }

// MulVec applies the operator to x, returning a new vector of the operator's
// row dimension.
func (m CSR) MulVec(x Vector) (r Vector) {
	var (
		nr, nc = m.Dims()
	)
	if x.Len() != nc {
		panic(fmt.Errorf("dimension mismatch applying sparse operator %s: %d x %d times %d",
			m.name, nr, nc, x.Len()))
	}
	r = NewVector(nr)
	r.V.MulVec(m.M, x.V)
	return
}
