package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	var (
		data []float64
	)
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			panic(fmt.Errorf("mismatch in vector length: provided %d, need %d", len(dataO[0]), n))
		}
		data = dataO[0]
	} else {
		data = make([]float64, n)
	}
	v = Vector{mat.NewVecDense(n, data)}
	return
}

func NewVectorConst(n int, val float64) (v Vector) {
	return NewVector(n, ConstArray(n, val))
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)          { return v.V.Dims() }
func (v Vector) At(i, j int) float64       { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix             { return v.V.T() }
func (v Vector) AtVec(i int) float64       { return v.V.AtVec(i) }
func (v Vector) SetVec(i int, val float64) { v.V.SetVec(i, val) }
func (v Vector) RawVector() blas64.Vector  { return v.V.RawVector() }
func (v Vector) Len() int                  { return v.V.Len() }
func (v Vector) DataP() []float64          { return v.V.RawVector().Data }

func (v Vector) Copy() (r Vector) {
	r = NewVector(v.Len())
	r.V.CopyVec(v.V)
	return
}

// Chainable (extended) methods
func (v Vector) Scale(a float64) Vector {
	v.V.ScaleVec(a, v.V)
	return v
}

func (v Vector) Add(a Vector) Vector {
	v.V.AddVec(v.V, a.V)
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	v.V.SubVec(v.V, a.V)
	return v
}

// AddScaled adds c*a to the receiver, the workhorse of the RK stage updates.
func (v Vector) AddScaled(c float64, a Vector) Vector {
	v.V.AddScaledVec(v.V, c, a.V)
	return v
}

func (v Vector) AddScalar(a float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) ElMul(a Vector) Vector {
	v.V.MulElemVec(v.V, a.V)
	return v
}

func (v Vector) ElDiv(a Vector) Vector {
	v.V.DivElemVec(v.V, a.V)
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Apply2(a Vector, f func(v1, v2 float64) float64) Vector {
	var (
		data  = v.V.RawVector().Data
		dataA = a.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val, dataA[i])
	}
	return v
}

func (v Vector) POW(p int) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return v
}

func (v Vector) Min() (min float64) {
	var (
		data = v.V.RawVector().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.V.RawVector().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) MaxAbs() (max float64) {
	var (
		data = v.V.RawVector().Data
	)
	for _, val := range data {
		if m := math.Abs(val); m > max {
			max = m
		}
	}
	return
}

// IsValid reports whether the vector is free of NaN and Inf values.
func (v Vector) IsValid() bool {
	var (
		data = v.V.RawVector().Data
	)
	for _, val := range data {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
	}
	return true
}
