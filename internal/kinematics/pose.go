package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Pose is the position and orientation encoded by a numeric transform.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// ToMat4 converts t into a mathgl matrix.
func ToMat4(t Transform[float64]) mgl64.Mat4 {
	var m mgl64.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, t[i][j])
		}
	}
	return m
}

// FromMat4 converts a mathgl matrix into a transform.
func FromMat4(m mgl64.Mat4) Transform[float64] {
	var t Transform[float64]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t[i][j] = m.At(i, j)
		}
	}
	return t
}

// Dense copies t into a gonum matrix.
func Dense(t Transform[float64]) *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d.Set(i, j, t[i][j])
		}
	}
	return d
}

// PoseOf extracts the translation column and the rotation quaternion.
func PoseOf(t Transform[float64]) Pose {
	m := ToMat4(t)
	return Pose{
		Position:    m.Col(3).Vec3(),
		Orientation: mgl64.Mat4ToQuat(m).Normalize(),
	}
}

// Rotation returns the upper-left 3x3 block.
func Rotation(t Transform[float64]) *mat.Dense {
	r := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, t[i][j])
		}
	}
	return r
}

// RotationError returns the Frobenius norm of RᵀR - I; it is zero for an
// orthonormal rotation block.
func RotationError(t Transform[float64]) float64 {
	r := Rotation(t)
	var g mat.Dense
	g.Mul(r.T(), r)
	for i := 0; i < 3; i++ {
		g.Set(i, i, g.At(i, i)-1)
	}
	return mat.Norm(&g, 2)
}

// BottomRowExact reports whether the last row is exactly [0 0 0 1].
func BottomRowExact(t Transform[float64]) bool {
	return t[3][0] == 0 && t[3][1] == 0 && t[3][2] == 0 && t[3][3] == 1
}

// IsHomogeneous reports whether t is a rigid homogeneous transform: exact
// bottom row, orthonormal rotation block within tol and determinant +1.
func IsHomogeneous(t Transform[float64], tol float64) bool {
	if !BottomRowExact(t) {
		return false
	}
	if RotationError(t) > tol {
		return false
	}
	return math.Abs(mat.Det(Rotation(t))-1) <= tol
}

// MaxAbsDiff returns the largest entry-wise difference between a and b.
func MaxAbsDiff(a, b Transform[float64]) float64 {
	return floats.Distance(flatten(a), flatten(b), math.Inf(1))
}

func flatten(t Transform[float64]) []float64 {
	out := make([]float64, 0, 16)
	for i := range t {
		out = append(out, t[i][:]...)
	}
	return out
}
