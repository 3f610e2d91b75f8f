package kinematics

// Joint holds the DH parameters of one link: rotation theta about Z,
// offset d along Z, length a along the rotated X and twist alpha about X.
type Joint[T any] struct {
	Theta T
	D     T
	A     T
	Alpha T
}

// Table lists joints from base to end-effector.
type Table[T any] []Joint[T]

// Transform is a 4x4 homogeneous matrix indexed [row][col].
type Transform[T any] [4][4]T

// Identity returns the 4x4 identity.
func Identity[T any](f Field[T]) Transform[T] {
	var m Transform[T]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				m[i][j] = f.One()
			} else {
				m[i][j] = f.Zero()
			}
		}
	}
	return m
}

// RotZ rotates by theta about the Z axis.
func RotZ[T any](f Field[T], theta T) Transform[T] {
	m := Identity(f)
	c, s := f.Cos(theta), f.Sin(theta)
	m[0][0], m[0][1] = c, f.Neg(s)
	m[1][0], m[1][1] = s, c
	return m
}

// RotX rotates by alpha about the X axis.
func RotX[T any](f Field[T], alpha T) Transform[T] {
	m := Identity(f)
	c, s := f.Cos(alpha), f.Sin(alpha)
	m[1][1], m[1][2] = c, f.Neg(s)
	m[2][1], m[2][2] = s, c
	return m
}

// TransZ translates by d along the Z axis.
func TransZ[T any](f Field[T], d T) Transform[T] {
	m := Identity(f)
	m[2][3] = d
	return m
}

// TransX translates by a along the X axis.
func TransX[T any](f Field[T], a T) Transform[T] {
	m := Identity(f)
	m[0][3] = a
	return m
}

// Mul returns the matrix product a·b.
func Mul[T any](f Field[T], a, b Transform[T]) Transform[T] {
	var m Transform[T]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			acc := f.Mul(a[i][0], b[0][j])
			for k := 1; k < 4; k++ {
				acc = f.Add(acc, f.Mul(a[i][k], b[k][j]))
			}
			m[i][j] = acc
		}
	}
	return m
}

// JointTransform returns RotZ(theta)·TransZ(d)·TransX(a)·RotX(alpha).
func JointTransform[T any](f Field[T], j Joint[T]) Transform[T] {
	m := Mul(f, RotZ(f, j.Theta), TransZ(f, j.D))
	m = Mul(f, m, TransX(f, j.A))
	return Mul(f, m, RotX(f, j.Alpha))
}

// Map applies fn to every entry.
func Map[T, U any](t Transform[T], fn func(T) U) Transform[U] {
	var out Transform[U]
	for i := range t {
		for j := range t[i] {
			out[i][j] = fn(t[i][j])
		}
	}
	return out
}

// MapErr applies fn to every entry and stops at the first error.
func MapErr[T, U any](t Transform[T], fn func(T) (U, error)) (Transform[U], error) {
	var out Transform[U]
	for i := range t {
		for j := range t[i] {
			v, err := fn(t[i][j])
			if err != nil {
				return out, err
			}
			out[i][j] = v
		}
	}
	return out, nil
}
