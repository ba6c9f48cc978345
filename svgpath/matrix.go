package svgpath

import "math"

// Matrix2D represents an affine transformation, mapping
// (x, y) to (A*x + C*y + E, B*x + D*y + F).
// Its layout matches rasterx.Matrix2D, so that conversion
// between the two types is free.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Transform multiplies the input vector by matrix m and outputs the results vector
// components.
func (m Matrix2D) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*m.A + y1*m.C + m.E
	y2 = x1*m.B + y1*m.D + m.F
	return
}

// TransformPoint is the same as Transform, for a Point.
func (m Matrix2D) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{x, y}
}

// TransformVector applies the linear part of m (no translation).
func (m Matrix2D) TransformVector(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*m.A + y1*m.C
	y2 = x1*m.B + y1*m.D
	return
}

// Mult returns a*b : the resulting transform applies b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse matrix, or Identity
// when m is not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity
	}
	inv := 1 / det
	return Matrix2D{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}
}

// IsIdentity is true for the identity matrix
func (m Matrix2D) IsIdentity() bool { return m == Identity }

// Translate returns m * translate(x, y)
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns m * scale(x, y)
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns m * rotate(theta), theta in radians
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX returns m * skewX(theta), theta in radians
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY returns m * skewY(theta), theta in radians
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// matrixAdder applies a matrix to the points
// before forwarding them.
type matrixAdder struct {
	Adder
	M Matrix2D
}

func (t matrixAdder) Start(a Point) { t.Adder.Start(t.M.TransformPoint(a)) }

func (t matrixAdder) Line(b Point) { t.Adder.Line(t.M.TransformPoint(b)) }

func (t matrixAdder) CubeBezier(b, c, d Point) {
	t.Adder.CubeBezier(t.M.TransformPoint(b), t.M.TransformPoint(c), t.M.TransformPoint(d))
}
