package event

import "math"

// FourVector is a spacetime position (x, y, z, t) or momentum (px, py, pz, e).
type FourVector struct {
	X, Y, Z, T float64
}

// NewFourVector returns the vector (x, y, z, t).
func NewFourVector(x, y, z, t float64) FourVector {
	return FourVector{X: x, Y: y, Z: z, T: t}
}

func (v FourVector) Px() float64 { return v.X }
func (v FourVector) Py() float64 { return v.Y }
func (v FourVector) Pz() float64 { return v.Z }
func (v FourVector) E() float64  { return v.T }

// Add returns v + o.
func (v FourVector) Add(o FourVector) FourVector {
	return FourVector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, T: v.T + o.T}
}

// Sub returns v - o.
func (v FourVector) Sub(o FourVector) FourVector {
	return FourVector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, T: v.T - o.T}
}

// Scale returns v multiplied component-wise by f.
func (v FourVector) Scale(f float64) FourVector {
	return FourVector{X: v.X * f, Y: v.Y * f, Z: v.Z * f, T: v.T * f}
}

// IsZero reports whether all components are zero.
func (v FourVector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0 && v.T == 0
}

// M2 returns the invariant mass squared, t² - |p|².
func (v FourVector) M2() float64 {
	return v.T*v.T - (v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// M returns the invariant mass. Space-like vectors yield -sqrt(-m²).
func (v FourVector) M() float64 {
	m2 := v.M2()
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}
	return math.Sqrt(m2)
}

// Pt returns the transverse component.
func (v FourVector) Pt() float64 {
	return math.Hypot(v.X, v.Y)
}

// Phi returns the azimuthal angle.
func (v FourVector) Phi() float64 {
	return math.Atan2(v.Y, v.X)
}

// Eta returns the pseudorapidity. Vectors along the beam axis yield ±Inf.
func (v FourVector) Eta() float64 {
	p := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if p == math.Abs(v.Z) {
		switch {
		case v.Z > 0:
			return math.Inf(1)
		case v.Z < 0:
			return math.Inf(-1)
		default:
			return 0
		}
	}
	return 0.5 * math.Log((p+v.Z)/(p-v.Z))
}
