package gear

// Ratio fixes the fraction a Unit is expressed in.
type Ratio interface {
	Numerator() uint32
	Denominator() uint32
}

// Centi expresses units of 1/100.
type Centi struct{}

func (Centi) Numerator() uint32   { return 1 }
func (Centi) Denominator() uint32 { return 100 }

// Milli expresses units of 1/1000.
type Milli struct{}

func (Milli) Numerator() uint32   { return 1 }
func (Milli) Denominator() uint32 { return 1000 }

// Unit is an integer v standing for v * N / D, where N/D comes from S.
type Unit[S Ratio] uint32

// Scalar converts the unit to floating point. Only final aggregation should
// go through here, the damage formulas stay on integers.
func (u Unit[S]) Scalar() float64 {
	var s S
	return float64(u) * float64(s.Numerator()) / float64(s.Denominator())
}

// Scale computes v * u * N / D with a single truncating division, the way
// every step of the damage formula floors.
func Scale[S Ratio](v uint32, u Unit[S]) uint32 {
	var s S
	return uint32(uint64(v) * uint64(u) * uint64(s.Numerator()) / uint64(s.Denominator()))
}

// ScaleFloat multiplies v by the unit truncated to an integer ratio first.
func ScaleFloat[S Ratio](v float64, u Unit[S]) float64 {
	var s S
	return v * float64(uint32(u)*s.Numerator()/s.Denominator())
}
