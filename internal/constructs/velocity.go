package constructs

// Velocity is the rate of change part of a State. The meaning of each
// element is defined by the kinematic model that consumes it.
type Velocity struct {
	vector
}

// NewVelocity returns a zero filled Velocity of the given size.
func NewVelocity(size int) (Velocity, error) {
	vec, err := newVector("velocity", size)
	if err != nil {
		return Velocity{}, err
	}
	return Velocity{vec}, nil
}

// VelocityFrom returns a Velocity holding a copy of data.
func VelocityFrom(data ...float64) Velocity {
	return Velocity{vectorFrom(data)}
}

func (v Velocity) Add(o Velocity) (Velocity, error) {
	res, err := v.add("velocity", o.vector)
	return Velocity{res}, err
}

func (v Velocity) Sub(o Velocity) (Velocity, error) {
	res, err := v.sub("velocity", o.vector)
	return Velocity{res}, err
}

// Scale returns k*v.
func (v Velocity) Scale(k float64) Velocity { return Velocity{v.scale(k)} }

func (v Velocity) Equal(o Velocity) bool { return v.equal(o.vector) }

// ApproxEqual compares elementwise within an absolute tolerance.
func (v Velocity) ApproxEqual(o Velocity, tol float64) bool { return v.approxEqual(o.vector, tol) }

// CreateLike returns a zero Velocity of the same size.
func (v Velocity) CreateLike() Velocity { return Velocity{vector{data: make([]float64, v.Size())}} }

// Clone returns a deep copy that does not share storage with v.
func (v Velocity) Clone() Velocity { return Velocity{vectorFrom(v.data)} }
