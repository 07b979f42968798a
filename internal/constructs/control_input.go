package constructs

// ControlInput is the input vector a kinematic model consumes when computing
// a state derivative. Its size is fixed by that model.
type ControlInput struct {
	vector
}

// NewControlInput returns a zero filled ControlInput of the given size.
func NewControlInput(size int) (ControlInput, error) {
	vec, err := newVector("control input", size)
	if err != nil {
		return ControlInput{}, err
	}
	return ControlInput{vec}, nil
}

// ControlInputFrom returns a ControlInput holding a copy of data.
func ControlInputFrom(data ...float64) ControlInput {
	return ControlInput{vectorFrom(data)}
}

func (u ControlInput) Add(o ControlInput) (ControlInput, error) {
	res, err := u.add("control input", o.vector)
	return ControlInput{res}, err
}

func (u ControlInput) Sub(o ControlInput) (ControlInput, error) {
	res, err := u.sub("control input", o.vector)
	return ControlInput{res}, err
}

// Scale returns k*u.
func (u ControlInput) Scale(k float64) ControlInput { return ControlInput{u.scale(k)} }

func (u ControlInput) Equal(o ControlInput) bool { return u.equal(o.vector) }

func (u ControlInput) ApproxEqual(o ControlInput, tol float64) bool { return u.approxEqual(o.vector, tol) }

// CreateLike returns a zero ControlInput of the same size.
func (u ControlInput) CreateLike() ControlInput { return ControlInput{vector{data: make([]float64, u.Size())}} }

// Clone returns a deep copy that does not share storage with u.
func (u ControlInput) Clone() ControlInput { return ControlInput{vectorFrom(u.data)} }
