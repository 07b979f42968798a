package constructs

// Pose is the position/orientation part of a State. The meaning of each
// element is defined by the kinematic model that consumes it.
type Pose struct {
	vector
}

// NewPose returns a zero filled Pose of the given size.
func NewPose(size int) (Pose, error) {
	vec, err := newVector("pose", size)
	if err != nil {
		return Pose{}, err
	}
	return Pose{vec}, nil
}

// PoseFrom returns a Pose holding a copy of data.
func PoseFrom(data ...float64) Pose {
	return Pose{vectorFrom(data)}
}

func (p Pose) Add(o Pose) (Pose, error) {
	res, err := p.add("pose", o.vector)
	return Pose{res}, err
}

func (p Pose) Sub(o Pose) (Pose, error) {
	res, err := p.sub("pose", o.vector)
	return Pose{res}, err
}

// Scale returns k*p.
func (p Pose) Scale(k float64) Pose { return Pose{p.scale(k)} }

func (p Pose) Equal(o Pose) bool { return p.equal(o.vector) }

// ApproxEqual compares elementwise within an absolute tolerance.
func (p Pose) ApproxEqual(o Pose, tol float64) bool { return p.approxEqual(o.vector, tol) }

// CreateLike returns a zero Pose of the same size.
func (p Pose) CreateLike() Pose { return Pose{vector{data: make([]float64, p.Size())}} }

// Clone returns a deep copy that does not share storage with p.
func (p Pose) Clone() Pose { return Pose{vectorFrom(p.data)} }
