package coast

// Category classifies a path by the marker that opened it.
type Category int

const (
	Regular Category = iota
	Prime
)

func (c Category) String() string {
	if c == Prime {
		return "prime"
	}
	return "regular"
}

// Stats counts coasted and skipped paths per category.
type Stats struct {
	RegularCoasted int
	PrimeCoasted   int
	RegularSkipped int
	PrimeSkipped   int
}

// record counts one path.
func (s *Stats) record(cat Category, coasted bool) {
	switch {
	case cat == Prime && coasted:
		s.PrimeCoasted++
	case cat == Prime:
		s.PrimeSkipped++
	case coasted:
		s.RegularCoasted++
	default:
		s.RegularSkipped++
	}
}

// Add folds other into s.
func (s *Stats) Add(other Stats) {
	s.RegularCoasted += other.RegularCoasted
	s.PrimeCoasted += other.PrimeCoasted
	s.RegularSkipped += other.RegularSkipped
	s.PrimeSkipped += other.PrimeSkipped
}

// Paths is the number of destring events counted.
func (s Stats) Paths() int {
	return s.RegularCoasted + s.PrimeCoasted + s.RegularSkipped + s.PrimeSkipped
}
