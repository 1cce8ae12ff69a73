package coast

// Outcome is what happened to one path.
type Outcome int

const (
	// Coasted: the path was split and its tail had extrusion removed.
	Coasted Outcome = iota
	// Stripped: no split point existed within the path, so extrusion was
	// removed from the whole path. Counted as coasted.
	Stripped
	// TooShort: the path is not longer than the minimum extrusion length.
	TooShort
	// Unscannable: the walk ran off the start of the buffer before finding
	// the path's boundary.
	Unscannable
)

func (o Outcome) String() string {
	switch o {
	case Coasted:
		return "coasted"
	case Stripped:
		return "stripped"
	case TooShort:
		return "too_short"
	case Unscannable:
		return "unscannable"
	default:
		return "unknown"
	}
}

// IsCoasted reports whether the outcome counts as coasted.
func (o Outcome) IsCoasted() bool {
	return o == Coasted || o == Stripped
}

// Event describes the handling of one destring marker.
type Event struct {
	// Line is the marker's index in the input.
	Line     int
	Category Category
	Outcome  Outcome

	// PathLength is the measured horizontal length of the path.
	PathLength float64
	// CoastDistance is the distance actually coasted, after shrinking to
	// keep MinExtrusionLength of printing.
	CoastDistance float64
	// SplitLine is the index of the move that was replaced by the split,
	// or -1.
	SplitLine int
	// Degenerate is set when the coast move was too short to write and its
	// note went onto the following line.
	Degenerate bool
}
