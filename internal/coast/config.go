package coast

// ExtrusionMode says how E words are interpreted.
type ExtrusionMode string

const (
	// Absolute extrusion: E is the cumulative filament position.
	Absolute ExtrusionMode = "absolute"
	// Relative extrusion: E is the amount fed during that move alone.
	Relative ExtrusionMode = "relative"
)

// MinSegmentLength is the shortest coast move that is written out, in mm.
// A shorter tail is folded into the following line instead, since tiny moves
// can stall some motion controllers.
const MinSegmentLength = 0.01

// Config is the immutable set of coasting parameters. Distances are in mm.
type Config struct {
	CoastDistance            float64
	PrimePillarCoastDistance float64
	MinExtrusionLength       float64
	ExtrusionMode            ExtrusionMode
}

// distanceFor returns the coast distance for a path category.
func (c Config) distanceFor(cat Category) float64 {
	if cat == Prime {
		return c.PrimePillarCoastDistance
	}
	return c.CoastDistance
}
