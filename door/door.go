// Package door implements the door state machine (component C5):
// activation splices a passable gap into a shared wall, sliding and
// edge-hopping relocate it, and deactivation removes the gap again,
// grounded on original_source s_door_component.py/s_door_system.py.
package door

const defaultLength = 0.07

// snapshot is the one-slot history the MH loop rolls back to on reject.
type snapshot struct {
	bindEdge int
	ratio    float64
}

// Door is one door connecting two rooms. CREATED holds only RoomA/RoomB/
// Length until Activate binds it to an edge; ACTIVE carries the cached
// geometry (Vertices/Faces) introduced by the last activation.
type Door struct {
	RoomA, RoomB int
	Length       float64

	// NeedOptimization is false for a pinned front door: activated once
	// at its configured (edge, ratio) and never stepped.
	NeedOptimization bool

	BindEdge int // -1 until the first Activate
	Ratio    float64
	eLen     float64

	Active bool

	// Vertices holds [v0, v1]: v0 from the first (farther-from-origin)
	// split, v1 from the second (nearer-to-origin) split, in that
	// creation order so Deactivate can pop v1 first.
	Vertices []int
	Faces    []int

	visited map[int]bool
	history snapshot
}

// NewDoor constructs a door in the CREATED state with the default
// ratio (the middle of whichever edge Activate ends up binding).
func NewDoor(roomA, roomB int, length float64) *Door {
	if length <= 0 {
		length = defaultLength
	}
	return &Door{
		RoomA:            roomA,
		RoomB:            roomB,
		Length:           length,
		NeedOptimization: true,
		BindEdge:         -1,
		Ratio:            0.5,
		visited:          make(map[int]bool),
	}
}

// moveLimits returns the [lower, upper] ratio bounds a door may occupy on
// its bound edge without crossing into the adjacent vertex's clearance.
func (d *Door) moveLimits() (float64, float64) {
	return limitsFor(d.Length, d.eLen)
}
