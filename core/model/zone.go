package model

// Zone is a discrete grid cell of the service area. Zone IDs are assigned
// row-major, so id = row*cols + col.
type Zone struct {
	ID  int
	Row int
	Col int
	// Lat and Lon are pseudo coordinates for display only. The simulation
	// operates purely on grid hops.
	Lat float64
	Lon float64
}

// ManhattanHops returns the grid distance in hops between two zone IDs on a
// layout with the given number of columns.
func ManhattanHops(z1, z2, cols int) int {
	r1, c1 := z1/cols, z1%cols
	r2, c2 := z2/cols, z2%cols
	return abs(r1-r2) + abs(c1-c2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
