package steering

// Neighbor is a vehicle found by NeighborsWithin together with its distance.
type Neighbor struct {
	Vehicle  *Vehicle
	Distance float64
}

// NeighborsWithin appends to dst every vehicle of pool closer than radius to me and returns
// the extended slice. Matches keep the pool order.
//
// A distance of exactly 0 is treated as "me": it excludes the vehicle itself as well as any
// vehicle sharing its position, which would otherwise give a zero-length direction.
//
// The scan is O(len(pool)), so a full tick is O(n²). This is the place to plug a spatial
// grid if populations ever grow beyond a few hundred vehicles.
func NeighborsWithin(dst []Neighbor, me *Vehicle, pool []*Vehicle, radius float64) []Neighbor {
	for _, other := range pool {
		d := me.position.DistanceTo(other.position)
		if d > 0 && d < radius {
			dst = append(dst, Neighbor{Vehicle: other, Distance: d})
		}
	}
	return dst
}
