package internal

// Abs returns the absolute value of v.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns |ax-bx| + |ay-by|.
func Manhattan(ax, ay, bx, by int) int {
	return Abs(ax-bx) + Abs(ay-by)
}

// Reverse reverses path in place.
func Reverse[NodeType any](path []NodeType) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}
