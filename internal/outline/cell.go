package outline

// Cell holds the single active node of a forest. Whoever owns the Cell is
// the only writer of every node's active flag; renderers read Node.Active.
type Cell struct {
	current *Node
}

// Current returns the active node, or nil.
func (c *Cell) Current() *Node {
	return c.current
}

// Set makes n the active node, clearing the previous one. Setting the node
// that is already active is a no-op. Reports whether anything changed.
func (c *Cell) Set(n *Node) bool {
	if n == nil || n == c.current {
		return false
	}
	if c.current != nil {
		c.current.active = false
	}
	n.active = true
	c.current = n
	return true
}

// Clear deactivates the current node, if any.
func (c *Cell) Clear() {
	if c.current != nil {
		c.current.active = false
		c.current = nil
	}
}
