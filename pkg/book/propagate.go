package book

// PropagateToChildren sets key=value on n and unconditionally on every
// descendant. Existing values are overwritten, never merged.
func PropagateToChildren(n *Node, key string, value any) {
	n.Walk(func(node *Node) bool {
		node.Properties[key] = value
		return true
	})
}

// PropagateToParents sets key=value on n and on every ancestor of n up to
// and including the root (among roots) that contains it. Nodes outside that
// containing root's subtree are untouched. Nodes carry no parent pointers,
// so the ancestor chain is discovered by searching downward from each
// candidate root.
func PropagateToParents(n *Node, key string, value any, roots []*Node) {
	for _, root := range roots {
		if chain := pathTo(root, n.ID); chain != nil {
			for _, node := range chain {
				node.Properties[key] = value
			}
			return
		}
	}
}

// pathTo returns the root-to-target chain of nodes, or nil if the id is not
// in this subtree.
func pathTo(root *Node, id string) []*Node {
	if root.ID == id {
		return []*Node{root}
	}
	for _, c := range root.Children {
		if chain := pathTo(c, id); chain != nil {
			return append([]*Node{root}, chain...)
		}
	}
	return nil
}
