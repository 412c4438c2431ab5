package tstree

import "fmt"

// InMainComponent reports whether node can reach the tree's fixed root by
// walking Parent links, i.e. it was not cut loose by a prior Detach that has
// not yet been reattached.
func (t *Tree) InMainComponent(node int) bool {
	for cur := node; cur != none; cur = t.Parent[cur] {
		if cur == t.Root() {
			return true
		}
	}
	return false
}

// Detach removes the tree edge between two adjacent nodes, splitting the
// tree into the component still containing the fixed root and the orphaned
// subtree rooted at whichever of u, v was the child.
func (t *Tree) Detach(u, v int) error {
	var parent, child int
	switch {
	case t.Parent[v] == u:
		parent, child = u, v
	case t.Parent[u] == v:
		parent, child = v, u
	default:
		return treeErrorf("Detach", u, v, fmt.Errorf("%w: nodes are not tree-adjacent", ErrInvalidTree))
	}
	t.removeSuccessor(parent, child)
	t.Parent[child] = none
	return nil
}

// revertAncestry re-roots the subtree containing node so that node itself
// becomes its local root (Parent == none), reversing every parent/child
// relationship along the path from node to the old local root. This mirrors
// the original's revertAncestry, used when the reattaching node is not
// already the root of its orphaned subtree.
func (t *Tree) revertAncestry(node int) {
	var path []int
	for cur := node; ; {
		path = append(path, cur)
		if t.Parent[cur] == none {
			break
		}
		cur = t.Parent[cur]
	}
	for k := 0; k < len(path)-1; k++ {
		child := path[k]
		parent := t.Parent[child]
		t.removeSuccessor(parent, child)
		t.Parent[child] = none
	}
	for k := len(path) - 1; k > 0; k-- {
		child := path[k]
		parent := path[k-1]
		t.Parent[child] = parent
		t.addSuccessor(parent, child)
	}
}

// Attach reconnects an orphaned node (or any node within an orphaned
// subtree, re-rooting it first via revertAncestry) as a new child of parent,
// which must already belong to the tree's main rooted component. Level is
// recomputed for every node of the reattached subtree.
func (t *Tree) Attach(parent, child int) error {
	if !t.InMainComponent(parent) {
		return treeErrorf("Attach", parent, child, fmt.Errorf("%w: parent is not in the rooted component", ErrInvalidTree))
	}
	if t.Parent[child] != none {
		t.revertAncestry(child)
	}
	t.Parent[child] = parent
	t.addSuccessor(parent, child)
	stack := []int{child}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.Level[cur] = t.Level[t.Parent[cur]] + 1
		for c := t.FirstChild[cur]; c != none; c = t.YoungerSib[c] {
			stack = append(stack, c)
		}
	}
	return nil
}

// Update performs the full stepping-stone tree surgery for one pivot: the
// leaving arc (leaveParent, leaveChild) is detached, then the entering arc
// is attached with attachMain already in the rooted component and
// attachOrphan somewhere in the now-detached subtree.
func (t *Tree) Update(leaveParent, leaveChild, attachMain, attachOrphan int) error {
	if err := t.Detach(leaveParent, leaveChild); err != nil {
		return err
	}
	return t.Attach(attachMain, attachOrphan)
}
