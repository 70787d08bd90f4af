package gen

import (
	"view-generator/internal/errors"
	"view-generator/internal/view"
)

// Node is one segment of the output tree. Container nodes have children
// and no view; a leaf holds one generated view and may still have
// children nested below it.
type Node struct {
	Segment view.Segment
	View    view.Generated

	children []*Node
	index    map[string]*Node
}

// Children returns the child nodes in first-inserted order.
func (n *Node) Children() []*Node {
	return n.children
}

// IsLeaf reports whether a view is attached to the node.
func (n *Node) IsLeaf() bool {
	return n.View != nil
}

// Find returns the node at path, or nil.
func (n *Node) Find(p view.TypePath) *Node {
	cur := n
	for _, s := range p.Segments {
		cur = cur.index[s.Name]
		if cur == nil {
			return nil
		}
	}

	return cur
}

func (n *Node) child(s view.Segment) *Node {
	if c, ok := n.index[s.Name]; ok {
		if len(c.Segment.Params) == 0 && len(s.Params) > 0 {
			c.Segment.Params = s.Params
		}

		return c
	}

	c := &Node{Segment: s}
	if n.index == nil {
		n.index = make(map[string]*Node)
	}

	n.index[s.Name] = c
	n.children = append(n.children, c)

	return c
}

// BuildTree arranges views by their TypePath. Two views on the same path,
// or two views sharing a Go identifier, are ErrPathCollision.
func BuildTree(views []view.Generated) (*Node, error) {
	root := &Node{}
	idents := make(map[string]view.Generated, len(views))

	for _, v := range views {
		p := v.Path()
		if len(p.Segments) == 0 {
			return nil, errors.AssertionFailedf("view %s has an empty path", v.Ident())
		}

		n := root
		for _, s := range p.Segments {
			n = n.child(s)
		}

		if n.View != nil && n.View != v {
			return nil, errors.Wrapf(errors.ErrPathCollision, "%s: %s and %s",
				p, n.View.SourceType(), v.SourceType())
		}

		if prev, ok := idents[v.Ident()]; ok && prev != v {
			return nil, errors.Wrapf(errors.ErrPathCollision, "identifier %s: %s and %s",
				v.Ident(), prev.SourceType(), v.SourceType())
		}

		n.View = v
		idents[v.Ident()] = v
	}

	return root, nil
}
