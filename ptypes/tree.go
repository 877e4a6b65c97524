package ptypes

import (
	"fmt"
	"strings"
)

// ParseTree is a node of a concrete parse tree, as built by the LL
// interpreter (the LR interpreter returns evaluator values instead). Leaf nodes (Terminal true) carry the Token that produced
// them; internal nodes carry the production's left-hand-side symbol in
// Value and the matched right-hand-side nodes as Children.
type ParseTree struct {
	Terminal bool
	Value    string
	Source   Token
	Children []*ParseTree
}

// Copy returns a deep copy of the tree.
func (pt ParseTree) Copy() ParseTree {
	cp := ParseTree{
		Terminal: pt.Terminal,
		Value:    pt.Value,
		Source:   pt.Source,
		Children: make([]*ParseTree, len(pt.Children)),
	}
	for i, c := range pt.Children {
		if c != nil {
			ccp := c.Copy()
			cp.Children[i] = &ccp
		}
	}
	return cp
}

// Equal reports whether two parse trees have identical structure: same
// terminal/nonterminal shape, same Value, and recursively-equal children.
func (pt ParseTree) Equal(o any) bool {
	other, ok := o.(ParseTree)
	if !ok {
		optr, ok := o.(*ParseTree)
		if !ok || optr == nil {
			return false
		}
		other = *optr
	}
	if pt.Terminal != other.Terminal || pt.Value != other.Value {
		return false
	}
	if len(pt.Children) != len(other.Children) {
		return false
	}
	for i := range pt.Children {
		if !pt.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

const (
	treeBranch = "  |-- "
	treeLast   = `  \-- `
	treeCont   = "  |   "
	treeEmpty  = "      "
)

// String renders the tree for line-by-line comparison and debug output.
func (pt ParseTree) String() string {
	return pt.leveled("", "")
}

func (pt ParseTree) leveled(first, cont string) string {
	var sb strings.Builder
	sb.WriteString(first)
	if pt.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %q)", pt.Value))
	} else {
		sb.WriteString(fmt.Sprintf("(%s)", pt.Value))
	}
	for i, c := range pt.Children {
		sb.WriteRune('\n')
		var cFirst, cCont string
		if i+1 < len(pt.Children) {
			cFirst, cCont = cont+treeBranch, cont+treeCont
		} else {
			cFirst, cCont = cont+treeLast, cont+treeEmpty
		}
		if c != nil {
			sb.WriteString(c.leveled(cFirst, cCont))
		}
	}
	return sb.String()
}
