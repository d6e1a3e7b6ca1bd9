package frontend

import (
	"fmt"
	"strings"
)

// NodeID indexes a Node inside a Tree's arena. A parent reference is a
// NodeID rather than a pointer so the tree can be walked and compared
// without following back-edges into a cycle.
type NodeID int

// noParent marks the root node, which has no parent.
const noParent NodeID = -1

// Node is one vertex of a parse tree: a grammar symbol, its ordered
// children, and — for terminal leaves — the token it was matched
// against. Error-recovery placeholder leaves and genuine epsilon leaves
// both carry no token and print identically, but are told apart by
// IsRecoveryPlaceholder.
type Node struct {
	Symbol   Symbol
	Parent   NodeID
	Children []NodeID

	Token *Token

	IsRecoveryPlaceholder bool
}

// IsLeaf reports whether a node has no children — true for terminal
// matches, epsilon productions, and recovery placeholders alike.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is a parse tree stored as an arena of Nodes indexed by NodeID, so
// that parent back-references never create a reference cycle a garbage
// collector (or a naive recursive Equal) would need special handling for.
type Tree struct {
	nodes []Node
	root  NodeID
}

// NewTree creates a Tree whose root holds the grammar's start symbol.
func NewTree(root Symbol) *Tree {
	t := &Tree{}
	t.root = t.addNode(Node{Symbol: root, Parent: noParent})
	return t
}

// Root returns the tree's root node ID.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node stored at id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) addNode(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

// AddChild appends a new child under parent holding sym, and returns its
// ID.
func (t *Tree) AddChild(parent NodeID, sym Symbol) NodeID {
	id := t.addNode(Node{Symbol: sym, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// SetToken attaches a matched terminal's token to a leaf node.
func (t *Tree) SetToken(id NodeID, tok Token) {
	t.nodes[id].Token = &tok
}

// MarkRecoveryPlaceholder flags a leaf as a panic-mode recovery
// placeholder rather than a genuine epsilon match.
func (t *Tree) MarkRecoveryPlaceholder(id NodeID) {
	t.nodes[id].IsRecoveryPlaceholder = true
}

// treeColumn is one printed row of the inorder listing: lexeme, the
// current-node name, the line the token appeared on, its kind, its value
// (if any), its parent's symbol text, a leaf flag, and (for non-leaves
// only) the node's own symbol text.
type treeColumn struct {
	lexeme      string
	currentNode string
	line        string
	kind        string
	value       string
	parent      string
	isLeaf      bool
	nodeSymbol  string
}

// stripBrackets removes the surrounding <...> a non-terminal's String()
// carries, the form the parse-tree file uses for parent and symbol
// columns.
func stripBrackets(s string) string {
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		return s[1 : len(s)-1]
	}
	return s
}

func (t *Tree) parentColumn(id NodeID) string {
	n := t.Node(id)
	if n.Parent == noParent {
		return "ROOT"
	}
	return stripBrackets(t.Node(n.Parent).Symbol.String())
}

// Inorder walks the tree left to right and returns one column per node:
// for a leaf, just its own row; for a non-leaf, its leftmost child's
// subtree, then its own row, then the remaining children's subtrees. A
// non-leaf's own row carries its stripped symbol text in both the
// current-node and node-symbol columns.
func (t *Tree) Inorder() []treeColumn {
	var cols []treeColumn
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.Node(id)
		if len(n.Children) == 0 {
			cols = append(cols, t.leafColumn(id))
			return
		}
		walk(n.Children[0])
		cols = append(cols, t.innerColumn(id))
		for _, c := range n.Children[1:] {
			walk(c)
		}
	}
	walk(t.root)
	return cols
}

func (t *Tree) innerColumn(id NodeID) treeColumn {
	nt := stripBrackets(t.Node(id).Symbol.String())
	return treeColumn{
		lexeme:      "----",
		currentNode: nt,
		line:        "----",
		kind:        "----",
		value:       "----",
		parent:      t.parentColumn(id),
		isLeaf:      false,
		nodeSymbol:  nt,
	}
}

func (t *Tree) leafColumn(id NodeID) treeColumn {
	n := t.Node(id)
	col := treeColumn{
		parent:     t.parentColumn(id),
		isLeaf:     true,
		nodeSymbol: "----",
	}
	if n.Token == nil || n.IsRecoveryPlaceholder {
		col.lexeme = "----"
		col.currentNode = "EPS"
		col.line = "----"
		col.kind = "EPS"
		col.value = "----"
		return col
	}

	col.lexeme = n.Token.Lexeme
	col.currentNode = n.Token.Kind.String()
	col.line = fmt.Sprintf("%d", n.Token.Line)
	col.kind = n.Token.Kind.String()
	col.value = "----"
	if n.Token.HasValue {
		if n.Token.Kind == KindRNum {
			col.value = fmt.Sprintf("%.2f", n.Token.RealValue)
		} else {
			col.value = fmt.Sprintf("%d", n.Token.IntValue)
		}
	}
	return col
}

// Print renders the inorder listing as a fixed-width table, the format
// written to the parse-tree output file: lexeme, CurrentNode, lineno,
// tokenName, valueIfNumber, parentNodeSymbol, isLeafNode(yes/no),
// NodeSymbol.
func (t *Tree) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s  %-30s  %-6s  %-22s  %-12s  %-30s  %-18s  %s\n",
		"lexeme", "CurrentNode", "lineno", "tokenName", "valueIfNumber", "parentNodeSymbol", "isLeafNode(yes/no)", "NodeSymbol")
	for _, c := range t.Inorder() {
		leaf := "no"
		if c.isLeaf {
			leaf = "yes"
		}
		fmt.Fprintf(&b, "%-20s  %-30s  %-6s  %-22s  %-12s  %-30s  %-18s  %s\n",
			c.lexeme, c.currentNode, c.line, c.kind, c.value, c.parent, leaf, c.nodeSymbol)
	}
	return b.String()
}
