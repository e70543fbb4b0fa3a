package dynamic

import (
	"github.com/technophil98/traefik-docker-http-provider-server/pkg/label"
)

// Kind discriminates the Node variants.
type Kind int

const (
	// KindObject is a mapping of names to child nodes.
	KindObject Kind = iota
	// KindList is an ordered sequence of child nodes.
	KindList
	// KindLeaf is a terminal string value.
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is one value in a container's parsed label tree. Exactly one of the
// variant fields is meaningful, selected by Kind.
type Node struct {
	Kind     Kind
	Value    string           // KindLeaf
	Children map[string]*Node // KindObject
	Items    []*Node          // KindList
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{Kind: KindObject, Children: map[string]*Node{}}
}

// NewList returns an empty list node.
func NewList() *Node {
	return &Node{Kind: KindList}
}

// NewLeaf returns a leaf node holding value.
func NewLeaf(value string) *Node {
	return &Node{Kind: KindLeaf, Value: value}
}

// Child returns the named child of an object node, or nil when the node is
// not an object or has no such child.
func (n *Node) Child(name string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	return n.Children[name]
}

// Leaf returns the value of a leaf node and whether the node is a leaf.
func (n *Node) Leaf() (string, bool) {
	if n == nil || n.Kind != KindLeaf {
		return "", false
	}
	return n.Value, true
}

// Set writes value as a leaf at the position addressed by path, creating
// intermediate objects and growing lists as needed. Index gaps are filled
// with empty object placeholders. It reports whether an existing value or
// subtree was replaced, so callers can surface duplicate-path warnings.
func (n *Node) Set(path []label.Segment, value string) bool {
	current := n
	replaced := false

	for i, seg := range path {
		terminal := i == len(path)-1

		child := current.Children[seg.Name]
		if seg.Indexed() {
			if child == nil || child.Kind != KindList {
				if child != nil {
					replaced = true
				}
				child = NewList()
				current.Children[seg.Name] = child
			}
			for len(child.Items) <= seg.Index {
				child.Items = append(child.Items, NewObject())
			}
			if terminal {
				item := child.Items[seg.Index]
				if item.Kind != KindObject || len(item.Children) > 0 {
					replaced = true
				}
				child.Items[seg.Index] = NewLeaf(value)
				return replaced
			}
			next := child.Items[seg.Index]
			if next.Kind != KindObject {
				replaced = true
				next = NewObject()
				child.Items[seg.Index] = next
			}
			current = next
			continue
		}

		if terminal {
			if child != nil {
				replaced = true
			}
			current.Children[seg.Name] = NewLeaf(value)
			return replaced
		}

		if child == nil || child.Kind != KindObject {
			if child != nil {
				replaced = true
			}
			child = NewObject()
			current.Children[seg.Name] = child
		}
		current = child
	}

	return replaced
}

// Render converts the node tree to plain Go values (string, map[string]any,
// []any) suitable for JSON and YAML encoding.
func (n *Node) Render() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindLeaf:
		return n.Value
	case KindList:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = item.Render()
		}
		return items
	default:
		children := make(map[string]any, len(n.Children))
		for name, child := range n.Children {
			children[name] = child.Render()
		}
		return children
	}
}
