package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeKind identifies the variant held by a Node.
type NodeKind uint8

const (
	// NodeText is a literal text fragment.
	NodeText NodeKind = iota
	// NodeStyle changes the effective style for the following siblings.
	NodeStyle
	// NodeEmbed opens a nested scope whose style changes do not outlive it.
	NodeEmbed
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "Text"
	case NodeStyle:
		return "Style"
	case NodeEmbed:
		return "Embed"
	default:
		return unknownStr
	}
}

// Node is one element of a styled content tree. Only the field matching
// Kind is meaningful.
//
// In documents a node is decoded structurally: a string is a Text node, an
// object is a Style node, and an array is an Embed node.
type Node struct {
	Kind     NodeKind
	Text     string
	Style    Style
	Children []Node
}

// Text returns a text node.
func Text(s string) Node {
	return Node{Kind: NodeText, Text: s}
}

// Change returns a style change node.
func Change(s Style) Node {
	return Node{Kind: NodeStyle, Style: s}
}

// Embed returns a scope node holding children.
func Embed(children ...Node) Node {
	return Node{Kind: NodeEmbed, Children: children}
}

// Walk calls fn for n and every descendant in document order, stopping at
// the first error.
func (n Node) Walk(fn func(Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes a string, object or array into the matching node
// variant. Unknown style keys are rejected.
func (n *Node) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidNode)
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Text(s)
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		if err := checkKeys(keysOf(raw)); err != nil {
			return err
		}
		var s Style
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("style: %w", err)
		}
		*n = Change(s)
	case '[':
		var children []Node
		if err := json.Unmarshal(b, &children); err != nil {
			return err
		}
		*n = Embed(children...)
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidNode, abbrev(b))
	}
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("%w: line %d: scalar %q is not a string", ErrInvalidNode, value.Line, value.Value)
		}
		*n = Text(value.Value)
	case yaml.MappingNode:
		keys := make([]string, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			keys = append(keys, value.Content[i].Value)
		}
		if err := checkKeys(keys); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		var s Style
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("style: %w", err)
		}
		*n = Change(s)
	case yaml.SequenceNode:
		var children []Node
		if err := value.Decode(&children); err != nil {
			return err
		}
		*n = Embed(children...)
	default:
		return fmt.Errorf("%w: line %d", ErrInvalidNode, value.Line)
	}
	return nil
}

// MarshalJSON writes the node in its structural form.
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NodeText:
		return json.Marshal(n.Text)
	case NodeStyle:
		return json.Marshal(n.Style)
	case NodeEmbed:
		if n.Children == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(n.Children)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidNode, n.Kind)
	}
}

func checkKeys(keys []string) error {
	var unknown []string
	for _, k := range keys {
		if !knownKeys[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown style field(s) %s", ErrInvalidNode, strings.Join(unknown, ", "))
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func abbrev(b []byte) string {
	const max = 16
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
