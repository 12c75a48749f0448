package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/erraggy/oasextract/oaserrors"
	"go.yaml.in/yaml/v4"
)

// maxAliasNodes bounds how many nodes may be materialized through YAML
// aliases, which would otherwise let a small document expand exponentially.
const maxAliasNodes = 1 << 20

// Decode parses a JSON or YAML document into a Value. Key order is preserved.
func Decode(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, &oaserrors.ParseError{Message: "decoding document", Cause: err}
	}
	if node.Kind == 0 {
		return Value{}, &oaserrors.ParseError{Message: "document is empty"}
	}
	return FromNode(&node)
}

// FromNode converts a decoded yaml.Node tree into a Value.
func FromNode(node *yaml.Node) (Value, error) {
	d := &nodeDecoder{}
	return d.decode(node, 0)
}

type nodeDecoder struct {
	aliasNodes int
}

func (d *nodeDecoder) decode(n *yaml.Node, aliasDepth int) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	if aliasDepth > 0 {
		d.aliasNodes++
		if d.aliasNodes > maxAliasNodes {
			return Value{}, &oaserrors.ResourceLimitError{
				ResourceType: "alias_nodes",
				Limit:        maxAliasNodes,
				Message:      "YAML aliases expand to too many nodes",
			}
		}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.decode(n.Content[0], aliasDepth)

	case yaml.AliasNode:
		return d.decode(n.Alias, aliasDepth+1)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := d.decode(child, aliasDepth)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, &oaserrors.ParseError{
					Line:    keyNode.Line,
					Column:  keyNode.Column,
					Message: "mapping keys must be scalars",
				}
			}
			child, err := d.decode(valNode, aliasDepth)
			if err != nil {
				return Value{}, err
			}
			obj.Set(keyNode.Value, child)
		}
		return FromObject(obj), nil

	case yaml.ScalarNode:
		return scalarValue(n), nil

	default:
		return Value{}, &oaserrors.ParseError{
			Line:    n.Line,
			Column:  n.Column,
			Message: fmt.Sprintf("unsupported node kind %d", n.Kind),
		}
	}
}

// scalarValue resolves a YAML scalar. Numbers that are not valid JSON
// literals (0x1F, 1_000, .inf) are normalized, or kept as strings when they
// have no JSON form.
func scalarValue(n *yaml.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return String(n.Value)
		}
		return Bool(b)
	case "!!int", "!!float":
		if isJSONNumber(n.Value) {
			return Number(n.Value)
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i)
		}
		var f float64
		if err := n.Decode(&f); err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return String(n.Value)
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		return String(n.Value)
	}
}

// isJSONNumber reports whether s matches the JSON number grammar.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// ToNode converts v into a yaml.Node tree suitable for yaml.Marshal.
func ToNode(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindNumber:
		tag := "!!int"
		for i := 0; i < len(v.text); i++ {
			if c := v.text[i]; c == '.' || c == 'e' || c == 'E' {
				tag = "!!float"
				break
			}
		}
		return scalarNode(tag, v.text)
	case KindString:
		return scalarNode("!!str", v.text)
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(v.arr))}
		for _, item := range v.arr {
			node.Content = append(node.Content, ToNode(item))
		}
		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*v.obj.Len())}
		for k, child := range v.obj.All() {
			node.Content = append(node.Content, scalarNode("!!str", k), ToNode(child))
		}
		return node
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// MarshalYAML implements yaml.Marshaler, preserving object key order.
func (v Value) MarshalYAML() (any, error) {
	return ToNode(v), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := FromNode(node)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
