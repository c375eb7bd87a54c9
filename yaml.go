package jsonconv

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAML front-end: the same conversion engine over YAML text, pivoting through
// Value. Mapping key order is preserved via yaml.Node.

// ParseYAML parses YAML text into a Value.
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, &ParseError{Offset: -1, Err: err}
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Null(), nil
		}
		return yamlToValue(root.Content[0])
	}
	return yamlToValue(&root)
}

// DecodeYAML parses YAML text and converts the result into a T.
func DecodeYAML[T any](data []byte) (T, error) {
	v, err := ParseYAML(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return TryAs[T](v)
}

// EncodeYAML converts x to YAML text.
func EncodeYAML[T any](x T) ([]byte, error) {
	vis := NewValueVisitor()
	if err := TryEncode(x, vis); err != nil {
		return nil, err
	}
	node, err := valueToYAML(vis.Result())
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func yamlToValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return Value{}, &ParseError{Offset: -1, Err: err}
			}
			return NewBool(b), nil
		case "!!int":
			return numberValue(n.Value), nil
		case "!!float":
			f, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return Value{}, &ParseError{Offset: -1, Err: err}
			}
			return NewFloat64(f), nil
		default:
			return NewString(n.Value), nil
		}
	case yaml.SequenceNode:
		out := Value{kind: KindArray}
		for _, c := range n.Content {
			v, err := yamlToValue(c)
			if err != nil {
				return Value{}, err
			}
			out.PushBack(v)
		}
		return out, nil
	case yaml.MappingNode:
		out := Value{kind: KindObject}
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlToValue(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			out.Set(n.Content[i].Value, v)
		}
		return out, nil
	case yaml.AliasNode:
		return yamlToValue(n.Alias)
	}
	return Value{}, &ParseError{Offset: -1, Err: fmt.Errorf("unsupported yaml node kind %d", n.Kind)}
}

func valueToYAML(v Value) (*yaml.Node, error) {
	scalar := func(tag, val string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
	}
	switch v.Kind() {
	case KindNull:
		return scalar("!!null", "null"), nil
	case KindBool:
		b, _ := v.Bool()
		return scalar("!!bool", strconv.FormatBool(b)), nil
	case KindInt:
		i, _ := v.Int64()
		return scalar("!!int", strconv.FormatInt(i, 10)), nil
	case KindUint:
		u, _ := v.Uint64()
		return scalar("!!int", strconv.FormatUint(u, 10)), nil
	case KindDouble:
		f, _ := v.Float64()
		return scalar("!!float", strconv.FormatFloat(f, 'g', -1, 64)), nil
	case KindString:
		s, _ := v.Str()
		if v.Tag() == TagBigNum {
			return scalar("!!int", s), nil
		}
		return scalar("!!str", s), nil
	case KindBytes:
		b, _ := v.BytesVal()
		return scalar("!!str", encodeByteText(b, v.Tag())), nil
	case KindArray:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range v.Items() {
			c, err := valueToYAML(it)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		}
		return out, nil
	case KindObject:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			c, err := valueToYAML(m.Value)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, scalar("!!str", m.Key), c)
		}
		return out, nil
	}
	return nil, fmt.Errorf("jsonconv: unsupported value kind %d", v.Kind())
}
