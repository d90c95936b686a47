// Package dump renders parsed values as YAML for inspection. Every value
// becomes a single-key mapping naming its variant, so the dump shows the exact
// shape and precision the reader produced, comments included.
package dump

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"edn/internal/ast"
)

const (
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	boolTag  = "!!bool"
	nullTag  = "!!null"
)

// WriteYAML writes the YAML dump of v to w.
func WriteYAML(w io.Writer, v ast.Value) error {
	node, err := toNode(v)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func toNode(v ast.Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case ast.String:
		return labelled("String", scalar(strTag, string(v))), nil
	case ast.Symbol, ast.Keyword, ast.Character:
		return labelled(v.Kind().String(), scalar(strTag, v.String())), nil
	case ast.Integer:
		label := "Integer/" + v.Precision().String()
		if i, ok := v.Int64(); ok {
			return labelled(label, scalar(intTag, strconv.FormatInt(i, 10))), nil
		}
		// outside the range YAML readers decode as integers
		return labelled(label, scalar(strTag, v.BigInt().String())), nil
	case ast.Float:
		label := "Float/" + v.Precision().String()
		if f, ok := v.Float64(); ok {
			return labelled(label, scalar(floatTag, formatDouble(f, v))), nil
		}
		d, _ := v.Decimal()
		return labelled(label, scalar(strTag, d.String())), nil
	case ast.Boolean:
		return labelled("Boolean", scalar(boolTag, strconv.FormatBool(bool(v)))), nil
	case ast.Nil, ast.Comment:
		return labelled(v.Kind().String(), scalar(nullTag, "null")), nil
	case ast.List:
		return sequence("List", v)
	case ast.Vector:
		return sequence("Vector", v)
	case *ast.Set:
		return sequence("Set", v.Elements())
	case *ast.Map:
		entries := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range v.Entries() {
			key, err := toNode(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := toNode(e.Value)
			if err != nil {
				return nil, err
			}
			entries.Content = append(entries.Content, &yaml.Node{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{scalar(strTag, "key"), key, scalar(strTag, "value"), val},
			})
		}
		return labelled("Map", entries), nil
	}
	return nil, fmt.Errorf("%w: %T", ast.ErrUnknownValue, v)
}

// formatDouble spells non-finite doubles the way YAML does.
func formatDouble(f float64, v ast.Float) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return v.String()
}

func sequence(label string, items []ast.Value) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		node, err := toNode(item)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, node)
	}
	return labelled(label, seq), nil
}

func labelled(label string, node *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalar(strTag, label), node},
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
