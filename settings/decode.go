package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/grovetools/navcore/errors"
	"gopkg.in/yaml.v3"
)

// Format names a serialisation of the settings tree.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a decoder from the file extension, falling back to
// sniffing the first significant byte.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode classifies data into a settings tree using the given format.
func Decode(data []byte, format Format) (*Group, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unsupported settings format %q", format))
	}
}

// DecodeJSON classifies a JSON object into a settings tree. Keys keep their
// document order.
func DecodeJSON(data []byte) (*Group, error) {
	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.SettingsDecode(string(FormatJSON), err)
	}
	if dataType != jsonparser.Object {
		return nil, errors.SettingsDecode(string(FormatJSON), fmt.Errorf("root is %s, not an object", dataType))
	}

	root, err := jsonGroup(data)
	if err != nil {
		return nil, errors.SettingsDecode(string(FormatJSON), err)
	}
	return root, nil
}

func jsonGroup(data []byte) (*Group, error) {
	g := NewGroup()
	err := jsonparser.ObjectEach(data, func(rawKey, value []byte, dataType jsonparser.ValueType, _ int) error {
		key, err := jsonparser.ParseString(rawKey)
		if err != nil {
			return fmt.Errorf("key %q: %w", rawKey, err)
		}
		node, err := jsonNode(value, dataType)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		g.Set(key, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func jsonNode(value []byte, dataType jsonparser.ValueType) (Node, error) {
	switch dataType {
	case jsonparser.Object:
		typeValue, typeType, _, err := jsonparser.Get(value, TypeKey)
		if err == nil {
			leaf := &Leaf{Payload: json.RawMessage(append([]byte(nil), value...))}
			if typeType == jsonparser.String {
				leaf.Type, _ = jsonparser.ParseString(typeValue)
			} else {
				leaf.Type = string(typeValue)
			}
			return leaf, nil
		}
		if err != jsonparser.KeyPathNotFoundError {
			return nil, err
		}
		return jsonGroup(value)
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		return &Leaf{Payload: s}, nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			return nil, err
		}
		return &Leaf{Payload: f}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, err
		}
		return &Leaf{Payload: b}, nil
	case jsonparser.Null:
		return &Leaf{}, nil
	default:
		return &Leaf{Payload: json.RawMessage(append([]byte(nil), value...))}, nil
	}
}

// DecodeYAML classifies a YAML mapping into a settings tree. Keys keep their
// document order.
func DecodeYAML(data []byte) (*Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.SettingsDecode(string(FormatYAML), err)
	}
	if doc.Kind == 0 {
		return NewGroup(), nil
	}

	w := &yamlWalker{visiting: make(map[*yaml.Node]bool)}
	root, err := w.resolve(&doc)
	if err != nil {
		return nil, errors.SettingsDecode(string(FormatYAML), err)
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		if root, err = w.resolve(root.Content[0]); err != nil {
			return nil, errors.SettingsDecode(string(FormatYAML), err)
		}
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.SettingsDecode(string(FormatYAML), fmt.Errorf("root is not a mapping"))
	}

	g, err := w.group(root)
	if err != nil {
		return nil, errors.SettingsDecode(string(FormatYAML), err)
	}
	return g, nil
}

// maxYAMLAliases bounds alias expansion so chained anchors cannot blow up
// the tree.
const maxYAMLAliases = 1000

// yamlWalker tracks the mappings on the current descent so an alias that
// points back at an ancestor is reported instead of followed.
type yamlWalker struct {
	visiting map[*yaml.Node]bool
	aliases  int
}

func (w *yamlWalker) group(n *yaml.Node) (*Group, error) {
	if w.visiting[n] {
		return nil, fmt.Errorf("alias refers to an enclosing mapping at line %d", n.Line)
	}
	w.visiting[n] = true
	defer delete(w.visiting, n)

	g := NewGroup()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := w.resolve(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		child, err := w.node(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		g.Set(key, child)
	}
	return g, nil
}

func (w *yamlWalker) node(n *yaml.Node) (Node, error) {
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value != TypeKey {
				continue
			}
			var payload map[string]any
			if err := n.Decode(&payload); err != nil {
				return nil, err
			}
			return &Leaf{Type: n.Content[i+1].Value, Payload: payload}, nil
		}
		return w.group(n)
	}

	var payload any
	if err := n.Decode(&payload); err != nil {
		return nil, err
	}
	return &Leaf{Payload: payload}, nil
}

func (w *yamlWalker) resolve(n *yaml.Node) (*yaml.Node, error) {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		w.aliases++
		if w.aliases > maxYAMLAliases {
			return nil, fmt.Errorf("more than %d alias expansions", maxYAMLAliases)
		}
		n = n.Alias
	}
	return n, nil
}

// FromMap classifies an already-decoded map. Go maps carry no order, so
// children are added in sorted key order.
func FromMap(m map[string]any) *Group {
	g := NewGroup()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		g.Set(k, fromValue(m[k]))
	}
	return g
}

func fromValue(v any) Node {
	obj, ok := v.(map[string]any)
	if !ok {
		return &Leaf{Payload: v}
	}
	if t, has := obj[TypeKey]; has {
		return &Leaf{Type: fmt.Sprint(t), Payload: obj}
	}
	return FromMap(obj)
}
