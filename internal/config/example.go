package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"
)

// MarshalYAML 将配置编码为带注释的 YAML。
//
// key 取自 json tag，desc tag 作为注释：标量写在行尾，对象与列表写在上一行。
func MarshalYAML(cfg any) ([]byte, error) {
	node, err := encodeNode(reflect.ValueOf(cfg))
	if err != nil {
		return nil, err
	}
	node.HeadComment = "glossmark 配置, 复制为 .glossmark.yaml 并根据需要修改"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yamlv3.Node{Kind: yamlv3.DocumentNode, Content: []*yamlv3.Node{node}}); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}

func encodeNode(v reflect.Value) (*yamlv3.Node, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return encodeStruct(v)
	case reflect.Slice, reflect.Array:
		seq := &yamlv3.Node{Kind: yamlv3.SequenceNode}
		if v.Len() == 0 {
			seq.Style = yamlv3.FlowStyle
		}
		for i := range v.Len() {
			elem, err := encodeNode(v.Index(i))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, elem)
		}
		return seq, nil
	default:
		n := &yamlv3.Node{}
		if err := n.Encode(v.Interface()); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func encodeStruct(v reflect.Value) (*yamlv3.Node, error) {
	m := &yamlv3.Node{Kind: yamlv3.MappingNode}
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}

		val, err := encodeNode(v.Field(i))
		if err != nil {
			return nil, err
		}
		key := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: name}
		if desc := field.Tag.Get("desc"); desc != "" {
			if val.Kind == yamlv3.ScalarNode || val.Style == yamlv3.FlowStyle {
				val.LineComment = desc
			} else {
				key.HeadComment = desc
			}
		}
		m.Content = append(m.Content, key, val)
	}

	return m, nil
}
