package tween

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"
)

// Prop is one property declaration.
type Prop struct {
	Key   string
	Value interface{}
}

// Props lists properties in declaration order. Use it as the "props" value
// when the order tracks are driven in matters.
type Props []Prop

// property is one animated key in declaration order.
type property struct {
	key   string
	value interface{}
}

// entriesOf reads a props collection, keeping declaration order where the
// source has one and sorting by key otherwise.
func entriesOf(v interface{}) ([]property, error) {
	switch ordered := v.(type) {
	case Props:
		out := make([]property, 0, len(ordered))
		for _, p := range ordered {
			out = append(out, property{p.Key, p.Value})
		}
		return out, nil
	case yaml.MapSlice:
		out := make([]property, 0, len(ordered))
		for _, item := range ordered {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("property name %v is not a string", item.Key)
			}
			out = append(out, property{key, item.Value})
		}
		return out, nil
	}

	m, err := fieldsOf(v)
	if err != nil {
		return nil, err
	}
	out := make([]property, 0, len(m))
	for key, value := range m {
		out = append(out, property{key, value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out, nil
}

// fieldsOf converts the map shapes produced by Go literals and YAML decoding
// into a string-keyed map.
func fieldsOf(v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, nil
	case Config:
		return m, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("key %v is not a string", k)
			}
			out[key] = val
		}
		return out, nil
	case yaml.MapSlice:
		out := make(map[string]interface{}, len(m))
		for _, item := range m {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("key %v is not a string", item.Key)
			}
			out[key] = item.Value
		}
		return out, nil
	}
	return nil, fmt.Errorf("%T is not an object", v)
}

// ConfigFromYAML converts a decoded YAML mapping into a Config. Top-level
// property keys are moved under "props" so that their document order is kept.
func ConfigFromYAML(ms yaml.MapSlice) (Config, error) {
	c := make(Config, len(ms))
	var props yaml.MapSlice
	if raw, ok := lookupSlice(ms, keyProps); ok {
		nested, ok := raw.(yaml.MapSlice)
		if !ok {
			fields, err := fieldsOf(raw)
			if err != nil {
				return nil, &ConfigError{Key: keyProps, Reason: "bad props", Err: err}
			}
			c[keyProps] = fields
		} else {
			props = append(props, nested...)
		}
	}
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return nil, configErrorf(fmt.Sprint(item.Key), "key is not a string")
		}
		if key == keyProps {
			continue
		}
		if settings[key] {
			c[key] = item.Value
			continue
		}
		props = append(props, item)
	}
	if len(props) > 0 {
		if _, taken := c[keyProps]; taken {
			return nil, configErrorf(keyProps, "mix of props map and top-level properties")
		}
		c[keyProps] = props
	}
	return c, nil
}

func lookupSlice(ms yaml.MapSlice, key string) (interface{}, bool) {
	for _, item := range ms {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, true
		}
	}
	return nil, false
}
