package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IDList accepts a single category id or a list of ids. Zero and negative
// ids carry expansion/exclusion semantics, resolved by the aggregator once
// the project's categories are known.
type IDList []int64

// UnmarshalYAML accepts `id: 0` and `id: [12, -3]`.
func (l *IDList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var id int64
		if err := value.Decode(&id); err != nil {
			return fmt.Errorf("category id: %w", err)
		}
		*l = IDList{id}
		return nil
	case yaml.SequenceNode:
		var ids []int64
		if err := value.Decode(&ids); err != nil {
			return fmt.Errorf("category id list: %w", err)
		}
		*l = IDList(ids)
		return nil
	default:
		return fmt.Errorf("category id: expected int or list of ints")
	}
}

// StringList accepts a single string or a list of strings. Used for the
// response data-key path.
type StringList []string

// UnmarshalYAML accepts `dataKey: data` and `dataKey: [data, list]`.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	default:
		return fmt.Errorf("expected string or list of strings")
	}
}
