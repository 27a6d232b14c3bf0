package linear

import "gopkg.in/yaml.v3"

// yamlEntry mirrors Entry with exported field names yaml.v3 can marshal
// without struct tags cluttering the public Entry type.
type yamlEntry[T any] struct {
	Depth uint32 `yaml:"depth"`
	Value T      `yaml:"value"`
}

// MarshalSequenceYAML renders a linearized sequence as YAML text: a list of
// {depth, value} mappings in DFS pre-order.
func MarshalSequenceYAML[T any](entries []Entry[T]) ([]byte, error) {
	out := make([]yamlEntry[T], len(entries))
	for i, e := range entries {
		out[i] = yamlEntry[T]{Depth: e.Depth, Value: e.Value}
	}

	return yaml.Marshal(out)
}

// UnmarshalSequenceYAML parses a linearized sequence previously produced by
// [MarshalSequenceYAML]. It does not itself validate the sequence's shape;
// pass the result to [Import] for that.
func UnmarshalSequenceYAML[T any](data []byte) ([]Entry[T], error) {
	var raw []yamlEntry[T]
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	entries := make([]Entry[T], len(raw))
	for i, e := range raw {
		entries[i] = Entry[T]{Depth: e.Depth, Value: e.Value}
	}

	return entries, nil
}
