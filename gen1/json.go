package gen1

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// serializeOptions provides options for Serialize.
type serializeOptions struct {
	Indent string
}

// SerializeOption provides options for Serialize.
type SerializeOption func(serializeOptions) (serializeOptions, error)

// WithIndent indents the output with indent.
func WithIndent(indent string) SerializeOption {
	return func(o serializeOptions) (serializeOptions, error) {
		o.Indent = indent
		return o, nil
	}
}

// Serialize writes the Battle's State as JSON. Output is deterministic: the same buffer and
// names always produce the same bytes.
func (b *Battle) Serialize(options ...SerializeOption) ([]byte, error) {
	opts := serializeOptions{}
	for _, o := range options {
		var err error
		opts, err = o(opts)
		if err != nil {
			return nil, err
		}
	}

	jopts := []json.Options{json.Deterministic(true)}
	if opts.Indent != "" {
		jopts = append(jopts, jsontext.WithIndent(opts.Indent))
	}
	return json.Marshal(b.State(), jopts...)
}

// MarshalJSON implements json.Marshaler with the output of Serialize.
func (b *Battle) MarshalJSON() ([]byte, error) {
	return b.Serialize()
}

// Deserialize decodes the output of Serialize.
func Deserialize(b []byte) (*State, error) {
	st := &State{}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, err
	}
	return st, nil
}
