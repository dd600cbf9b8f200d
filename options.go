package maple

import "github.com/rs/zerolog"

// ParseOptions controls tokenizing and parsing.
type ParseOptions struct {
	// DisableComments disables // and /* */ comments.
	DisableComments bool `yaml:"disable_comments"`
}

// EvalOptions controls evaluation.
type EvalOptions struct {
	// Logger receives trace events for evaluated statements and debug events for
	// failures. Nil discards them.
	Logger *zerolog.Logger `yaml:"-"`
	// Parse holds the options used to parse the source.
	Parse ParseOptions `yaml:"parse"`
	// MaxIntBits bounds the bit length of Integer results (default DefaultMaxIntBits).
	MaxIntBits int `yaml:"max_int_bits"`
}

// ValidateOptions controls static validation rules.
type ValidateOptions struct {
	// DisableTypeCheck disables operand kind checks of operators on literals.
	DisableTypeCheck bool `yaml:"disable_type_check"`
	// DisableAttributeCheck disables checks of built-in attribute names.
	DisableAttributeCheck bool `yaml:"disable_attribute_check"`
	// DisableIndexCheck disables bound checks of literal array indexes.
	DisableIndexCheck bool `yaml:"disable_index_check"`
	// DisableNamespaceCheck disables checks of namespace names.
	DisableNamespaceCheck bool `yaml:"disable_namespace_check"`
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{}
	}

	return *o
}

// normalize normalizes the EvalOptions.
func (o *EvalOptions) normalize() EvalOptions {
	var out EvalOptions
	if o != nil {
		out = *o
	}

	if out.Logger == nil {
		nop := zerolog.Nop()
		out.Logger = &nop
	}
	if out.MaxIntBits <= 0 {
		out.MaxIntBits = DefaultMaxIntBits
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{}
	}

	return *o
}
