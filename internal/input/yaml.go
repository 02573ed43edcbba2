package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML keeps quoted values as localized text. Plain YAML numbers
// already use '.' as the decimal point, so they are rewritten into text that
// ParseNumber reads the same way under either decimal mark.
func (r *RawInputs) UnmarshalYAML(node *yaml.Node) error {
	type plain RawInputs
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			continue
		}
		if tag := val.ShortTag(); tag != "!!int" && tag != "!!float" {
			continue
		}
		for _, f := range fields {
			if f.name != key.Value {
				continue
			}
			value, err := yamlNumber(val)
			if err != nil {
				return &FieldError{Field: f.name, Value: val.Value, Err: err}
			}
			*f.raw(r) = NumberText(value)
		}
	}
	return nil
}

func yamlNumber(node *yaml.Node) (decimal.Decimal, error) {
	text := strings.ReplaceAll(node.Value, "_", "")
	if d, err := decimal.NewFromString(text); err == nil {
		return d, nil
	}
	// Hex and octal integers
	if node.ShortTag() == "!!int" {
		if n, err := strconv.ParseInt(text, 0, 64); err == nil {
			return decimal.NewFromInt(n), nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, node.Value)
}

// NumberText renders d so that ParseNumber returns d for any decimal mark.
// A fraction of exactly three digits would read as a thousands group, so it
// gets a trailing zero.
func NumberText(d decimal.Decimal) string {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 == 3 {
		s += "0"
	}
	return s
}
