package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

const customPriceLiteral = "Custom"

// UnmarshalYAML implements yaml.Unmarshaler for Price.
// A number decodes to Numeric, the string "Custom" to CustomQuote.
func (p *Price) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", value.Line)
	}

	switch value.ShortTag() {
	case "!!int", "!!float":
		amount, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: price: %w", value.Line, err)
		}
		*p = Numeric(amount)
		return nil
	case "!!str":
		if strings.EqualFold(strings.TrimSpace(value.Value), customPriceLiteral) {
			*p = CustomQuote()
			return nil
		}
	}

	return fmt.Errorf("line %d: price %q: want a number or %q", value.Line, value.Value, customPriceLiteral)
}

// MarshalYAML implements yaml.Marshaler for Price.
func (p Price) MarshalYAML() (interface{}, error) {
	if p.kind == PriceCustom {
		return customPriceLiteral, nil
	}
	if p.amount == math.Trunc(p.amount) && math.Abs(p.amount) < math.MaxInt64 {
		return int64(p.amount), nil
	}
	return p.amount, nil
}

// Value is a display value that is either text or a number.
type Value struct {
	text    string
	num     float64
	numeric bool
}

// TextValue returns a text Value.
func TextValue(s string) Value { return Value{text: s} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{num: n, numeric: true} }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.numeric }

// Number returns the numeric value. ok is false for text values.
func (v Value) Number() (n float64, ok bool) {
	return v.num, v.numeric
}

// String formats the value for display. Whole numbers get thousands separators.
func (v Value) String() string {
	if !v.numeric {
		return v.text
	}
	if v.num == math.Trunc(v.num) {
		return humanize.Comma(int64(v.num))
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// UnmarshalYAML implements yaml.Unmarshaler for Value.
func (v *Value) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", value.Line)
	}
	switch value.ShortTag() {
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*v = NumberValue(n)
	default:
		*v = TextValue(value.Value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for Value.
func (v Value) MarshalYAML() (interface{}, error) {
	if !v.numeric {
		return v.text, nil
	}
	if v.num == math.Trunc(v.num) {
		return int64(v.num), nil
	}
	return v.num, nil
}

// Attr is one key/value row of an ordered attribute table.
type Attr struct {
	Key   string
	Value Value
}

// Attrs is an attribute table that keeps the order of the source document.
type Attrs []Attr

// Get returns the value stored under key.
func (a Attrs) Get(key string) (Value, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return Value{}, false
}

// UnmarshalYAML implements yaml.Unmarshaler for Attrs.
func (a *Attrs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}

	out := make(Attrs, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var v Value
		if err := valNode.Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", keyNode.Value, err)
		}
		out = append(out, Attr{Key: keyNode.Value, Value: v})
	}
	*a = out
	return nil
}

// MarshalYAML implements yaml.Marshaler for Attrs.
func (a Attrs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, attr := range a {
		var valNode yaml.Node
		raw, _ := attr.Value.MarshalYAML()
		if err := valNode.Encode(raw); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Key},
			&valNode,
		)
	}
	return node, nil
}
