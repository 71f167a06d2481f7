package domain

import (
	"fmt"
	"strings"
)

// Field names a filterable article attribute. The set is closed;
// unrecognized fields are rejected at the boundary.
type Field string

const (
	FieldPriority    Field = "priority"
	FieldPublishedAt Field = "publishedAt"
	FieldStatus      Field = "status"
	FieldSlug        Field = "slug"
	FieldIsDeleted   Field = "isDeleted"
)

// PublicFields are the only fields callers on the public surface may
// filter on. The rest are appended internally by the engine.
var PublicFields = map[Field]bool{
	FieldPriority:    true,
	FieldPublishedAt: true,
}

func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldPriority, FieldPublishedAt, FieldStatus, FieldSlug, FieldIsDeleted:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter field: %q", s)
	}
}

// Operator is a comparison applied by a filter.
type Operator string

const (
	OpEq  Operator = "=="
	OpNeq Operator = "!="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpGt  Operator = ">"
	OpGte Operator = ">="
)

func ParseOperator(s string) (Operator, error) {
	switch op := Operator(strings.TrimSpace(s)); op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return op, nil
	default:
		return "", fmt.Errorf("invalid filter operator: %q", s)
	}
}

// Filter is a single {field, operator, value} predicate handed to the
// primary store. Values are typed per field and validated up front.
type Filter struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

func (f Filter) Validate() error {
	if _, err := ParseField(string(f.Field)); err != nil {
		return err
	}
	if _, err := ParseOperator(string(f.Operator)); err != nil {
		return err
	}
	if f.Value == nil {
		return fmt.Errorf("filter on %q has no value", f.Field)
	}
	switch f.Field {
	case FieldPublishedAt:
		switch f.Value.(type) {
		case int64, int, float64:
		default:
			return fmt.Errorf("filter on %q requires a numeric value", f.Field)
		}
	case FieldPriority:
		s, ok := f.Value.(string)
		if !ok {
			return fmt.Errorf("filter on %q requires a string value", f.Field)
		}
		if _, err := ParsePriority(s); err != nil {
			return err
		}
	case FieldStatus:
		s, ok := f.Value.(string)
		if !ok {
			return fmt.Errorf("filter on %q requires a string value", f.Field)
		}
		if _, err := ParseStatus(s); err != nil {
			return err
		}
	case FieldSlug:
		if _, ok := f.Value.(string); !ok {
			return fmt.Errorf("filter on %q requires a string value", f.Field)
		}
	case FieldIsDeleted:
		if _, ok := f.Value.(bool); !ok {
			return fmt.Errorf("filter on %q requires a boolean value", f.Field)
		}
	}
	return nil
}

// Eq is shorthand for an equality filter.
func Eq(field Field, value any) Filter {
	return Filter{Field: field, Operator: OpEq, Value: value}
}
