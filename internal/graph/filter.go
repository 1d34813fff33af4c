package graph

type Op string

const (
	OpEq           Op = "eq"
	OpGte          Op = "gte"
	OpLte          Op = "lte"
	OpContains     Op = "contains"
	OpContainsFold Op = "contains_fold"
	OpAnd          Op = "and"
	OpOr           Op = "or"
)

// Filter is one predicate over node properties. Leaf filters compare a
// single property against a value; OpAnd/OpOr combine Sub filters.
type Filter struct {
	Op    Op
	Field string
	Value any
	Sub   []Filter
}

func Eq(field string, value any) Filter {
	return Filter{Op: OpEq, Field: field, Value: value}
}

// Gte matches nodes whose property is >= value. Numeric values compare
// numerically, everything else compares as strings.
func Gte(field string, value any) Filter {
	return Filter{Op: OpGte, Field: field, Value: value}
}

func Lte(field string, value any) Filter {
	return Filter{Op: OpLte, Field: field, Value: value}
}

// Contains matches case-sensitive substring containment.
func Contains(field, value string) Filter {
	return Filter{Op: OpContains, Field: field, Value: value}
}

// ContainsFold matches case-insensitive substring containment.
func ContainsFold(field, value string) Filter {
	return Filter{Op: OpContainsFold, Field: field, Value: value}
}

func And(filters ...Filter) Filter {
	return Filter{Op: OpAnd, Sub: filters}
}

func Or(filters ...Filter) Filter {
	return Filter{Op: OpOr, Sub: filters}
}
