// Package database holds small SQL construction helpers shared by the repos.
package database

import (
	"fmt"
	"strings"
)

// ConditionType is the SQL operator applied between a column and its value.
type ConditionType string

const (
	Equal       ConditionType = "="
	GreaterThan ConditionType = ">"
	ILike       ConditionType = "ILIKE"
	IEqual      ConditionType = "iequal" // case-insensitive equality via LOWER()
)

// Condition is a single WHERE clause predicate.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
	// Raw, when set, is used verbatim with Value appended to args.
	Raw string
}

// WhereCond builds a column/operator/value condition.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond builds a condition from a raw SQL fragment. The fragment
// references its single parameter's placeholder position with %d (use %[1]d
// to repeat it), e.g. "(title ILIKE $%[1]d OR description ILIKE $%[1]d)".
func WhereRawCond(raw string, value any) Condition {
	return Condition{Raw: raw, Value: value}
}

// ListQueryOptions describes a filtered, ordered, paginated SELECT.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

// BuildListQuery renders the options into a query string and its args.
// OrderBy and OrderDir must come from a caller-side allowlist; they are
// interpolated, not parameterized.
func BuildListQuery(opts ListQueryOptions) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(opts.Conditions)+2)

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(opts.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(opts.Table)

	if len(opts.Conditions) > 0 {
		sb.WriteString(" WHERE ")
		for i, cond := range opts.Conditions {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			args = append(args, cond.Value)
			idx := len(args)
			switch {
			case cond.Raw != "":
				sb.WriteString(fmt.Sprintf(cond.Raw, idx))
			case cond.Type == IEqual:
				sb.WriteString(fmt.Sprintf("LOWER(%s) = LOWER($%d)", cond.Field, idx))
			default:
				sb.WriteString(fmt.Sprintf("%s %s $%d", cond.Field, cond.Type, idx))
			}
		}
	}

	if opts.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(opts.OrderBy)
		dir := strings.ToUpper(opts.OrderDir)
		if dir != "ASC" && dir != "DESC" {
			dir = "DESC"
		}
		sb.WriteString(" ")
		sb.WriteString(dir)
	}

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}

	return sb.String(), args
}
