package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.).
	// The returned map must hold exactly the parameters the fragment
	// introduces; the builder advances paramIndex by its length.
	SQL(paramIndex int) (string, map[string]interface{})
}

// comparison implements binary comparisons (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "active") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Gt creates a "field > value" condition.
func Gt(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">", value: value}
}

// Gte creates a "field >= value" condition.
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// Lt creates a "field < value" condition.
func Lt(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<", value: value}
}

// Lte creates a "field <= value" condition.
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	params := map[string]interface{}{
		paramName: c.value,
	}
	return sql, params
}

// containsFold matches a literal substring in any of several fields,
// ignoring case.
type containsFold struct {
	fields []string
	value  string
}

// ContainsFold creates a case-insensitive substring match of value against
// one or more fields, OR-ed together. The value is matched literally: LIKE
// wildcards in it carry no special meaning.
// Example: ContainsFold("usb", "name", "description") generates
// "(STRPOS(LOWER(name), @p0) > 0 OR STRPOS(LOWER(description), @p0) > 0)"
func ContainsFold(value string, fields ...string) Condition {
	return &containsFold{fields: fields, value: value}
}

// SQL generates the SQL fragment for the substring match. All fields share
// one parameter.
func (c *containsFold) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	parts := make([]string, 0, len(c.fields))
	for _, field := range c.fields {
		parts = append(parts, fmt.Sprintf("STRPOS(LOWER(%s), @%s) > 0", field, paramName))
	}
	sql := strings.Join(parts, " OR ")
	if len(parts) > 1 {
		sql = "(" + sql + ")"
	}
	return sql, map[string]interface{}{
		paramName: strings.ToLower(c.value),
	}
}

// or groups conditions with OR logic.
type or struct {
	conditions []Condition
}

// Or combines conditions with OR logic inside parentheses.
func Or(conditions ...Condition) Condition {
	return &or{conditions: conditions}
}

// SQL generates the SQL fragment for the OR group.
func (c *or) SQL(paramIndex int) (string, map[string]interface{}) {
	return group(c.conditions, " OR ", paramIndex)
}

func group(conditions []Condition, sep string, paramIndex int) (string, map[string]interface{}) {
	params := make(map[string]interface{})
	parts := make([]string, 0, len(conditions))
	for _, condition := range conditions {
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return "(" + strings.Join(parts, sep) + ")", params
}

// and groups conditions with AND logic, for nesting inside Or.
type and struct {
	conditions []Condition
}

// And combines conditions with AND logic inside parentheses. Top-level
// Where conditions are already AND-ed; And is for use inside Or.
func And(conditions ...Condition) Condition {
	return &and{conditions: conditions}
}

// SQL generates the SQL fragment for the AND group.
func (c *and) SQL(paramIndex int) (string, map[string]interface{}) {
	return group(c.conditions, " AND ", paramIndex)
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("processed_at") generates "processed_at IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("processed_at") generates "processed_at IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}
