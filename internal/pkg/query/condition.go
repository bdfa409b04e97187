package query

import "fmt"

// Condition is a WHERE clause fragment. paramIndex is the first free
// parameter number; a condition binding n values uses @p<paramIndex> up to
// @p<paramIndex+n-1>.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type prefixCondition struct {
	field  string
	prefix string
}

// HasPrefix matches rows whose field starts with prefix.
func HasPrefix(field, prefix string) Condition {
	return &prefixCondition{field: field, prefix: prefix}
}

func (c *prefixCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("STARTS_WITH(%s, @%s)", c.field, name), map[string]interface{}{name: c.prefix}
}
