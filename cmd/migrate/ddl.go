package main

import "strings"

// splitDDLStatements drops "--" comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// createdTable returns the table a CREATE TABLE statement defines, lower-cased,
// or "" for any other statement.
func createdTable(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") || !strings.EqualFold(fields[1], "TABLE") {
		return ""
	}
	name := fields[2]
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.Trim(name, "`"))
}

func existingTables(schema []string) map[string]bool {
	tables := make(map[string]bool)
	for _, stmt := range schema {
		if table := createdTable(stmt); table != "" {
			tables[table] = true
		}
	}
	return tables
}

// pendingStatements filters out CREATE TABLE statements for existing tables.
func pendingStatements(statements []string, existing map[string]bool) []string {
	var out []string
	for _, stmt := range statements {
		if table := createdTable(stmt); table != "" && existing[table] {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
