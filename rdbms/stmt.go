package rdbms

import "strings"

/*
	Common SQL statement pieces, so drivers dont copy-paste the same functions.
	Quoting is always done by the driver, which passes its own quote func in.
*/

func StmtColumnNameAndType(quote func(string) string, column *Column) string {
	return quote(column.Name) + " " + column.Type
}

func StmtColumnDefs(quote func(string) string, columns []Column) string {
	defs := make([]string, len(columns))
	for i := range columns {
		defs[i] = StmtColumnNameAndType(quote, &columns[i])
	}
	return strings.Join(defs, ", ")
}

func StmtQualifiedName(quote func(string) string, parts ...string) string {
	q := make([]string, len(parts))
	for i := range parts {
		q[i] = quote(parts[i])
	}
	return strings.Join(q, ".")
}
