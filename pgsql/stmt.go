package pgsql

import (
	"strings"

	"github.com/kzaag/pgm/rdbms"
	"github.com/lib/pq"
)

/*
	Statement builders.

	Identifiers only ever get into sql text through Ident (pq.QuoteIdentifier).
	Values never get into sql text, they go as bound parameters.
	Column types are expected to be normalized already (see NormalizeType),
	which makes them safe to write verbatim.
*/

// Ident is a sql identifier, String returns it quoted
type Ident string

func (i Ident) String() string {
	return pq.QuoteIdentifier(string(i))
}

func quoteIdent(s string) string {
	return pq.QuoteIdentifier(s)
}

func StmtQualified(schema, name string) string {
	return rdbms.StmtQualifiedName(quoteIdent, schema, name)
}

func StmtCreateDatabase(name string) string {
	return "CREATE DATABASE " + Ident(name).String()
}

func StmtDropDatabase(name string) string {
	return "DROP DATABASE " + Ident(name).String()
}

func StmtCreateSchema(name string) string {
	return "CREATE SCHEMA " + Ident(name).String()
}

func StmtDropSchema(name string, cascade bool) string {
	ret := "DROP SCHEMA " + Ident(name).String()
	if cascade {
		ret += " CASCADE"
	}
	return ret
}

func StmtCreateRole(name string, login bool) string {
	ret := "CREATE ROLE " + Ident(name).String()
	if login {
		ret += " LOGIN"
	}
	return ret
}

func StmtDropRole(name string) string {
	return "DROP ROLE " + Ident(name).String()
}

func StmtCreateExtension(ext, schema string) string {
	return "CREATE EXTENSION " + Ident(ext).String() + " SCHEMA " + Ident(schema).String()
}

func StmtAlterExtensionSchema(ext, schema string) string {
	return "ALTER EXTENSION " + Ident(ext).String() + " SET SCHEMA " + Ident(schema).String()
}

func StmtCreateTable(schema, table string, columns []rdbms.Column) string {
	return "CREATE TABLE " + StmtQualified(schema, table) +
		" (" + rdbms.StmtColumnDefs(quoteIdent, columns) + ")"
}

func StmtDropTable(schema, table string) string {
	return "DROP TABLE " + StmtQualified(schema, table)
}

/*
	DROP + CREATE as one batch, the caller decides when it gets committed
*/
func StmtRecreateTable(schema, table string, columns []rdbms.Column) string {
	return StmtDropTable(schema, table) + ";\n" + StmtCreateTable(schema, table, columns)
}

func StmtAddColumn(schema, table string, column *rdbms.Column) string {
	return "ALTER TABLE " + StmtQualified(schema, table) +
		" ADD COLUMN " + rdbms.StmtColumnNameAndType(quoteIdent, column)
}

func StmtRenameColumn(schema, table, column, to string) string {
	return "ALTER TABLE " + StmtQualified(schema, table) +
		" RENAME COLUMN " + Ident(column).String() + " TO " + Ident(to).String()
}

func StmtRenameTable(schema, table, to string) string {
	return "ALTER TABLE " + StmtQualified(schema, table) + " RENAME TO " + Ident(to).String()
}

func StmtSetSearchPath(schemas []string) string {
	q := make([]string, len(schemas))
	for i := range schemas {
		q[i] = Ident(schemas[i]).String()
	}
	return "SET search_path TO " + strings.Join(q, ", ")
}

// postgis, arguments: schema, table, column, srid, type, dimension
const StmtAddGeometryColumn = `SELECT AddGeometryColumn($1, $2, $3, $4, $5, $6)`
