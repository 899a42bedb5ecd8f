package pgsql

import (
	"context"
	"strings"
)

/*
	catalog reads. Every function takes whatever it reads through,
	in practice the Manager, which also displays the query.
*/

const (
	queryAllDatabases = `SELECT datname FROM pg_database WHERE datistemplate = false`

	queryAllSchemas = `SELECT schema_name FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		AND schema_name NOT LIKE 'pg\_%'`

	queryAllTables = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1`

	queryAllColumns = `SELECT column_name FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`

	queryAllRoles = `SELECT rolname FROM pg_roles WHERE rolcanlogin = false`

	queryAllUsers = `SELECT rolname FROM pg_roles WHERE rolcanlogin = true`

	queryAllRoleNames = `SELECT rolname FROM pg_roles`

	queryAllExtensions = `SELECT extname FROM pg_extension`

	queryAvailableExtensions = `SELECT name FROM pg_available_extensions`

	queryExtensionSchema = `SELECT n.nspname FROM pg_namespace n
		JOIN pg_extension e ON n.oid = e.extnamespace
		WHERE e.extname = $1`

	queryCurrentSchema = `SELECT current_schema()`

	queryCurrentDatabase = `SELECT current_database()`

	querySearchPath = `SHOW search_path`
)

func RemoteGetStrings(ctx context.Context, q Querier, query string, args ...interface{}) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return HelperMapStrings(rows)
}

/*
	first value of a single column query, ok is false when there was none (or it was NULL)
*/
func RemoteGetString(ctx context.Context, q Querier, query string, args ...interface{}) (string, bool, error) {
	res, err := RemoteGetStrings(ctx, q, query, args...)
	if err != nil || len(res) == 0 {
		return "", false, err
	}
	return res[0], true, nil
}

func RemoteGetAllDatabases(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllDatabases)
}

func RemoteGetAllSchemas(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllSchemas)
}

func RemoteGetAllTables(ctx context.Context, q Querier, schema string) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllTables, schema)
}

func RemoteGetAllColumns(ctx context.Context, q Querier, schema, table string) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllColumns, schema, table)
}

func RemoteGetAllRoles(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllRoles)
}

func RemoteGetAllUsers(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllUsers)
}

// roles and users together
func RemoteGetAllRoleNames(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllRoleNames)
}

func RemoteGetAllExtensions(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAllExtensions)
}

func RemoteGetAvailableExtensions(ctx context.Context, q Querier) ([]string, error) {
	return RemoteGetStrings(ctx, q, queryAvailableExtensions)
}

func RemoteGetExtensionSchema(ctx context.Context, q Querier, ext string) (string, bool, error) {
	return RemoteGetString(ctx, q, queryExtensionSchema, ext)
}

// ok is false when search_path has no existing schema in it
func RemoteGetCurrentSchema(ctx context.Context, q Querier) (string, bool, error) {
	return RemoteGetString(ctx, q, queryCurrentSchema)
}

func RemoteGetCurrentDatabase(ctx context.Context, q Querier) (string, error) {
	s, _, err := RemoteGetString(ctx, q, queryCurrentDatabase)
	return s, err
}

func RemoteGetSearchPath(ctx context.Context, q Querier) ([]string, error) {
	s, _, err := RemoteGetString(ctx, q, querySearchPath)
	if err != nil {
		return nil, err
	}
	return ParseSearchPath(s), nil
}

/*
	"$user", public, "My, Schema" -> [$user public My, Schema]
	commas inside quotes belong to the name, "" inside quotes is a quote
*/
func ParseSearchPath(s string) []string {
	ret := make([]string, 0, 4)
	var cur strings.Builder
	quoted := false
	inQuote := false

	flush := func() {
		p := cur.String()
		if !quoted {
			p = strings.TrimSpace(p)
		}
		if p != "" {
			ret = append(ret, p)
		}
		cur.Reset()
		quoted = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '"' && i+1 < len(s) && s[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inQuote = !inQuote
			if inQuote {
				cur.Reset()
				quoted = true
			}
		case !inQuote && c == ',':
			flush()
		case !inQuote && quoted:
			// whitespace after a closing quote
		default:
			cur.WriteByte(c)
		}
	}
	flush()

	return ret
}
