package pgsql

import (
	"context"

	"github.com/pkg/errors"
)

/*
	schema "" means the current schema. It is asked for every time, the
	search_path may have changed since the last call.
*/
func (m *Manager) resolveSchema(ctx context.Context, schema string) (string, error) {
	if schema != "" {
		return schema, nil
	}
	return m.CurrentSchema(ctx)
}

func (m *Manager) CurrentSchema(ctx context.Context) (string, error) {
	s, ok, err := RemoteGetCurrentSchema(ctx, m)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.Wrap(ErrNotFound, "no current schema, search_path does not name any existing schema")
	}
	return s, nil
}

func (m *Manager) CurrentDatabase(ctx context.Context) (string, error) {
	return RemoteGetCurrentDatabase(ctx, m)
}

func (m *Manager) SearchPath(ctx context.Context) ([]string, error) {
	return RemoteGetSearchPath(ctx, m)
}

func (m *Manager) AllDatabases(ctx context.Context) ([]string, error) {
	return RemoteGetAllDatabases(ctx, m)
}

func (m *Manager) AllSchemas(ctx context.Context) ([]string, error) {
	return RemoteGetAllSchemas(ctx, m)
}

func (m *Manager) AllRoles(ctx context.Context) ([]string, error) {
	return RemoteGetAllRoles(ctx, m)
}

func (m *Manager) AllUsers(ctx context.Context) ([]string, error) {
	return RemoteGetAllUsers(ctx, m)
}

func (m *Manager) AllExtensions(ctx context.Context) ([]string, error) {
	return RemoteGetAllExtensions(ctx, m)
}

func (m *Manager) AvailableExtensions(ctx context.Context) ([]string, error) {
	return RemoteGetAvailableExtensions(ctx, m)
}

func (m *Manager) AllTablesInSchema(ctx context.Context, schema string) ([]string, error) {
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return nil, err
	}
	return m.tablesIn(ctx, schema)
}

// columns in their ordinal order
func (m *Manager) AllColumnsInTable(ctx context.Context, table, schema string) ([]string, error) {
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return nil, err
	}
	return m.columnsIn(ctx, table, schema)
}

func (m *Manager) ExtensionSchema(ctx context.Context, ext string) (string, error) {
	ok, err := m.ExtensionExists(ctx, ext)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", notFound("extension", ext)
	}
	s, _, err := RemoteGetExtensionSchema(ctx, m, ext)
	return s, err
}

func (m *Manager) DatabaseExists(ctx context.Context, name string) (bool, error) {
	return m.contains(ctx, RemoteGetAllDatabases, name)
}

func (m *Manager) SchemaExists(ctx context.Context, name string) (bool, error) {
	return m.contains(ctx, RemoteGetAllSchemas, name)
}

// roles which cannot log in
func (m *Manager) RoleExists(ctx context.Context, name string) (bool, error) {
	return m.contains(ctx, RemoteGetAllRoles, name)
}

// roles which can log in
func (m *Manager) UserExists(ctx context.Context, name string) (bool, error) {
	return m.contains(ctx, RemoteGetAllUsers, name)
}

func (m *Manager) ExtensionExists(ctx context.Context, name string) (bool, error) {
	return m.contains(ctx, RemoteGetAllExtensions, name)
}

// TableExists returns ErrNotFound when the schema itself is missing.
func (m *Manager) TableExists(ctx context.Context, table, schema string) (bool, error) {
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return false, err
	}
	tables, err := m.tablesIn(ctx, schema)
	if err != nil {
		return false, err
	}
	return HelperContains(tables, table), nil
}

// ColumnExists returns ErrNotFound when the schema or the table is missing.
func (m *Manager) ColumnExists(ctx context.Context, table, column, schema string) (bool, error) {
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return false, err
	}
	cols, err := m.columnsIn(ctx, table, schema)
	if err != nil {
		return false, err
	}
	return HelperContains(cols, column), nil
}

func (m *Manager) contains(
	ctx context.Context,
	list func(context.Context, Querier) ([]string, error),
	name string,
) (bool, error) {
	all, err := list(ctx, m)
	if err != nil {
		return false, err
	}
	return HelperContains(all, name), nil
}

func (m *Manager) requireSchema(ctx context.Context, schema string) error {
	ok, err := m.SchemaExists(ctx, schema)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("schema", schema)
	}
	return nil
}

/*
	tables of an existing (resolved) schema
*/
func (m *Manager) tablesIn(ctx context.Context, schema string) ([]string, error) {
	if err := m.requireSchema(ctx, schema); err != nil {
		return nil, err
	}
	return RemoteGetAllTables(ctx, m, schema)
}

func (m *Manager) requireTable(ctx context.Context, table, schema string) ([]string, error) {
	tables, err := m.tablesIn(ctx, schema)
	if err != nil {
		return nil, err
	}
	if !HelperContains(tables, table) {
		return nil, notFound("table", schema+"."+table)
	}
	return tables, nil
}

/*
	columns of an existing table in an existing (resolved) schema
*/
func (m *Manager) columnsIn(ctx context.Context, table, schema string) ([]string, error) {
	if _, err := m.requireTable(ctx, table, schema); err != nil {
		return nil, err
	}
	return RemoteGetAllColumns(ctx, m, schema, table)
}
