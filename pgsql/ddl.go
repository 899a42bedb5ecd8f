package pgsql

import (
	"context"
	"strings"

	"github.com/kzaag/pgm/rdbms"
)

/*
	Every mutation goes: validate, check preconditions, build, execute, commit (if asked to).
	Nothing is sent before validation passed.
*/

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("empty %s name", kind)
	}
	return nil
}

/*
	CREATE DATABASE cannot run in a transaction block, so it goes straight
	to the connection. Fails with ErrTxInProgress if uncommitted statements are pending.
*/
func (m *Manager) CreateDatabase(ctx context.Context, name string) error {
	if err := requireName("database", name); err != nil {
		return err
	}
	return m.withAutocommit(func() error {
		ok, err := m.DatabaseExists(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			m.log.Info("database already exists, skipping", "database", name)
			return nil
		}
		_, err = m.Execute(ctx, StmtCreateDatabase(name))
		return err
	})
}

func (m *Manager) DropDatabase(ctx context.Context, name string) error {
	if err := requireName("database", name); err != nil {
		return err
	}
	return m.withAutocommit(func() error {
		ok, err := m.DatabaseExists(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("database", name)
		}
		_, err = m.Execute(ctx, StmtDropDatabase(name))
		return err
	})
}

func (m *Manager) CreateSchema(ctx context.Context, name string, commit bool) error {
	if err := requireName("schema", name); err != nil {
		return err
	}
	ok, err := m.SchemaExists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		m.log.Info("schema already exists, skipping", "schema", name)
		return nil
	}
	if _, err = m.Execute(ctx, StmtCreateSchema(name)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) DropSchema(ctx context.Context, name string, cascade, commit bool) error {
	if err := requireName("schema", name); err != nil {
		return err
	}
	if err := m.requireSchema(ctx, name); err != nil {
		return err
	}
	if _, err := m.Execute(ctx, StmtDropSchema(name, cascade)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

/*
	roles and users share one namespace on the server,
	so both look at every role name.
*/
func (m *Manager) createRole(ctx context.Context, kind, name string, login, commit bool) error {
	if err := requireName(kind, name); err != nil {
		return err
	}
	ok, err := m.contains(ctx, RemoteGetAllRoleNames, name)
	if err != nil {
		return err
	}
	if ok {
		m.log.Info(kind+" already exists, skipping", kind, name)
		return nil
	}
	if _, err = m.Execute(ctx, StmtCreateRole(name, login)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

// CreateRole creates a role which cannot log in.
func (m *Manager) CreateRole(ctx context.Context, name string, commit bool) error {
	return m.createRole(ctx, "role", name, false, commit)
}

// CreateUser creates a role with LOGIN.
func (m *Manager) CreateUser(ctx context.Context, name string, commit bool) error {
	return m.createRole(ctx, "user", name, true, commit)
}

func (m *Manager) DropRole(ctx context.Context, name string, commit bool) error {
	if err := requireName("role", name); err != nil {
		return err
	}
	ok, err := m.contains(ctx, RemoteGetAllRoleNames, name)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("role", name)
	}
	if _, err = m.Execute(ctx, StmtDropRole(name)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

/*
	CreateExtension installs ext into schema. The name has to be one the server
	offers (pg_available_extensions). An extension which is already installed
	somewhere else gets moved.
*/
func (m *Manager) CreateExtension(ctx context.Context, ext, schema string, commit bool) error {
	if err := requireName("extension", ext); err != nil {
		return err
	}
	available, err := m.AvailableExtensions(ctx)
	if err != nil {
		return err
	}
	if !HelperContains(available, ext) {
		return invalid("extension \"%s\" is not available on this server", ext)
	}

	if schema, err = m.resolveSchema(ctx, schema); err != nil {
		return err
	}
	if err = m.requireSchema(ctx, schema); err != nil {
		return err
	}

	installed, err := m.ExtensionExists(ctx, ext)
	if err != nil {
		return err
	}
	if installed {
		return m.SwitchExtensionSchema(ctx, ext, schema, commit)
	}

	if _, err = m.Execute(ctx, StmtCreateExtension(ext, schema)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) SwitchExtensionSchema(ctx context.Context, ext, schema string, commit bool) error {
	if err := requireName("extension", ext); err != nil {
		return err
	}
	current, err := m.ExtensionSchema(ctx, ext)
	if err != nil {
		return err
	}
	if schema, err = m.resolveSchema(ctx, schema); err != nil {
		return err
	}
	if current == schema {
		m.log.Info("extension already in schema, skipping", "extension", ext, "schema", schema)
		return nil
	}
	if err = m.requireSchema(ctx, schema); err != nil {
		return err
	}
	if _, err = m.Execute(ctx, StmtAlterExtensionSchema(ext, schema)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

/*
	names and types resolved, checked and normalized.
	Nothing here talks to the server.
*/
func prepareColumns(names []string, types rdbms.ColumnTypes) ([]rdbms.Column, error) {
	cols, err := rdbms.ResolveColumns(names, types)
	if err != nil {
		return nil, invalidCause(err)
	}
	for i := range cols {
		if err = ValidateColumnName(cols[i].Name); err != nil {
			return nil, err
		}
		if cols[i].Type, err = NormalizeType(cols[i].Type); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

/*
	CreateTable creates table with the given columns.

	ifExists decides what happens when the table is already there:
	IfExistsSkip leaves it alone, IfExistsDrop drops and creates it in one batch,
	IfExistsFail sends CREATE TABLE anyway and returns the server error.
	An empty value means skip.
*/
func (m *Manager) CreateTable(
	ctx context.Context,
	table string,
	names []string,
	types rdbms.ColumnTypes,
	schema string,
	ifExists rdbms.IfExists,
	commit bool,
) error {
	if err := requireName("table", table); err != nil {
		return err
	}
	mode, ok := rdbms.ParseIfExists(string(ifExists))
	if !ok {
		return invalid("unknown if_exists value \"%s\", expected skip, drop or fail", ifExists)
	}
	cols, err := prepareColumns(names, types)
	if err != nil {
		return err
	}

	if schema, err = m.resolveSchema(ctx, schema); err != nil {
		return err
	}
	tables, err := m.tablesIn(ctx, schema)
	if err != nil {
		return err
	}

	var stmt string
	switch exists := HelperContains(tables, table); {
	case exists && mode == rdbms.IfExistsSkip:
		m.log.Info("table already exists, skipping", "schema", schema, "table", table)
		return nil
	case exists && mode == rdbms.IfExistsDrop:
		stmt = StmtRecreateTable(schema, table, cols)
	default:
		stmt = StmtCreateTable(schema, table, cols)
	}

	if _, err = m.Execute(ctx, stmt); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) CreateTableFromDef(ctx context.Context, t *rdbms.Table, commit bool) error {
	return m.CreateTable(ctx, t.Name, t.ColumnNames(), t.ColumnTypes(), t.Schema, t.IfExists, commit)
}

// AddColumn fails with ErrAlreadyExists when the column is already there.
func (m *Manager) AddColumn(ctx context.Context, table, column, typ, schema string, commit bool) error {
	if err := ValidateColumnName(column); err != nil {
		return err
	}
	t, err := NormalizeType(typ)
	if err != nil {
		return err
	}

	if schema, err = m.resolveSchema(ctx, schema); err != nil {
		return err
	}
	cols, err := m.columnsIn(ctx, table, schema)
	if err != nil {
		return err
	}
	if HelperContains(cols, column) {
		return alreadyExists("column", schema+"."+table+"."+column)
	}

	if _, err = m.Execute(ctx, StmtAddColumn(schema, table, &rdbms.Column{Name: column, Type: t})); err != nil {
		return err
	}
	return m.commitIf(commit)
}

// postgis geometry column registration
type GeometryColumn struct {
	Column string
	SRID   int
	Type   string
	Dim    int
}

func DefaultGeometryColumn() GeometryColumn {
	return GeometryColumn{
		Column: "geom",
		SRID:   4326,
		Type:   "GEOMETRY",
		Dim:    2,
	}
}

func (g GeometryColumn) withDefaults() GeometryColumn {
	d := DefaultGeometryColumn()
	if g.Column == "" {
		g.Column = d.Column
	}
	if g.SRID == 0 {
		g.SRID = d.SRID
	}
	if g.Type == "" {
		g.Type = d.Type
	}
	if g.Dim == 0 {
		g.Dim = d.Dim
	}
	g.Type = strings.ToUpper(g.Type)
	return g
}

/*
	AddGeometryColumn calls postgis AddGeometryColumn, values are bound.
	Zero fields of g take DefaultGeometryColumn values.
*/
func (m *Manager) AddGeometryColumn(ctx context.Context, table string, g GeometryColumn, schema string, commit bool) error {
	g = g.withDefaults()
	if err := ValidateColumnName(g.Column); err != nil {
		return err
	}

	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return err
	}
	cols, err := m.columnsIn(ctx, table, schema)
	if err != nil {
		return err
	}
	if HelperContains(cols, g.Column) {
		m.log.Info("geometry column already exists, skipping", "schema", schema, "table", table, "column", g.Column)
		return nil
	}

	if _, err = m.Execute(ctx, StmtAddGeometryColumn, schema, table, g.Column, g.SRID, g.Type, g.Dim); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) DropTable(ctx context.Context, table, schema string, commit bool) error {
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return err
	}
	if _, err = m.requireTable(ctx, table, schema); err != nil {
		return err
	}
	if _, err = m.Execute(ctx, StmtDropTable(schema, table)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) RenameColumn(ctx context.Context, table, column, newName, schema string, commit bool) error {
	if err := ValidateColumnName(newName); err != nil {
		return err
	}
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return err
	}
	cols, err := m.columnsIn(ctx, table, schema)
	if err != nil {
		return err
	}
	if !HelperContains(cols, column) {
		return notFound("column", schema+"."+table+"."+column)
	}
	if HelperContains(cols, newName) {
		return alreadyExists("column", schema+"."+table+"."+newName)
	}
	if _, err = m.Execute(ctx, StmtRenameColumn(schema, table, column, newName)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

func (m *Manager) RenameTable(ctx context.Context, table, newName, schema string, commit bool) error {
	if err := requireName("table", newName); err != nil {
		return err
	}
	schema, err := m.resolveSchema(ctx, schema)
	if err != nil {
		return err
	}
	tables, err := m.requireTable(ctx, table, schema)
	if err != nil {
		return err
	}
	if HelperContains(tables, newName) {
		return alreadyExists("table", schema+"."+newName)
	}
	if _, err = m.Execute(ctx, StmtRenameTable(schema, table, newName)); err != nil {
		return err
	}
	return m.commitIf(commit)
}

/*
	SetSearchPath changes session state only, it runs in the open
	transaction if there is one and never opens one itself.
*/
func (m *Manager) SetSearchPath(ctx context.Context, schemas ...string) error {
	if len(schemas) == 0 {
		return invalid("empty search_path")
	}
	for i := range schemas {
		if err := requireName("schema", schemas[i]); err != nil {
			return err
		}
	}
	return m.executeSession(ctx, StmtSetSearchPath(schemas))
}

func (m *Manager) SetCurrentSchema(ctx context.Context, schema string) error {
	if err := requireName("schema", schema); err != nil {
		return err
	}
	if err := m.requireSchema(ctx, schema); err != nil {
		return err
	}
	return m.SetSearchPath(ctx, schema)
}

/*
	SwitchDatabase reconnects to another database on the same server.
	Uncommitted statements on the old connection are rolled back.
*/
func (m *Manager) SwitchDatabase(ctx context.Context, name string) error {
	if err := requireName("database", name); err != nil {
		return err
	}
	ok, err := m.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("database", name)
	}
	return m.Reconnect(ctx, name)
}
