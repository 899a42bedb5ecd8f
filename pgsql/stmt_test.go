package pgsql

import (
	"testing"
	"time"

	"github.com/kzaag/pgm/rdbms"
	"github.com/stretchr/testify/assert"
)

func TestStmt(t *testing.T) {
	t.Run("Should quote every identifier", func(t *testing.T) {
		cols := []rdbms.Column{{Name: "id", Type: "int4"}, {Name: "Weird \"col\"", Type: "text"}}
		assert.Equal(t,
			`CREATE TABLE "analytics"."events" ("id" int4, "Weird ""col""" text)`,
			StmtCreateTable("analytics", "events", cols))
		assert.Equal(t,
			`DROP TABLE "analytics"."events";`+"\n"+`CREATE TABLE "analytics"."events" ("id" int4, "Weird ""col""" text)`,
			StmtRecreateTable("analytics", "events", cols))
	})

	t.Run("Should keep injected text inside the identifier", func(t *testing.T) {
		name := `x"; DROP TABLE users; --`
		assert.Equal(t, `CREATE SCHEMA "x""; DROP TABLE users; --"`, StmtCreateSchema(name))
		assert.Equal(t, `CREATE DATABASE "x""; DROP TABLE users; --"`, StmtCreateDatabase(name))
	})

	t.Run("Should build the remaining statements", func(t *testing.T) {
		assert.Equal(t, `DROP SCHEMA "analytics"`, StmtDropSchema("analytics", false))
		assert.Equal(t, `DROP SCHEMA "analytics" CASCADE`, StmtDropSchema("analytics", true))
		assert.Equal(t, `CREATE ROLE "readonly"`, StmtCreateRole("readonly", false))
		assert.Equal(t, `CREATE ROLE "reporter" LOGIN`, StmtCreateRole("reporter", true))
		assert.Equal(t, `DROP ROLE "reporter"`, StmtDropRole("reporter"))
		assert.Equal(t, `CREATE EXTENSION "postgis" SCHEMA "gis"`, StmtCreateExtension("postgis", "gis"))
		assert.Equal(t, `ALTER EXTENSION "postgis" SET SCHEMA "gis"`, StmtAlterExtensionSchema("postgis", "gis"))
		assert.Equal(t, `ALTER TABLE "public"."events" ADD COLUMN "ts" timestamptz`,
			StmtAddColumn("public", "events", &rdbms.Column{Name: "ts", Type: "timestamptz"}))
		assert.Equal(t, `ALTER TABLE "public"."events" RENAME COLUMN "ts" TO "created_at"`,
			StmtRenameColumn("public", "events", "ts", "created_at"))
		assert.Equal(t, `ALTER TABLE "public"."events" RENAME TO "events_v2"`,
			StmtRenameTable("public", "events", "events_v2"))
		assert.Equal(t, `SET search_path TO "analytics", "public"`, StmtSetSearchPath([]string{"analytics", "public"}))
	})
}

func TestRenderStatement(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t,
		`SELECT AddGeometryColumn('public', 'places', 'geom', 4326, 'POINT', 2)`,
		RenderStatement(StmtAddGeometryColumn, []interface{}{"public", "places", "geom", 4326, "POINT", 2}))
	assert.Equal(t,
		`UPDATE t SET a = 'it''s', b = NULL, c = TRUE, d = 1.5, e = '2024-03-01T12:00:00Z' WHERE f = $6`,
		RenderStatement(`UPDATE t SET a = $1, b = $2, c = $3, d = $4, e = $5 WHERE f = $6`,
			[]interface{}{"it's", nil, true, 1.5, ts}))
	assert.Equal(t, `SELECT $1`, RenderStatement(`SELECT $1`, nil))
	assert.Equal(t, `'x'`, DisplayLiteral([]byte("x")))
}
