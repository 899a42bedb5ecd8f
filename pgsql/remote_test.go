package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchPath(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`"$user", public`, []string{"$user", "public"}},
		{`analytics,public`, []string{"analytics", "public"}},
		{` analytics ,  public `, []string{"analytics", "public"}},
		{`"My, Schema", public`, []string{"My, Schema", "public"}},
		{`"say ""hi"""`, []string{`say "hi"`}},
		{`""`, []string{}},
		{``, []string{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseSearchPath(c.in), c.in)
	}
}

func TestConnString(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "host=localhost port=5432 dbname=postgres user=postgres", ConnString(c))

	c.Password = "it's secret"
	c.Database = "analytics_db"
	c.Args = map[string]string{"sslmode": "disable", "application_name": "pgm"}
	assert.Equal(t,
		`host=localhost port=5432 dbname=analytics_db user=postgres password='it\'s secret' application_name=pgm sslmode=disable`,
		ConnString(c))
}

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{Database: "analytics_db"}.withDefaults()
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 5432, c.Port)
	assert.Equal(t, "analytics_db", c.Database)
	assert.Equal(t, "postgres", c.User)
	assert.Equal(t, DriverPq, c.Driver)
	assert.NotNil(t, c.Output)
	assert.NotNil(t, c.Logger)
	assert.False(t, c.Quiet)
}
