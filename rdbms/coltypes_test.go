package rdbms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	names := []string{"id", "name", "created"}

	t.Run("Should default every column to text", func(t *testing.T) {
		cols, err := ResolveColumns(names, nil)
		require.NoError(t, err)
		assert.Equal(t, []Column{{"id", "text"}, {"name", "text"}, {"created", "text"}}, cols)
	})

	t.Run("Should resolve all four forms to the same order", func(t *testing.T) {
		want := []Column{{"id", "integer"}, {"name", "text"}, {"created", "timestamptz"}}

		forms := []ColumnTypes{
			TypeMap{"id": "integer", "created": "timestamptz"},
			IndexedTypes{0: "integer", 2: "timestamptz"},
			TypeList{"integer", "text", "timestamptz"},
		}
		for _, f := range forms {
			cols, err := ResolveColumns(names, f)
			require.NoError(t, err)
			assert.Equal(t, want, cols)
		}

		cols, err := ResolveColumns(names, UniformType("jsonb"))
		require.NoError(t, err)
		for _, c := range cols {
			assert.Equal(t, "jsonb", c.Type)
		}
	})

	t.Run("Should report duplicate names", func(t *testing.T) {
		_, err := ResolveColumns([]string{"id", "id"}, nil)
		require.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("Should reject inconsistent input", func(t *testing.T) {
		bad := []ColumnTypes{
			UniformType(""),
			TypeMap{"missing": "integer"},
			IndexedTypes{3: "integer"},
			IndexedTypes{-1: "integer"},
			TypeList{"integer"},
		}
		for _, f := range bad {
			_, err := ResolveColumns(names, f)
			assert.Error(t, err, "%#v", f)
		}

		_, err := ResolveColumns([]string{"id", "id"}, nil)
		assert.Error(t, err)
		_, err = ResolveColumns([]string{" "}, nil)
		assert.Error(t, err)
	})
}

func TestParseIfExists(t *testing.T) {
	for in, want := range map[string]IfExists{
		"":       IfExistsSkip,
		"skip":   IfExistsSkip,
		" DROP ": IfExistsDrop,
		"fail":   IfExistsFail,
	} {
		got, ok := ParseIfExists(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseIfExists("replace")
	assert.False(t, ok)
}
