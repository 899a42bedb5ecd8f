package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeType(t *testing.T) {
	t.Run("Should be case insensitive for every known spelling", func(t *testing.T) {
		for alias, canon := range typeAliases {
			for _, in := range []string{alias, strings.ToUpper(alias), strings.ToUpper(alias[:1]) + alias[1:], "  " + alias + " "} {
				got, err := NormalizeType(in)
				require.NoError(t, err, in)
				assert.Equal(t, canon, got, in)
			}
		}
	})

	t.Run("Should keep modifiers and array suffixes", func(t *testing.T) {
		cases := map[string]string{
			"INTEGER":                     "int4",
			"Character Varying(255)":      "varchar(255)",
			"character  varying ( 32 )":   "varchar(32)",
			"numeric(10, 2)":              "decimal(10,2)",
			"NUMERIC(10)":                 "decimal(10)",
			"timestamp(3) with time zone": "timestamptz(3)",
			"timestamp without time zone": "timestamp",
			"time(6) without time zone":   "time(6)",
			"text[]":                      "text[]",
			"int[][]":                     "int4[][]",
			"varchar(20)[3]":              "varchar(20)[]",
			"double precision [ ]":        "float8[]",
			"bit varying(8)":              "varbit(8)",
		}
		for in, want := range cases {
			got, err := NormalizeType(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("Should reject types outside of the vocabulary", func(t *testing.T) {
		for _, in := range []string{
			"",
			"   ",
			"integr",
			"int; DROP TABLE users",
			"text) ; --",
			"varchar(10,2)",
			"int(4)",
			"uuid(1)",
			"varchar(abc)",
			"geometry",
		} {
			_, err := NormalizeType(in)
			require.ErrorIs(t, err, ErrValidation, in)
		}
	})
}

func TestValidateColumnName(t *testing.T) {
	for _, name := range SystemColumns {
		assert.True(t, IsSystemColumn(name))
		assert.True(t, IsSystemColumn(strings.ToUpper(name)))
		require.ErrorIs(t, ValidateColumnName(name), ErrValidation)
	}
	require.ErrorIs(t, ValidateColumnName(""), ErrValidation)
	require.NoError(t, ValidateColumnName("oid_"))
	require.NoError(t, ValidateColumnName("xmin_ts"))
}
