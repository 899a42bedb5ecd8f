package pgsql

import (
	"regexp"
	"strings"
)

/*
	user facing type spellings (and their aliases) mapped to the token which ends up
	in CREATE TABLE / ALTER TABLE. The list is closed: a type which isnt here is
	rejected, so whatever comes out of NormalizeType can be written into a statement
	as is.
*/
var typeAliases = map[string]string{
	"bigint":                      "int8",
	"int8":                        "int8",
	"bigserial":                   "serial8",
	"serial8":                     "serial8",
	"bit":                         "bit",
	"bit varying":                 "varbit",
	"varbit":                      "varbit",
	"boolean":                     "bool",
	"bool":                        "bool",
	"box":                         "box",
	"bytea":                       "bytea",
	"character":                   "char",
	"char":                        "char",
	"character varying":           "varchar",
	"varchar":                     "varchar",
	"cidr":                        "cidr",
	"circle":                      "circle",
	"date":                        "date",
	"double precision":            "float8",
	"float8":                      "float8",
	"inet":                        "inet",
	"integer":                     "int4",
	"int":                         "int4",
	"int4":                        "int4",
	"interval":                    "interval",
	"json":                        "json",
	"jsonb":                       "jsonb",
	"line":                        "line",
	"lseg":                        "lseg",
	"macaddr":                     "macaddr",
	"macaddr8":                    "macaddr8",
	"money":                       "money",
	"numeric":                     "decimal",
	"decimal":                     "decimal",
	"path":                        "path",
	"pg_lsn":                      "pg_lsn",
	"point":                       "point",
	"polygon":                     "polygon",
	"real":                        "float4",
	"float4":                      "float4",
	"smallint":                    "int2",
	"int2":                        "int2",
	"smallserial":                 "serial2",
	"serial2":                     "serial2",
	"serial":                      "serial4",
	"serial4":                     "serial4",
	"text":                        "text",
	"time":                        "time",
	"time without time zone":      "time",
	"time with time zone":         "timetz",
	"timetz":                      "timetz",
	"timestamp":                   "timestamp",
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestamptz",
	"timestamptz":                 "timestamptz",
	"tsquery":                     "tsquery",
	"tsvector":                    "tsvector",
	"txid_snapshot":               "txid_snapshot",
	"uuid":                        "uuid",
	"xml":                         "xml",
}

/*
	canonical types which take a modifier, and how many numbers it may hold
*/
var typeModifiers = map[string]int{
	"bit":         1,
	"varbit":      1,
	"char":        1,
	"varchar":     1,
	"decimal":     2,
	"time":        1,
	"timetz":      1,
	"timestamp":   1,
	"timestamptz": 1,
	"interval":    1,
}

// postgres system columns, never allowed as user column names
var SystemColumns = []string{"oid", "tableoid", "xmin", "cmin", "xmax", "cmax", "ctid"}

var (
	typeModRe   = regexp.MustCompile(`\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\)`)
	typeArrayRe = regexp.MustCompile(`(?:\[\s*\d*\s*\]\s*)+$`)
	typeDimRe   = regexp.MustCompile(`\[\s*\d*\s*\]`)
)

func IsSystemColumn(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range SystemColumns {
		if c == n {
			return true
		}
	}
	return false
}

func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("empty column name")
	}
	if IsSystemColumn(name) {
		return invalid(
			"column name \"%s\" conflicts with postgresql system column names, rename it (e.g. add suffix \"_\")",
			name)
	}
	return nil
}

/*
	NormalizeType maps a user type spelling onto its canonical token.

		"INTEGER"                     -> "int4"
		"Character Varying(255)"      -> "varchar(255)"
		"numeric(10, 2)"              -> "decimal(10,2)"
		"timestamp(3) with time zone" -> "timestamptz(3)"
		"text[]"                      -> "text[]"

	Lookup is case insensitive and does not care about extra whitespace.
*/
func NormalizeType(t string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(t))
	if s == "" {
		return "", invalid("empty column type")
	}

	dims := 0
	if loc := typeArrayRe.FindStringIndex(s); loc != nil {
		dims = len(typeDimRe.FindAllString(s[loc[0]:], -1))
		s = strings.TrimSpace(s[:loc[0]])
	}

	mod := ""
	nmod := 0
	if m := typeModRe.FindStringSubmatchIndex(s); m != nil {
		mod = "(" + s[m[2]:m[3]]
		nmod = 1
		if m[4] >= 0 {
			mod += "," + s[m[4]:m[5]]
			nmod = 2
		}
		mod += ")"
		s = s[:m[0]] + " " + s[m[1]:]
	}

	base := strings.Join(strings.Fields(s), " ")
	canon, ok := typeAliases[base]
	if !ok {
		return "", invalid("type \"%s\" is not a valid type", t)
	}

	if nmod > 0 {
		if limit, ok := typeModifiers[canon]; !ok || nmod > limit {
			return "", invalid("type \"%s\" does not accept modifier %s", t, mod)
		}
	}

	return canon + mod + strings.Repeat("[]", dims), nil
}
