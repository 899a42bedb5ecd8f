package rdbms

import (
	"fmt"
	"strings"

	"github.com/kzaag/pgm/cmn"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var ErrDuplicateColumn = errors.New("duplicate column name")

/*
	a definition file looks like this:

	table:
	  name: events
	  schema: analytics
	  if_exists: skip
	  columns:
	    - name: id
	      type: integer
	    - name: payload
	      type: jsonb
*/
type DDObject struct {
	Table *Table
}

type ParseCtx struct {
	ret []DDObject
}

func __ParserElevateErrorColumn(cname string, err error) error {
	return fmt.Errorf("in column %s: %w", cname, err)
}

func __ParserErrorTable(tname string, err error) error {
	return fmt.Errorf("in table %s: %w", tname, err)
}

/*
	names must be present and unique.
	Type may be empty here, callers which care fill in a default before.
*/
func ParserValidateColumn(c []Column) error {
	seen := make(map[string]struct{}, len(c))
	for i := 0; i < len(c); i++ {
		col := &c[i]
		if strings.TrimSpace(col.Name) == "" {
			return fmt.Errorf("column at index %d doesnt have name specified", i)
		}
		if _, ok := seen[col.Name]; ok {
			return __ParserElevateErrorColumn(col.Name, ErrDuplicateColumn)
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}

func ParserValidateTable(t *Table, f string) error {
	if t == nil {
		return nil
	}
	if t.Name == "" {
		return fmt.Errorf("table defined in %s doesnt have specified name", f)
	}
	ie, ok := ParseIfExists(string(t.IfExists))
	if !ok {
		return __ParserErrorTable(t.Name, fmt.Errorf("unknown if_exists value \"%s\"", t.IfExists))
	}
	t.IfExists = ie
	for i := range t.Columns {
		if t.Columns[i].Type == "" {
			t.Columns[i].Type = DefaultColumnType
		}
	}
	if err := ParserValidateColumn(t.Columns); err != nil {
		return __ParserErrorTable(t.Name, err)
	}
	return nil
}

func ParserGetValidateTable(path string, fc []byte, args interface{}) error {
	var err error
	var obj DDObject
	ctx := args.(*ParseCtx)
	if err = yaml.Unmarshal(fc, &obj); err != nil {
		return fmt.Errorf("couldnt unmarshal %s %s", path, err.Error())
	}
	if obj.Table == nil {
		return fmt.Errorf("%s doesnt define a table", path)
	}
	if err = ParserValidateTable(obj.Table, path); err != nil {
		return err
	}
	ctx.ret = append(ctx.ret, obj)
	return nil
}

func ParserGetTablesInDir(dir string) ([]DDObject, error) {
	parser := ParseCtx{}
	err := cmn.ParserIterateOverSource(dir, ".yml", ParserGetValidateTable, &parser)
	if err != nil {
		return nil, err
	}
	return parser.ret, nil
}
