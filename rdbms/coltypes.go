package rdbms

import "fmt"

// DefaultColumnType is assigned to columns a TypeMap or IndexedTypes leaves out.
const DefaultColumnType = "text"

/*
	ColumnTypes describes how a list of column names gets its types.
	There are four shapes:

		UniformType   one type for every column
		TypeMap       by column name, the rest default to text
		IndexedTypes  by column position, the rest default to text
		TypeList      one type per column, positionally

	Resolve turns any of them into the same ordered column list.
*/
type ColumnTypes interface {
	Resolve(names []string) ([]Column, error)
}

type UniformType string

type TypeMap map[string]string

type IndexedTypes map[int]string

type TypeList []string

func (u UniformType) Resolve(names []string) ([]Column, error) {
	if u == "" {
		return nil, fmt.Errorf("no column type specified")
	}
	ret := make([]Column, len(names))
	for i := range names {
		ret[i] = Column{Name: names[i], Type: string(u)}
	}
	return ret, nil
}

func defaultColumns(names []string) []Column {
	ret := make([]Column, len(names))
	for i := range names {
		ret[i] = Column{Name: names[i], Type: DefaultColumnType}
	}
	return ret
}

func (m TypeMap) Resolve(names []string) ([]Column, error) {
	ret := defaultColumns(names)
	pos := make(map[string]int, len(names))
	for i := range names {
		pos[names[i]] = i
	}
	for name, t := range m {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("type given for unknown column \"%s\"", name)
		}
		ret[i].Type = t
	}
	return ret, nil
}

func (m IndexedTypes) Resolve(names []string) ([]Column, error) {
	ret := defaultColumns(names)
	for i, t := range m {
		if i < 0 || i >= len(names) {
			return nil, fmt.Errorf("type given for column index %d but there are %d columns", i, len(names))
		}
		ret[i].Type = t
	}
	return ret, nil
}

func (l TypeList) Resolve(names []string) ([]Column, error) {
	if len(l) != len(names) {
		return nil, fmt.Errorf("got %d column types for %d columns", len(l), len(names))
	}
	ret := make([]Column, len(names))
	for i := range names {
		ret[i] = Column{Name: names[i], Type: l[i]}
	}
	return ret, nil
}

/*
	ResolveColumns applies types to names and checks the result for
	empty and duplicate names. A nil types value means every column is text.
*/
func ResolveColumns(names []string, types ColumnTypes) ([]Column, error) {
	var cols []Column
	var err error

	if types == nil {
		cols = defaultColumns(names)
	} else if cols, err = types.Resolve(names); err != nil {
		return nil, err
	}

	if err = ParserValidateColumn(cols); err != nil {
		return nil, err
	}

	return cols, nil
}
