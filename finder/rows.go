/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package finder

import (
	"database/sql"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
)

var sqlRowsType = reflect.TypeOf((*sql.Rows)(nil))

// IsSQLRows reports whether t is *sql.Rows.
func IsSQLRows(t reflect.Type) bool {
	return t == sqlRowsType
}

// column is one entry of a result set catalog.
type column struct {
	name string
	typ  reflect.Type
}

// lookupColumn matches name against the catalog: exact column name, then
// case-insensitive column name, then 1-based position.
func lookupColumn(cols []column, name string) (int, bool) {
	for i, c := range cols {
		if c.name == name {
			return i, true
		}
	}
	for i, c := range cols {
		if strings.EqualFold(c.name, name) {
			return i, true
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(cols) {
		return n - 1, true
	}
	return 0, false
}

// Rows resolves the columns of the current row of a *sql.Rows. Columns are
// read-only. A failure to read the column catalog is reported as an error
// wrapping element.ErrMetadata.
type Rows struct{}

// Ensure Rows implements apis.Finder.
var _ apis.Finder = Rows{}

// NewRows returns the SQL rows finder.
func NewRows() Rows {
	return Rows{}
}

// Find returns the column called name or at 1-based position name.
func (Rows) Find(name string, target any) (apis.Element, bool, error) {
	rows, ok := target.(*sql.Rows)
	if !ok || rows == nil {
		return nil, false, nil
	}
	cols, err := sqlColumns(rows)
	if err != nil {
		return nil, false, &element.AccessError{Element: name, Op: element.OpFind, Kind: element.ErrMetadata, Err: err}
	}
	i, ok := lookupColumn(cols, name)
	if !ok {
		return nil, false, nil
	}
	return sqlColumn(cols[i], i).Bind(target), true, nil
}

// FindAll returns every column in catalog order.
func (Rows) FindAll(target any) ([]apis.Element, error) {
	rows, ok := target.(*sql.Rows)
	if !ok || rows == nil {
		return nil, nil
	}
	cols, err := sqlColumns(rows)
	if err != nil {
		return nil, &element.AccessError{Op: element.OpFind, Kind: element.ErrMetadata, Err: err}
	}
	out := make([]apis.Element, 0, len(cols))
	for i, c := range cols {
		out = append(out, sqlColumn(c, i).Bind(target))
	}
	return out, nil
}

func sqlColumns(rows *sql.Rows) ([]column, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make([]column, len(names))
	types, terr := rows.ColumnTypes()
	for i, n := range names {
		cols[i] = column{name: n, typ: anyType}
		if terr == nil && i < len(types) {
			if st := types[i].ScanType(); st != nil {
				cols[i].typ = st
			}
		}
	}
	return cols, nil
}

func sqlColumn(c column, i int) *element.Generic {
	return element.New(element.Spec{
		Name:          c.name,
		DeclaringType: sqlRowsType,
		Type:          c.typ,
		Accessor: &slot{
			accepts: func(target any) bool {
				_, ok := target.(*sql.Rows)
				return ok
			},
			read: func(target any) (any, error) {
				rows := target.(*sql.Rows)
				n, err := rows.Columns()
				if err != nil {
					return nil, err
				}
				vals := make([]any, len(n))
				dest := make([]any, len(n))
				for j := range vals {
					dest[j] = &vals[j]
				}
				if err := rows.Scan(dest...); err != nil {
					return nil, err
				}
				if i >= len(vals) {
					return nil, element.ErrIndexOutOfRange
				}
				return vals[i], nil
			},
		},
	})
}
