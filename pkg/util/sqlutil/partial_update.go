// Package sqlutil builds SQL fragments for repositories.
package sqlutil

import (
	"fmt"
	"strings"

	"github.com/ijpettengill/jobly/pkg/util/errorutil"
)

// Field is a single column assignment in a partial update.
type Field struct {
	Name  string
	Value any
}

// Clause is a parameterized assignment list for UPDATE ... SET.
// Placeholder $i in SetCols binds Values[i-1].
type Clause struct {
	SetCols string
	Values  []any
}

// NextIndex returns the first placeholder index not used by the clause.
func (c Clause) NextIndex() int {
	return len(c.Values) + 1
}

// PartialUpdate turns fields into `"col"=$1, "col2"=$2` plus the matching values.
// columns maps field names to column names; names without an entry are used as-is.
func PartialUpdate(fields []Field, columns map[string]string) (Clause, error) {
	if len(fields) == 0 {
		return Clause{}, errorutil.NewValidationError("no data supplied", nil)
	}

	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for i, f := range fields {
		column, ok := columns[f.Name]
		if !ok {
			column = f.Name
		}
		cols = append(cols, fmt.Sprintf(`"%s"=$%d`, column, i+1))
		values = append(values, f.Value)
	}

	return Clause{
		SetCols: strings.Join(cols, ", "),
		Values:  values,
	}, nil
}
