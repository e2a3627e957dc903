package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles SQL with "?" placeholders; callers rebind them for
// their driver.
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder

	// Where and And are interchangeable; conditions are joined with AND
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	OnConflict(cols ...string) QueryBuilder
	SetExclude(cols ...string) QueryBuilder

	Build() (string, []interface{})
}

type condition struct {
	clause string
	args   []interface{}
}

type queryBuilder struct {
	schema      string
	table       string
	cols        []string
	conditions  []condition
	rows        [][]interface{}
	onConflict  []string
	excludeCols []string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{clause: clause, args: args})
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.rows = append(q.rows, values)
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

// SetExclude turns the conflict clause into an upsert of the given columns
func (q *queryBuilder) SetExclude(cols ...string) QueryBuilder {
	q.excludeCols = cols
	return q
}

// Build renders an insert when values were given and a select otherwise.
// An empty query means the builder state was inconsistent.
func (q *queryBuilder) Build() (string, []interface{}) {
	if len(q.rows) > 0 {
		return q.buildInsert()
	}
	return q.buildSelect()
}

func (q *queryBuilder) qualifiedTable() string {
	if q.schema == "" {
		return q.table
	}
	return q.schema + "." + q.table
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualifiedTable())
	if len(q.conditions) == 0 {
		return query, nil
	}

	clauses := make([]string, len(q.conditions))
	var args []interface{}
	for i, c := range q.conditions {
		clauses[i] = c.clause
		args = append(args, c.args...)
	}
	return query + " WHERE " + strings.Join(clauses, " AND "), args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	width := len(q.cols)
	if width == 0 {
		return "", nil
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
	tuples := make([]string, len(q.rows))
	args := make([]interface{}, 0, width*len(q.rows))
	for i, row := range q.rows {
		if len(row) != width {
			return "", nil
		}
		tuples[i] = placeholders
		args = append(args, row...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES %s",
		q.qualifiedTable(), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))

	if len(q.onConflict) == 0 {
		return b.String(), args
	}
	fmt.Fprintf(&b, " ON CONFLICT (%s)", strings.Join(q.onConflict, ", "))
	if len(q.excludeCols) == 0 {
		b.WriteString(" DO NOTHING")
		return b.String(), args
	}
	sets := make([]string, len(q.excludeCols))
	for i, col := range q.excludeCols {
		sets[i] = col + " = EXCLUDED." + col
	}
	b.WriteString(" DO UPDATE SET " + strings.Join(sets, ", "))
	return b.String(), args
}
