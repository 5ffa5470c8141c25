package backend

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Order sorts results by one column.
type Order struct {
	Column    string
	Ascending bool
}

// Query selects rows of one table. Builder methods return copies, so a base
// query can be shared and extended safely.
type Query struct {
	Table   string
	Filters []Filter
	Order   *Order
}

// From starts a query on table.
func From(table string) Query {
	return Query{Table: table}
}

// Eq adds column = value.
func (q Query) Eq(column string, value any) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Column: column, Value: value})
	return q
}

// OrderBy sets the ordering column, replacing any previous one.
func (q Query) OrderBy(column string, ascending bool) Query {
	q.Order = &Order{Column: column, Ascending: ascending}
	return q
}
