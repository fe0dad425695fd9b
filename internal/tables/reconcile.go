package tables

// SkipReason says why a table was dropped during reconciliation.
type SkipReason string

const (
	// SkipNoColumns marks a table that arrived without any columns.
	SkipNoColumns SkipReason = "no_columns"

	// SkipMisaligned marks a table whose columns disagree on length. The
	// model is instructed to keep columns equal-length but is not trusted
	// to; padding or truncating would fabricate financial data, so the
	// whole table is dropped instead.
	SkipMisaligned SkipReason = "row_misalignment"

	// SkipNoData marks a table whose columns are all empty.
	SkipNoData SkipReason = "no_data"
)

// SkippedTable records one dropped table. Lengths holds the distinct column
// lengths observed, in column order, for misaligned tables.
type SkippedTable struct {
	Name    string
	Reason  SkipReason
	Lengths []int
}

// ReconcileResult is the outcome of reconciling a Set. Tables is an ordered
// name-keyed collection: names are unique, and a later table reusing an
// earlier name replaces its value while keeping the earlier position.
type ReconcileResult struct {
	Tables     []ReconciledTable
	Skipped    []SkippedTable
	Overwrites []string
}

// Table returns the reconciled table with the given name.
func (r ReconcileResult) Table(name string) (ReconciledTable, bool) {
	for _, t := range r.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return ReconciledTable{}, false
}

// Reconcile turns a Set into rectangular tables, dropping any table that
// violates the row-alignment rule. Dropping is per table and never fails
// the whole set; an empty result is a valid outcome.
func Reconcile(s Set) ReconcileResult {
	res := ReconcileResult{Tables: make([]ReconciledTable, 0, len(s.Tables))}
	index := make(map[string]int, len(s.Tables))

	for _, t := range s.Tables {
		if len(t.Columns) == 0 {
			res.Skipped = append(res.Skipped, SkippedTable{Name: t.Name, Reason: SkipNoColumns})
			continue
		}

		lengths := distinctLengths(t.Columns)
		if len(lengths) > 1 {
			res.Skipped = append(res.Skipped, SkippedTable{Name: t.Name, Reason: SkipMisaligned, Lengths: lengths})
			continue
		}

		n := lengths[0]
		if n == 0 {
			res.Skipped = append(res.Skipped, SkippedTable{Name: t.Name, Reason: SkipNoData})
			continue
		}

		rt := ReconciledTable{
			Name:    t.Name,
			Columns: make([]string, len(t.Columns)),
			Rows:    make([][]Value, n),
		}
		for j, c := range t.Columns {
			rt.Columns[j] = c.Name
		}
		for i := 0; i < n; i++ {
			row := make([]Value, len(t.Columns))
			for j, c := range t.Columns {
				row[j] = c.Values[i]
			}
			rt.Rows[i] = row
		}

		if prev, ok := index[rt.Name]; ok {
			res.Tables[prev] = rt
			res.Overwrites = append(res.Overwrites, rt.Name)
			continue
		}
		index[rt.Name] = len(res.Tables)
		res.Tables = append(res.Tables, rt)
	}

	return res
}

// distinctLengths returns the distinct value-sequence lengths across
// columns, in first-seen column order.
func distinctLengths(cols []Column) []int {
	seen := make(map[int]bool, len(cols))
	var out []int
	for _, c := range cols {
		n := len(c.Values)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
