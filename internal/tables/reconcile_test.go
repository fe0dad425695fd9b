package tables

import (
	"reflect"
	"testing"
)

func col(name string, values ...Value) Column {
	return Column{Name: name, Values: values}
}

func TestReconcile_AlignedTable(t *testing.T) {
	set := Set{Tables: []Table{
		{
			Name: "Income_Statement",
			Columns: []Column{
				col("Year", String("2022"), String("2023")),
				col("Revenue", Int(100), Int(120)),
			},
		},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(res.Tables))
	}
	if len(res.Skipped) != 0 {
		t.Errorf("expected no skipped tables, got %v", res.Skipped)
	}

	rt := res.Tables[0]
	if rt.Name != "Income_Statement" {
		t.Errorf("name = %q, want Income_Statement", rt.Name)
	}
	if !reflect.DeepEqual(rt.Columns, []string{"Year", "Revenue"}) {
		t.Errorf("columns = %v, want [Year Revenue]", rt.Columns)
	}
	if rt.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", rt.RowCount())
	}
	if rt.Rows[0][0].Display() != "2022" || rt.Rows[0][1].Cell() != int64(100) {
		t.Errorf("row 0 = %v, want [2022 100]", rt.Rows[0])
	}
	if rt.Rows[1][0].Display() != "2023" || rt.Rows[1][1].Cell() != int64(120) {
		t.Errorf("row 1 = %v, want [2023 120]", rt.Rows[1])
	}
}

func TestReconcile_RowColumnTranspose(t *testing.T) {
	// 3 columns x 2 rows: cell [i][j] must be column j's value at index i.
	set := Set{Tables: []Table{
		{
			Name: "Grid",
			Columns: []Column{
				col("A", Int(1), Int(2)),
				col("B", Int(3), Int(4)),
				col("C", Int(5), Int(6)),
			},
		},
	}}

	res := Reconcile(set)
	if len(res.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(res.Tables))
	}

	want := [][]int64{{1, 3, 5}, {2, 4, 6}}
	rt := res.Tables[0]
	for i, row := range rt.Rows {
		for j, v := range row {
			if v.Cell() != want[i][j] {
				t.Errorf("cell [%d][%d] = %v, want %d", i, j, v.Cell(), want[i][j])
			}
		}
	}
}

func TestReconcile_MisalignedDropped(t *testing.T) {
	set := Set{Tables: []Table{
		{
			Name: "Broken",
			Columns: []Column{
				col("A", Int(1), Int(2), Int(3)),
				col("B", Int(4), Int(5)),
			},
		},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(res.Tables))
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("expected 1 skipped table, got %d", len(res.Skipped))
	}
	skip := res.Skipped[0]
	if skip.Name != "Broken" || skip.Reason != SkipMisaligned {
		t.Errorf("skip = %+v, want Broken/row_misalignment", skip)
	}
	if !reflect.DeepEqual(skip.Lengths, []int{3, 2}) {
		t.Errorf("lengths = %v, want [3 2]", skip.Lengths)
	}
}

func TestReconcile_MisalignmentDoesNotFailOthers(t *testing.T) {
	set := Set{Tables: []Table{
		{Name: "Good", Columns: []Column{col("X", Int(1))}},
		{Name: "Bad", Columns: []Column{
			col("A", Int(1), Int(2)),
			col("B", Int(3)),
		}},
		{Name: "AlsoGood", Columns: []Column{col("Y", Int(2))}},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(res.Tables))
	}
	if res.Tables[0].Name != "Good" || res.Tables[1].Name != "AlsoGood" {
		t.Errorf("order not preserved: %v", []string{res.Tables[0].Name, res.Tables[1].Name})
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Name != "Bad" {
		t.Errorf("skipped = %v, want [Bad]", res.Skipped)
	}
}

func TestReconcile_EmptySet(t *testing.T) {
	res := Reconcile(Set{})

	if len(res.Tables) != 0 {
		t.Errorf("expected empty result, got %d tables", len(res.Tables))
	}
	if len(res.Skipped) != 0 {
		t.Errorf("expected no skips, got %v", res.Skipped)
	}
}

func TestReconcile_NoColumns(t *testing.T) {
	set := Set{Tables: []Table{{Name: "Empty"}}}

	res := Reconcile(set)

	if len(res.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(res.Tables))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != SkipNoColumns {
		t.Errorf("skipped = %v, want one no_columns entry", res.Skipped)
	}
}

func TestReconcile_AllColumnsEmpty(t *testing.T) {
	set := Set{Tables: []Table{
		{Name: "Hollow", Columns: []Column{col("A"), col("B")}},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(res.Tables))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != SkipNoData {
		t.Errorf("skipped = %v, want one no_data entry", res.Skipped)
	}
}

func TestReconcile_NameCollision(t *testing.T) {
	set := Set{Tables: []Table{
		{Name: "Summary", Columns: []Column{col("V", Int(1))}},
		{Name: "Other", Columns: []Column{col("W", Int(2))}},
		{Name: "Summary", Columns: []Column{col("V", Int(99))}},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(res.Tables))
	}
	// Later table wins but keeps the earlier position.
	if res.Tables[0].Name != "Summary" || res.Tables[1].Name != "Other" {
		t.Errorf("order = %v, want [Summary Other]", []string{res.Tables[0].Name, res.Tables[1].Name})
	}
	if res.Tables[0].Rows[0][0].Cell() != int64(99) {
		t.Errorf("collision kept first value %v, want last (99)", res.Tables[0].Rows[0][0].Cell())
	}
	if !reflect.DeepEqual(res.Overwrites, []string{"Summary"}) {
		t.Errorf("overwrites = %v, want [Summary]", res.Overwrites)
	}
}

func TestReconcile_CollisionAfterSkip(t *testing.T) {
	// A skipped table must not reserve its name's position.
	set := Set{Tables: []Table{
		{Name: "Summary", Columns: []Column{
			col("A", Int(1), Int(2)),
			col("B", Int(3)),
		}},
		{Name: "Summary", Columns: []Column{col("A", Int(7))}},
	}}

	res := Reconcile(set)

	if len(res.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(res.Tables))
	}
	if res.Tables[0].Rows[0][0].Cell() != int64(7) {
		t.Errorf("kept value = %v, want 7", res.Tables[0].Rows[0][0].Cell())
	}
	if len(res.Overwrites) != 0 {
		t.Errorf("expected no overwrites, got %v", res.Overwrites)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != SkipMisaligned {
		t.Errorf("skipped = %v, want one row_misalignment entry", res.Skipped)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	set := Set{Tables: []Table{
		{Name: "One", Columns: []Column{col("A", Int(1), Int(2))}},
		{Name: "Two", Columns: []Column{col("B", String("x"))}},
		{Name: "Bad", Columns: []Column{col("C", Int(1)), col("D")}},
	}}

	first := Reconcile(set)
	second := Reconcile(set)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconciling twice differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestReconcileResult_Table(t *testing.T) {
	set := Set{Tables: []Table{
		{Name: "Cash_Flow", Columns: []Column{col("A", Int(1))}},
	}}
	res := Reconcile(set)

	if _, ok := res.Table("Cash_Flow"); !ok {
		t.Error("expected Cash_Flow to be present")
	}
	if _, ok := res.Table("Missing"); ok {
		t.Error("expected Missing to be absent")
	}
}
