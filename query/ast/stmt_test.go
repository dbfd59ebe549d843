package ast

import (
	"errors"
	"testing"
)

func boolCond(t *testing.T, column string) Expr {
	t.Helper()
	cond, err := NewBinary(OpEq, col(t, column), lit(t, int64(1)))
	if err != nil {
		t.Fatal(err)
	}
	return cond
}

func TestSelectValidate(t *testing.T) {
	limit := 10
	negative := -1

	tests := []struct {
		name string
		stmt *SelectStmt
		ok   bool
	}{
		{
			"minimal",
			&SelectStmt{From: TableRef{Name: "users"}},
			true,
		},
		{
			"missing from",
			&SelectStmt{},
			false,
		},
		{
			"where must be boolean",
			&SelectStmt{From: TableRef{Name: "users"}, Where: mustLit(t, int64(1))},
			false,
		},
		{
			"join without on",
			&SelectStmt{
				From:  TableRef{Name: "users"},
				Joins: []Join{{Kind: JoinInner, Table: TableRef{Name: "orders"}}},
			},
			false,
		},
		{
			"duplicate alias",
			&SelectStmt{
				From: TableRef{Name: "users", Alias: "x"},
				Joins: []Join{{
					Kind:  JoinInner,
					Table: TableRef{Name: "orders", Alias: "x"},
					On:    boolCond(t, "id"),
				}},
			},
			false,
		},
		{
			"having without group by",
			&SelectStmt{
				From:   TableRef{Name: "users"},
				Having: boolCond(t, "id"),
			},
			false,
		},
		{
			"negative limit",
			&SelectStmt{From: TableRef{Name: "users"}, Limit: &negative},
			false,
		},
		{
			"valid limit",
			&SelectStmt{From: TableRef{Name: "users"}, Limit: &limit},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stmt.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func mustLit(t *testing.T, v any) Expr {
	t.Helper()
	return lit(t, v)
}

func TestQualifierResolution(t *testing.T) {
	qualified, err := NewColumn("u", "id")
	if err != nil {
		t.Fatal(err)
	}
	cond, err := NewUnary(OpIsNotNull, qualified)
	if err != nil {
		t.Fatal(err)
	}

	visible := &SelectStmt{
		From:  TableRef{Name: "users", Alias: "u"},
		Where: cond,
	}
	if err := visible.Validate(); err != nil {
		t.Errorf("alias qualifier should resolve: %v", err)
	}

	invisible := &SelectStmt{
		From:  TableRef{Name: "accounts"},
		Where: cond,
	}
	err = invisible.Validate()
	var malformedErr *MalformedQueryError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("err = %v, want MalformedQueryError", err)
	}
}

func TestInsertValidate(t *testing.T) {
	row := []Expr{mustLit(t, "a@x.com"), mustLit(t, "A")}

	ok := &InsertStmt{
		Table:   TableRef{Name: "users"},
		Columns: []string{"email", "name"},
		Rows:    [][]Expr{row},
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid insert: %v", err)
	}

	tests := []struct {
		name string
		stmt *InsertStmt
	}{
		{"no columns", &InsertStmt{Table: TableRef{Name: "users"}, Rows: [][]Expr{row}}},
		{"no rows", &InsertStmt{Table: TableRef{Name: "users"}, Columns: []string{"email", "name"}}},
		{
			"duplicate column",
			&InsertStmt{Table: TableRef{Name: "users"}, Columns: []string{"email", "email"}, Rows: [][]Expr{row}},
		},
		{
			"arity mismatch",
			&InsertStmt{Table: TableRef{Name: "users"}, Columns: []string{"email"}, Rows: [][]Expr{row}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.stmt.Validate() == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestUpdateValidate(t *testing.T) {
	ok := &UpdateStmt{
		Table:       TableRef{Name: "users"},
		Assignments: []Assignment{{Column: "name", Value: mustLit(t, "A")}},
		Where:       boolCond(t, "id"),
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid update: %v", err)
	}

	empty := &UpdateStmt{Table: TableRef{Name: "users"}}
	if empty.Validate() == nil {
		t.Error("empty SET list should fail")
	}

	dup := &UpdateStmt{
		Table: TableRef{Name: "users"},
		Assignments: []Assignment{
			{Column: "name", Value: mustLit(t, "A")},
			{Column: "name", Value: mustLit(t, "B")},
		},
	}
	if dup.Validate() == nil {
		t.Error("duplicate assignment should fail")
	}

	badWhere := &UpdateStmt{
		Table:       TableRef{Name: "users"},
		Assignments: []Assignment{{Column: "name", Value: mustLit(t, "A")}},
		Where:       mustLit(t, "not boolean"),
	}
	err := badWhere.Validate()
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("err = %v, want TypeMismatchError", err)
	}
}

func TestDeleteValidate(t *testing.T) {
	ok := &DeleteStmt{Table: TableRef{Name: "sessions"}, Where: boolCond(t, "id")}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid delete: %v", err)
	}
	if (&DeleteStmt{}).Validate() == nil {
		t.Error("missing table should fail")
	}
}
