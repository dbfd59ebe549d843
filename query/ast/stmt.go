package ast

// TableRef names a table, optionally given an alias for the statement.
type TableRef struct {
	Name  string
	Alias string
}

// Join attaches one table to a SELECT.
type Join struct {
	Kind  JoinKind
	Table TableRef
	On    Expr
}

// SelectItem is one projected expression with an optional alias.
type SelectItem struct {
	Expr  Expr
	Alias string
}

// OrderItem is one ORDER BY entry.
type OrderItem struct {
	Expr Expr
	Dir  SortDirection
}

// Assignment is one column = value pair in an UPDATE.
type Assignment struct {
	Column string
	Value  Expr
}

// SelectStmt is a SELECT statement. An empty Columns slice means SELECT *.
type SelectStmt struct {
	Distinct bool
	Columns  []SelectItem
	From     TableRef
	Joins    []Join
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderItem
	Limit    *int
	Offset   *int
}

func (*SelectStmt) stmtNode() {}

// InsertStmt is a multi-row INSERT.
type InsertStmt struct {
	Table   TableRef
	Columns []string
	Rows    [][]Expr
}

func (*InsertStmt) stmtNode() {}

// UpdateStmt is an UPDATE with ordered assignments.
type UpdateStmt struct {
	Table       TableRef
	Assignments []Assignment
	Where       Expr
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt is a DELETE.
type DeleteStmt struct {
	Table TableRef
	Where Expr
}

func (*DeleteStmt) stmtNode() {}

// walkColumns visits every column reference in an expression tree.
func walkColumns(e Expr, fn func(*Column) error) error {
	switch v := e.(type) {
	case *Column:
		return fn(v)
	case *BinaryExpr:
		if err := walkColumns(v.Left, fn); err != nil {
			return err
		}
		return walkColumns(v.Right, fn)
	case *UnaryExpr:
		return walkColumns(v.Operand, fn)
	case *FuncCall:
		for _, arg := range v.Args {
			if err := walkColumns(arg, fn); err != nil {
				return err
			}
		}
	case *List:
		for _, item := range v.Items {
			if err := walkColumns(item, fn); err != nil {
				return err
			}
		}
	}
	// Literal, Param, Subquery: subqueries carry their own scope and are
	// validated when they are built.
	return nil
}

// visibleTables collects the table names and aliases a column qualifier may
// legally reference.
func (s *SelectStmt) visibleTables() map[string]bool {
	seen := map[string]bool{s.From.Name: true}
	if s.From.Alias != "" {
		seen[s.From.Alias] = true
	}
	for _, j := range s.Joins {
		seen[j.Table.Name] = true
		if j.Table.Alias != "" {
			seen[j.Table.Alias] = true
		}
	}
	return seen
}

// checkQualifiers verifies that every qualified column reference in the
// tree names a table or alias visible in this statement. Unqualified
// references are assumed to belong to one of the FROM tables; without a
// schema their membership cannot be checked here.
func (s *SelectStmt) checkQualifiers(e Expr, clause string) error {
	tables := s.visibleTables()
	return walkColumns(e, func(c *Column) error {
		if c.Table != "" && !tables[c.Table] {
			return malformed("SELECT", "%s references %s.%s, but no table or alias %q is visible",
				clause, c.Table, c.Name, c.Table)
		}
		return nil
	})
}

// Validate checks the statement's structural invariants. Builders run it
// before handing a statement to the caller; a statement that fails here is
// never returned.
func (s *SelectStmt) Validate() error {
	if s.From.Name == "" {
		return malformed("SELECT", "FROM table name must not be empty")
	}
	aliases := map[string]bool{}
	if s.From.Alias != "" {
		aliases[s.From.Alias] = true
	}
	for _, j := range s.Joins {
		if j.Table.Name == "" {
			return malformed("SELECT", "join table name must not be empty")
		}
		if j.Table.Alias != "" {
			if aliases[j.Table.Alias] {
				return malformed("SELECT", "duplicate table alias %q", j.Table.Alias)
			}
			aliases[j.Table.Alias] = true
		}
		if j.On == nil {
			return malformed("SELECT", "join on %q has no ON condition", j.Table.Name)
		}
		if !booleanish(j.On.DataType()) {
			return &TypeMismatchError{Op: "ON", Want: TypeBool, Got: j.On.DataType()}
		}
		if err := s.checkQualifiers(j.On, "ON"); err != nil {
			return err
		}
	}
	for _, item := range s.Columns {
		if item.Expr == nil {
			return malformed("SELECT", "select list entry has no expression")
		}
		if err := s.checkQualifiers(item.Expr, "select list"); err != nil {
			return err
		}
	}
	if s.Where != nil {
		if !booleanish(s.Where.DataType()) {
			return &TypeMismatchError{Op: "WHERE", Want: TypeBool, Got: s.Where.DataType()}
		}
		if err := s.checkQualifiers(s.Where, "WHERE"); err != nil {
			return err
		}
	}
	for _, g := range s.GroupBy {
		if err := s.checkQualifiers(g, "GROUP BY"); err != nil {
			return err
		}
	}
	if s.Having != nil {
		if len(s.GroupBy) == 0 {
			return malformed("SELECT", "HAVING requires GROUP BY")
		}
		if !booleanish(s.Having.DataType()) {
			return &TypeMismatchError{Op: "HAVING", Want: TypeBool, Got: s.Having.DataType()}
		}
		if err := s.checkQualifiers(s.Having, "HAVING"); err != nil {
			return err
		}
	}
	for _, o := range s.OrderBy {
		if o.Expr == nil {
			return malformed("SELECT", "ORDER BY entry has no expression")
		}
		if err := s.checkQualifiers(o.Expr, "ORDER BY"); err != nil {
			return err
		}
	}
	if s.Limit != nil && *s.Limit < 0 {
		return malformed("SELECT", "LIMIT must be non-negative, got %d", *s.Limit)
	}
	if s.Offset != nil && *s.Offset < 0 {
		return malformed("SELECT", "OFFSET must be non-negative, got %d", *s.Offset)
	}
	return nil
}

// Validate checks the statement's structural invariants.
func (s *InsertStmt) Validate() error {
	if s.Table.Name == "" {
		return malformed("INSERT", "table name must not be empty")
	}
	if len(s.Columns) == 0 {
		return malformed("INSERT", "column list must not be empty")
	}
	seen := map[string]bool{}
	for _, col := range s.Columns {
		if col == "" {
			return malformed("INSERT", "column name must not be empty")
		}
		if seen[col] {
			return malformed("INSERT", "duplicate column %q", col)
		}
		seen[col] = true
	}
	if len(s.Rows) == 0 {
		return malformed("INSERT", "at least one row of values is required")
	}
	for i, row := range s.Rows {
		if len(row) != len(s.Columns) {
			return malformed("INSERT", "row %d has %d values for %d columns", i+1, len(row), len(s.Columns))
		}
		for _, v := range row {
			if v == nil {
				return malformed("INSERT", "row %d contains a nil expression", i+1)
			}
		}
	}
	return nil
}

// Validate checks the statement's structural invariants.
func (s *UpdateStmt) Validate() error {
	if s.Table.Name == "" {
		return malformed("UPDATE", "table name must not be empty")
	}
	if len(s.Assignments) == 0 {
		return malformed("UPDATE", "SET list must not be empty")
	}
	seen := map[string]bool{}
	for _, a := range s.Assignments {
		if a.Column == "" {
			return malformed("UPDATE", "assignment column name must not be empty")
		}
		if seen[a.Column] {
			return malformed("UPDATE", "duplicate assignment to %q", a.Column)
		}
		seen[a.Column] = true
		if a.Value == nil {
			return malformed("UPDATE", "assignment to %q has no value", a.Column)
		}
	}
	if s.Where != nil && !booleanish(s.Where.DataType()) {
		return &TypeMismatchError{Op: "WHERE", Want: TypeBool, Got: s.Where.DataType()}
	}
	return nil
}

// Validate checks the statement's structural invariants.
func (s *DeleteStmt) Validate() error {
	if s.Table.Name == "" {
		return malformed("DELETE", "table name must not be empty")
	}
	if s.Where != nil && !booleanish(s.Where.DataType()) {
		return &TypeMismatchError{Op: "WHERE", Want: TypeBool, Got: s.Where.DataType()}
	}
	return nil
}
