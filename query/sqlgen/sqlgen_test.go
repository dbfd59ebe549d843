package sqlgen_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sqlbridge/sqlbridge/query/ast"
	"github.com/sqlbridge/sqlbridge/query/builder"
	"github.com/sqlbridge/sqlbridge/query/dialect"
	"github.com/sqlbridge/sqlbridge/query/sqlgen"
)

func mustDialect(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Get(name)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	return d
}

func render(t *testing.T, b interface {
	Render(*dialect.Dialect) (*sqlgen.Query, error)
}, dialectName string) *sqlgen.Query {
	t.Helper()
	q, err := b.Render(mustDialect(t, dialectName))
	if err != nil {
		t.Fatalf("render under %s: %v", dialectName, err)
	}
	return q
}

func TestSelectAcrossDialects(t *testing.T) {
	b := builder.SelectCols("id").
		From("users").
		Where(builder.Col("email").Eq(builder.Lit("ada@example.com")))

	tests := []struct {
		dialect string
		sql     string
	}{
		{"ansi", `SELECT "id" FROM "users" WHERE "email" = ?`},
		{"postgres", `SELECT "id" FROM "users" WHERE "email" = $1`},
		{"mysql", "SELECT `id` FROM `users` WHERE `email` = ?"},
		{"sqlite", `SELECT "id" FROM "users" WHERE "email" = ?`},
		{"sqlserver", `SELECT [id] FROM [users] WHERE [email] = @p1`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			q := render(t, b, tt.dialect)
			if q.SQL != tt.sql {
				t.Errorf("got  %s\nwant %s", q.SQL, tt.sql)
			}
			want := []any{"ada@example.com"}
			if !reflect.DeepEqual(q.Args, want) {
				t.Errorf("args = %v, want %v", q.Args, want)
			}
		})
	}
}

func TestParameterOrdering(t *testing.T) {
	b := builder.SelectCols("id").
		From("events").
		Where(builder.Col("kind").Eq(builder.Lit("click")).
			And(builder.Col("count").Gt(builder.Lit(int64(10)))).
			Or(builder.Col("source").Eq(builder.Lit("import"))))

	q := render(t, b, "postgres")
	want := []any{"click", int64(10), "import"}
	if !reflect.DeepEqual(q.Args, want) {
		t.Errorf("args = %v, want %v", q.Args, want)
	}
	for i := 1; i <= 3; i++ {
		tok := mustDialect(t, "postgres").PlaceholderToken(i)
		if !strings.Contains(q.SQL, tok) {
			t.Errorf("SQL missing placeholder %s: %s", tok, q.SQL)
		}
	}
}

func TestPrecedenceParenthesization(t *testing.T) {
	a := builder.Col("a").Eq(builder.Lit(int64(1)))
	b := builder.Col("b").Eq(builder.Lit(int64(2)))
	c := builder.Col("c").Eq(builder.Lit(int64(3)))

	tests := []struct {
		name string
		cond builder.E
		sql  string
	}{
		{
			"or under and, left",
			a.Or(b).And(c),
			`SELECT "a" FROM "t" WHERE ("a" = ? OR "b" = ?) AND "c" = ?`,
		},
		{
			"or under and, right",
			a.And(b.Or(c)),
			`SELECT "a" FROM "t" WHERE "a" = ? AND ("b" = ? OR "c" = ?)`,
		},
		{
			"and chain needs no parens",
			a.And(b).And(c),
			`SELECT "a" FROM "t" WHERE "a" = ? AND "b" = ? AND "c" = ?`,
		},
		{
			"not binds looser than comparison",
			a.Not().And(b),
			`SELECT "a" FROM "t" WHERE NOT "a" = ? AND "b" = ?`,
		},
		{
			"right-nested and chain needs no parens",
			a.And(b.And(c)),
			`SELECT "a" FROM "t" WHERE "a" = ? AND "b" = ? AND "c" = ?`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := render(t, builder.SelectCols("a").From("t").Where(tt.cond), "ansi")
			if q.SQL != tt.sql {
				t.Errorf("got  %s\nwant %s", q.SQL, tt.sql)
			}
		})
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	price := builder.Col("price")
	tax := builder.Col("tax")
	qty := builder.Col("qty")

	tests := []struct {
		name string
		expr builder.E
		sql  string
	}{
		{
			"mul binds tighter than add",
			price.Add(tax.Mul(qty)),
			`"price" + "tax" * "qty"`,
		},
		{
			"parens kept when add feeds mul",
			price.Add(tax).Mul(qty),
			`("price" + "tax") * "qty"`,
		},
		{
			"right side of minus stays grouped",
			price.Sub(tax.Sub(qty)),
			`"price" - ("tax" - "qty")`,
		},
		{
			"division right of multiplication stays grouped",
			price.Mul(tax.Div(qty)),
			`"price" * ("tax" / "qty")`,
		},
		{
			"subtraction right of addition stays grouped",
			price.Add(tax.Sub(qty)),
			`"price" + ("tax" - "qty")`,
		},
		{
			"left-nested division needs no parens",
			price.Div(tax).Mul(qty),
			`"price" / "tax" * "qty"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := render(t, builder.Select(tt.expr).From("items"), "ansi")
			want := "SELECT " + tt.sql + ` FROM "items"`
			if q.SQL != want {
				t.Errorf("got  %s\nwant %s", q.SQL, want)
			}
		})
	}
}

func TestPostfixOperandGrouping(t *testing.T) {
	tests := []struct {
		name string
		expr builder.E
		sql  string
	}{
		{
			"comparison under is null keeps parens",
			builder.Col("a").Eq(builder.Col("b")).IsNull(),
			`SELECT ("a" = "b") IS NULL FROM "t"`,
		},
		{
			"comparison under is not null keeps parens",
			builder.Col("a").Lt(builder.Col("b")).IsNotNull(),
			`SELECT ("a" < "b") IS NOT NULL FROM "t"`,
		},
		{
			"plain column needs no parens",
			builder.Col("a").IsNull(),
			`SELECT "a" IS NULL FROM "t"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := render(t, builder.Select(tt.expr).From("t"), "ansi")
			if q.SQL != tt.sql {
				t.Errorf("got  %s\nwant %s", q.SQL, tt.sql)
			}
		})
	}
}

func TestInjectionSafety(t *testing.T) {
	hostile := `'; DROP TABLE students; --`
	b := builder.SelectCols("id").
		From("students").
		Where(builder.Col("name").Eq(builder.Lit(hostile)))

	for _, name := range dialect.Names() {
		q := render(t, b, name)
		if strings.Contains(q.SQL, "DROP TABLE") {
			t.Errorf("%s: literal leaked into SQL: %s", name, q.SQL)
		}
		if len(q.Args) != 1 || q.Args[0] != hostile {
			t.Errorf("%s: args = %v, want the raw value", name, q.Args)
		}
	}
}

func TestIdentifierQuoteEscaping(t *testing.T) {
	tests := []struct {
		dialect string
		column  string
		sql     string
	}{
		{"ansi", `we"ird`, `SELECT "we""ird" FROM "t"`},
		{"sqlserver", `we]ird`, `SELECT [we]]ird] FROM [t]`},
		{"mysql", "we`ird", "SELECT `we``ird` FROM `t`"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			q := render(t, builder.SelectCols(tt.column).From("t"), tt.dialect)
			if q.SQL != tt.sql {
				t.Errorf("got  %s\nwant %s", q.SQL, tt.sql)
			}
		})
	}
}

func TestRenderingIsIdempotent(t *testing.T) {
	stmt, err := builder.SelectCols("id", "email").
		From("users").
		Where(builder.Col("active").Eq(builder.Lit(true)).
			And(builder.Col("age").Ge(builder.Lit(int64(18))))).
		OrderByDesc(builder.Col("id")).
		Limit(5).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	d := mustDialect(t, "mysql")
	first, err := sqlgen.Render(stmt, d)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sqlgen.Render(stmt, d)
	if err != nil {
		t.Fatal(err)
	}
	if first.SQL != second.SQL || !reflect.DeepEqual(first.Args, second.Args) {
		t.Errorf("renders differ:\n%v %v\n%v %v", first.SQL, first.Args, second.SQL, second.Args)
	}
}

func TestDialectEquivalence(t *testing.T) {
	// The same tree yields the same argument values in the same order
	// under every dialect; only the SQL text differs.
	b := builder.SelectCols("id").
		From("orders").
		Where(builder.Col("total").Gt(builder.Lit(99.5)).
			And(builder.Col("status").In(builder.Lit("open"), builder.Lit("held"))))

	want := []any{99.5, "open", "held"}
	for _, name := range dialect.Names() {
		q := render(t, b, name)
		if !reflect.DeepEqual(q.Args, want) {
			t.Errorf("%s: args = %v, want %v", name, q.Args, want)
		}
	}
}

func TestPagination(t *testing.T) {
	base := builder.SelectCols("id").From("logs").OrderBy(builder.Col("id"))

	t.Run("limit offset tail", func(t *testing.T) {
		q := render(t, base.Limit(10).Offset(20), "postgres")
		want := `SELECT "id" FROM "logs" ORDER BY "id" ASC LIMIT 10 OFFSET 20`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})

	t.Run("top in select clause", func(t *testing.T) {
		q := render(t, base.Limit(10), "sqlserver")
		want := `SELECT TOP 10 [id] FROM [logs] ORDER BY [id] ASC`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})

	t.Run("offset unsupported with top", func(t *testing.T) {
		_, err := base.Limit(10).Offset(5).Render(mustDialect(t, "sqlserver"))
		var unsupported *sqlgen.UnsupportedOperationError
		if !errors.As(err, &unsupported) {
			t.Fatalf("err = %v, want UnsupportedOperationError", err)
		}
		if unsupported.Operation != "OFFSET" {
			t.Errorf("operation = %q, want OFFSET", unsupported.Operation)
		}
	})

	t.Run("pagination never becomes a parameter", func(t *testing.T) {
		q := render(t, base.Limit(10).Offset(20), "postgres")
		if len(q.Args) != 0 {
			t.Errorf("args = %v, want none", q.Args)
		}
	})
}

func TestFunctionMapping(t *testing.T) {
	tests := []struct {
		dialect string
		expr    builder.E
		want    string
	}{
		{"postgres", builder.Func("GUID"), `GEN_RANDOM_UUID()`},
		{"mysql", builder.Func("GUID"), `UUID()`},
		{"sqlserver", builder.Func("GUID"), `NEWID()`},
		{"ansi", builder.Func("LENGTH", builder.Col("name")), `CHARACTER_LENGTH("name")`},
		{"mysql", builder.Func("LENGTH", builder.Col("name")), "CHAR_LENGTH(`name`)"},
		{"sqlserver", builder.Func("LENGTH", builder.Col("name")), `LEN([name])`},
		{"mysql", builder.Func("CURRENT_TIMESTAMP"), `NOW()`},
		{"sqlserver", builder.Func("CURRENT_TIMESTAMP"), `GETDATE()`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+" "+tt.want, func(t *testing.T) {
			q := render(t, builder.Select(tt.expr).From("t"), tt.dialect)
			want := "SELECT " + tt.want + " FROM " +
				mustDialect(t, tt.dialect).QuoteIdent("t")
			if q.SQL != want {
				t.Errorf("got  %s\nwant %s", q.SQL, want)
			}
		})
	}
}

func TestConcatSpellings(t *testing.T) {
	expr := builder.Col("first").Concat(builder.Lit(" ")).Concat(builder.Col("last"))
	tests := []struct {
		dialect string
		want    string
	}{
		{"postgres", `SELECT ("first" || $1) || "last" FROM "people"`},
		{"mysql", "SELECT CONCAT((CONCAT(`first`, ?)), `last`) FROM `people`"},
		{"sqlserver", `SELECT ([first] + @p1) + [last] FROM [people]`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			q := render(t, builder.Select(expr).From("people"), tt.dialect)
			if q.SQL != tt.want {
				t.Errorf("got  %s\nwant %s", q.SQL, tt.want)
			}
			if len(q.Args) != 1 || q.Args[0] != " " {
				t.Errorf("args = %v", q.Args)
			}
		})
	}
}

func TestUnsupportedFunction(t *testing.T) {
	_, err := builder.Select(builder.Func("GUID")).From("t").
		Render(mustDialect(t, "sqlite"))
	var unsupported *sqlgen.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want UnsupportedOperationError", err)
	}
	if unsupported.Dialect != "sqlite" || unsupported.Operation != "GUID" {
		t.Errorf("got %+v", unsupported)
	}
}

func TestInAndSubquery(t *testing.T) {
	t.Run("value list", func(t *testing.T) {
		q := render(t, builder.SelectCols("id").From("users").
			Where(builder.Col("id").In(
				builder.Lit(int64(1)), builder.Lit(int64(2)), builder.Lit(int64(3)))), "ansi")
		want := `SELECT "id" FROM "users" WHERE "id" IN (?, ?, ?)`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})

	t.Run("subquery", func(t *testing.T) {
		sub := builder.SelectCols("user_id").From("orders")
		q := render(t, builder.SelectCols("id").From("users").
			Where(builder.Col("id").InQuery(sub)), "ansi")
		want := `SELECT "id" FROM "users" WHERE "id" IN (SELECT "user_id" FROM "orders")`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})
}

func TestDeferredParams(t *testing.T) {
	q := render(t, builder.SelectCols("id").From("users").
		Where(builder.Col("email").Eq(builder.Param(1))), "postgres")
	want := `SELECT "id" FROM "users" WHERE "email" = $1`
	if q.SQL != want {
		t.Errorf("got  %s\nwant %s", q.SQL, want)
	}
	if !reflect.DeepEqual(q.Args, []any{sqlgen.BoundParam{Index: 1}}) {
		t.Errorf("args = %v, want a bound-param marker", q.Args)
	}
}

func TestJoinGroupOrder(t *testing.T) {
	b := builder.SelectCols("u.country").
		ColumnAs(builder.Func("COUNT", builder.Col("orders.id")), "orders").
		FromAs("users", "u").
		InnerJoin("orders", builder.Col("orders.user_id").Eq(builder.Col("u.id"))).
		GroupBy(builder.Col("u.country")).
		Having(builder.Func("COUNT", builder.Col("orders.id")).Gt(builder.Lit(int64(10)))).
		OrderBy(builder.Col("u.country"))

	q := render(t, b, "ansi")
	want := `SELECT "u"."country", COUNT("orders"."id") AS "orders" ` +
		`FROM "users" AS "u" INNER JOIN "orders" ON "orders"."user_id" = "u"."id" ` +
		`GROUP BY "u"."country" HAVING COUNT("orders"."id") > ? ORDER BY "u"."country" ASC`
	if q.SQL != want {
		t.Errorf("got  %s\nwant %s", q.SQL, want)
	}
}

func TestInsertUpdateDelete(t *testing.T) {
	t.Run("multi-row insert", func(t *testing.T) {
		q := render(t, builder.InsertInto("users").
			Columns("email", "name").
			Values("a@x.com", "A").
			Values("b@x.com", "B"), "ansi")
		want := `INSERT INTO "users" ("email", "name") VALUES (?, ?), (?, ?)`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
		wantArgs := []any{"a@x.com", "A", "b@x.com", "B"}
		if !reflect.DeepEqual(q.Args, wantArgs) {
			t.Errorf("args = %v, want %v", q.Args, wantArgs)
		}
	})

	t.Run("update with null", func(t *testing.T) {
		q := render(t, builder.Update("users").
			SetValue("name", nil).
			SetValue("active", false).
			Where(builder.Col("id").Eq(builder.Lit(int64(7)))), "postgres")
		want := `UPDATE "users" SET "name" = NULL, "active" = FALSE WHERE "id" = $1`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})

	t.Run("booleans inline per dialect", func(t *testing.T) {
		q := render(t, builder.Update("users").
			SetValue("active", true), "mysql")
		want := "UPDATE `users` SET `active` = 1"
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})

	t.Run("delete", func(t *testing.T) {
		q := render(t, builder.DeleteFrom("sessions").
			Where(builder.Col("expires_at").Lt(builder.Param(1))), "sqlserver")
		want := `DELETE FROM [sessions] WHERE [expires_at] < @p1`
		if q.SQL != want {
			t.Errorf("got  %s\nwant %s", q.SQL, want)
		}
	})
}

func TestDistinctAndStar(t *testing.T) {
	t.Run("select star", func(t *testing.T) {
		q := render(t, builder.Select().From("users"), "ansi")
		if q.SQL != `SELECT * FROM "users"` {
			t.Errorf("got %s", q.SQL)
		}
	})
	t.Run("distinct", func(t *testing.T) {
		q := render(t, builder.SelectCols("country").Distinct().From("users"), "ansi")
		if q.SQL != `SELECT DISTINCT "country" FROM "users"` {
			t.Errorf("got %s", q.SQL)
		}
	})
}

func TestRendererResolution(t *testing.T) {
	r, err := sqlgen.NewRenderer("PostgreSQL")
	if err != nil {
		t.Fatalf("alias lookup failed: %v", err)
	}
	if r.Dialect().Name != "postgres" {
		t.Errorf("resolved %s, want postgres", r.Dialect().Name)
	}

	_, err = sqlgen.NewRenderer("oracle")
	var unknown *dialect.UnsupportedDialectError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnsupportedDialectError", err)
	}

	_, err = sqlgen.Render(&ast.SelectStmt{From: ast.TableRef{Name: "t"}}, nil)
	if !errors.As(err, &unknown) {
		t.Fatalf("nil dialect: err = %v, want UnsupportedDialectError", err)
	}
}
