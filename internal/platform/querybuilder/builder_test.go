package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "status").
		From("matches").
		Where(Eq("competition_id", "c1"), IsNull("deleted_at"), InStrings("status", []string{"LIVE", "HALF_TIME"})).
		OrderBy("matchday", "scheduled_at").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, status FROM matches WHERE competition_id = $1 AND deleted_at IS NULL AND status IN ($2, $3) ORDER BY matchday, scheduled_at LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"c1", "LIVE", "HALF_TIME"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdate(t *testing.T) {
	query, args, err := Select("team_id", "points").
		From("standings").
		Where(Eq("competition_id", "c1"), Eq("team_id", "t1")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT team_id, points FROM standings WHERE competition_id = $1 AND team_id = $2 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("teams").Where(InStrings("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("match_events").
		Columns("id", "kind").
		Values("e1", "GOAL").
		Values("e2", "ASSIST").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_events (id, kind) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"e1", "GOAL", "e2", "ASSIST"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("status", "LIVE").
		SetExpr("minute", "GREATEST(minute, ?)", 46).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET status = $1, minute = GREATEST(minute, $2), updated_at = NOW() WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"LIVE", 46, "m1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateAndDeleteRequireWhere(t *testing.T) {
	if _, _, err := Update("matches").Set("status", "LIVE").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where")
	}
	if _, _, err := DeleteFrom("matches").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_lineups").
		Where(Eq("match_id", "m1"), Eq("team_id", "t1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM match_lineups WHERE match_id = $1 AND team_id = $2" {
		t.Fatalf("unexpected query %q", query)
	}
	if !reflect.DeepEqual(args, []any{"m1", "t1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type testRow struct {
	ID      string `db:"id"`
	Points  int    `db:"points"`
	Skip    string `db:"-"`
	private string
}

func TestInsertModels(t *testing.T) {
	rows := []any{
		testRow{ID: "a", Points: 3, private: "x"},
		&testRow{ID: "b", Points: 1},
	}
	query, args, err := InsertModels("standings", rows, "ON CONFLICT (id) DO UPDATE SET "+ExcludedSet("points"))
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO standings (id, points) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO UPDATE SET points = EXCLUDED.points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"a", 3, "b", 1}) {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := Columns(testRow{}, "s")
	if err != nil {
		t.Fatalf("columns: %v", err)
	}
	if !reflect.DeepEqual(cols, []string{"s.id", "s.points"}) {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}
