package report

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"ore/internal/core"
)

var (
	acme  = core.Client{ID: 1, Name: "Acme", Slug: "acme"}
	alpha = core.Project{ID: 1, Name: "Alpha", Slug: "alpha", Client: acme}
	beta  = core.Project{ID: 2, Name: "Beta", Slug: "beta", Client: acme}
	bob   = core.Person{ID: 1, Name: "Bob", Slug: "bob"}
	carol = core.Person{ID: 2, Name: "Carol", Slug: "carol"}
)

func entry(id int64, d core.Date, h core.Hours, p core.Person, pr core.Project) core.Entry {
	return core.Entry{ID: id, Date: d, Hours: h, Person: p, Project: pr}
}

func TestAggregateEmptyInput(t *testing.T) {
	groups, err := Aggregate(nil, ByProject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("got %d groups for empty input, want 0", len(groups))
	}
}

func TestAggregateSumsSameKey(t *testing.T) {
	d := core.NewDate(2024, 3, 12)
	entries := []core.Entry{
		entry(1, d, 3, bob, alpha),
		entry(2, d, 5, bob, alpha),
	}

	groups, err := Aggregate(entries, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d weeks, want 1", len(groups))
	}
	if len(groups[0].Rows) != 1 {
		t.Fatalf("got %d rows, want 1 summed row", len(groups[0].Rows))
	}
	if got := groups[0].Rows[0].Hours; got != 8 {
		t.Errorf("summed hours = %v, want 8", got)
	}
}

func TestAggregateWeekContainment(t *testing.T) {
	monday := core.NewDate(2024, 3, 11)
	sunday := core.NewDate(2024, 3, 17)
	nextMonday := core.NewDate(2024, 3, 18)

	entries := []core.Entry{
		entry(1, monday, 2, bob, alpha),
		entry(2, sunday, 3, bob, alpha),
		entry(3, nextMonday, 4, bob, alpha),
	}

	groups, err := Aggregate(entries, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d weeks, want 2", len(groups))
	}

	// Most recent week first: the one holding only next Monday's entry.
	if !groups[0].Week.Start.Equal(nextMonday) {
		t.Errorf("first week start = %s, want %s", groups[0].Week.Start.ISO(), nextMonday.ISO())
	}
	if len(groups[0].Rows) != 1 {
		t.Errorf("later week has %d rows, want 1", len(groups[0].Rows))
	}

	// Monday and Sunday entries share the earlier week.
	if !groups[1].Week.Start.Equal(monday) {
		t.Errorf("second week start = %s, want %s", groups[1].Week.Start.ISO(), monday.ISO())
	}
	if len(groups[1].Rows) != 2 {
		t.Errorf("earlier week has %d rows, want 2", len(groups[1].Rows))
	}
}

func TestAggregateOrdering(t *testing.T) {
	entries := []core.Entry{
		entry(1, core.NewDate(2024, 3, 20), 1, bob, alpha),   // middle week, Wednesday
		entry(2, core.NewDate(2024, 3, 26), 2, bob, alpha),   // latest week, Tuesday
		entry(3, core.NewDate(2024, 3, 12), 3, bob, alpha),   // earliest week
		entry(4, core.NewDate(2024, 3, 18), 4, carol, beta),  // middle week, Monday
		entry(5, core.NewDate(2024, 3, 25), 5, carol, alpha), // latest week, Monday
	}

	groups, err := Aggregate(entries, ByPerson)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d weeks, want 3", len(groups))
	}

	// Weeks strictly descending by start.
	for i := 1; i < len(groups); i++ {
		if !groups[i-1].Week.Start.After(groups[i].Week.Start) {
			t.Errorf("weeks not strictly descending at index %d: %s then %s",
				i, groups[i-1].Week.Start.ISO(), groups[i].Week.Start.ISO())
		}
	}

	// Rows ascending by date within each week.
	for _, g := range groups {
		for i := 1; i < len(g.Rows); i++ {
			if g.Rows[i].Date.Before(g.Rows[i-1].Date) {
				t.Errorf("week %s: rows not ascending by date", g.Week.Start.ISO())
			}
		}
	}
}

func TestAggregateDimensionSelectors(t *testing.T) {
	d := core.NewDate(2024, 3, 12)
	entries := []core.Entry{
		entry(1, d, 2, bob, alpha),
		entry(2, d, 3, carol, alpha),
		entry(3, d, 4, bob, beta),
	}

	t.Run("by project", func(t *testing.T) {
		groups, err := Aggregate(entries, ByProject)
		if err != nil {
			t.Fatal(err)
		}
		rows := groups[0].Rows
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2 (alpha, beta)", len(rows))
		}
		if rows[0].Name != "Alpha" || rows[0].Hours != 5 {
			t.Errorf("alpha row = %+v, want Alpha with 5h", rows[0])
		}
		if rows[1].Name != "Beta" || rows[1].Hours != 4 {
			t.Errorf("beta row = %+v, want Beta with 4h", rows[1])
		}
	})

	t.Run("by person", func(t *testing.T) {
		groups, err := Aggregate(entries, ByPerson)
		if err != nil {
			t.Fatal(err)
		}
		rows := groups[0].Rows
		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2 (bob, carol)", len(rows))
		}
		if rows[0].Name != "Bob" || rows[0].Hours != 6 {
			t.Errorf("bob row = %+v, want Bob with 6h", rows[0])
		}
		if rows[1].Name != "Carol" || rows[1].Hours != 3 {
			t.Errorf("carol row = %+v, want Carol with 3h", rows[1])
		}
	})
}

func TestAggregateDeterministic(t *testing.T) {
	entries := []core.Entry{
		entry(1, core.NewDate(2024, 3, 11), 2, bob, alpha),
		entry(2, core.NewDate(2024, 3, 12), 3, carol, beta),
		entry(3, core.NewDate(2024, 3, 19), 4, bob, beta),
	}

	first, err := Aggregate(entries, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Aggregate(entries, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two aggregations of the same input differ")
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	entries := []core.Entry{
		entry(1, core.NewDate(2024, 3, 11), 1, bob, alpha),
		entry(2, core.NewDate(2024, 3, 11), 2, bob, alpha),
		entry(3, core.NewDate(2024, 3, 12), 3, carol, alpha),
		entry(4, core.NewDate(2024, 3, 19), 4, bob, beta),
		entry(5, core.NewDate(2024, 3, 20), 5, carol, beta),
	}

	want, err := Aggregate(entries, ByPerson)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]core.Entry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := Aggregate(shuffled, ByPerson)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed the aggregate", i)
		}
	}
}

func TestAggregateNegativeHours(t *testing.T) {
	entries := []core.Entry{
		entry(1, core.NewDate(2024, 3, 11), 2, bob, alpha),
		entry(2, core.NewDate(2024, 3, 12), -1, bob, alpha),
	}

	if _, err := Aggregate(entries, ByProject); !errors.Is(err, core.ErrNegativeHours) {
		t.Errorf("Aggregate error = %v, want ErrNegativeHours", err)
	}
	if _, err := GroupByWeek(entries); !errors.Is(err, core.ErrNegativeHours) {
		t.Errorf("GroupByWeek error = %v, want ErrNegativeHours", err)
	}
}

func TestGroupByWeek(t *testing.T) {
	entries := []core.Entry{
		entry(1, core.NewDate(2024, 3, 19), 2, bob, alpha),
		entry(2, core.NewDate(2024, 3, 11), 3, bob, alpha),
		entry(3, core.NewDate(2024, 3, 11), 4, carol, beta),
		entry(4, core.NewDate(2024, 3, 13), 5, bob, beta),
	}

	groups, err := GroupByWeek(entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d weeks, want 2", len(groups))
	}

	// Newest week first, with its single raw entry.
	if !groups[0].Week.Start.Equal(core.NewDate(2024, 3, 18)) {
		t.Errorf("first week start = %s, want 2024-03-18", groups[0].Week.Start.ISO())
	}
	if len(groups[0].Entries) != 1 || groups[0].Entries[0].ID != 1 {
		t.Errorf("first week entries = %+v, want entry 1 only", groups[0].Entries)
	}

	// Earlier week keeps per-entry granularity: both March 11 entries survive.
	if len(groups[1].Entries) != 3 {
		t.Fatalf("second week has %d entries, want 3", len(groups[1].Entries))
	}
	for i := 1; i < len(groups[1].Entries); i++ {
		if groups[1].Entries[i].Date.Before(groups[1].Entries[i-1].Date) {
			t.Error("entries within week not ordered by date")
		}
	}
}

func TestGroupByWeekEmpty(t *testing.T) {
	groups, err := GroupByWeek(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("got %d groups, want 0", len(groups))
	}
}
