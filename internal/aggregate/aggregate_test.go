package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/models"
)

func date(day int) *time.Time {
	t := time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func row(executor, controller string) models.AssignmentRow {
	return models.AssignmentRow{
		DivisionID:     5,
		DocumentNumber: "10/77",
		DocumentName:   "Turbine hall layout",
		WorkName:       "Stage review",
		Executor:       executor,
		Controller:     controller,
		Approver:       "Dunn",
		PlanDate:       date(10),
	}
}

func TestRowsMergesSameKey(t *testing.T) {
	records := Rows([]models.AssignmentRow{
		row("Alice", "Carl"),
		row("Bob", "Carl"),
		row("Alice", "Dana"),
	})

	require.Len(t, records, 1)
	require.Equal(t, []string{"Alice", "Bob"}, records[0].Executors)
	require.Equal(t, []string{"Carl", "Dana"}, records[0].Controllers)
	require.Equal(t, "Dunn", records[0].Approver)
}

func TestRowsKeepsDistinctKeysApart(t *testing.T) {
	a := row("Alice", "Carl")
	b := row("Alice", "Carl")
	b.PlanDate = date(11)
	c := row("Alice", "Carl")
	c.Approver = "Evans"

	records := Rows([]models.AssignmentRow{a, b, c})
	require.Len(t, records, 3)
}

func TestRowsNilDateDistinctFromSet(t *testing.T) {
	a := row("Alice", "Carl")
	b := row("Bob", "Carl")
	b.FactDate = date(20)

	records := Rows([]models.AssignmentRow{a, b})
	require.Len(t, records, 2)
}

func TestRowsBlankExecutorKeepsRecord(t *testing.T) {
	records := Rows([]models.AssignmentRow{row("  ", "Carl")})
	require.Len(t, records, 1)
	require.Empty(t, records[0].Executors)
	require.Equal(t, []string{"Carl"}, records[0].Controllers)
}

func TestRowsSplitsCommaJoinedNames(t *testing.T) {
	records := Rows([]models.AssignmentRow{
		row("Alice, Bob", "Carl"),
		row("Bob,Eve", "Carl"),
	})
	require.Len(t, records, 1)
	require.Equal(t, []string{"Alice", "Bob", "Eve"}, records[0].Executors)
}

func TestRowsEmptyInput(t *testing.T) {
	require.Empty(t, Rows(nil))
	require.Empty(t, Rows([]models.AssignmentRow{}))
}

func TestRowsPreservesFirstSeenOrder(t *testing.T) {
	first := row("Alice", "Carl")
	second := row("Bob", "Carl")
	second.DocumentNumber = "11/78"
	third := row("Eve", "Carl")

	records := Rows([]models.AssignmentRow{first, second, third})
	require.Len(t, records, 2)
	require.Equal(t, "10/77", records[0].DocumentNumber)
	require.Equal(t, "11/78", records[1].DocumentNumber)
}

func TestRecordsReaggregationIsIdempotent(t *testing.T) {
	rows := []models.AssignmentRow{
		row("Alice", "Carl"),
		row("Bob", "Carl"),
	}
	once := Rows(rows)

	twice := Records(append(Rows(rows), Rows(rows)...))
	require.Equal(t, once, twice)

	again := Records(once)
	require.Equal(t, once, again)
}

func TestRecordsUnionsAcrossDivisions(t *testing.T) {
	div1 := Rows([]models.AssignmentRow{row("Alice", "Carl")})
	div2 := Rows([]models.AssignmentRow{row("Bob", "Dana")})

	merged := Records(append(div1, div2...))
	require.Len(t, merged, 1)
	require.Equal(t, []string{"Alice", "Bob"}, merged[0].Executors)
	require.Equal(t, []string{"Carl", "Dana"}, merged[0].Controllers)
}

func TestUnionDeduplicatesAndKeepsOrder(t *testing.T) {
	records := Rows([]models.AssignmentRow{
		row("A", ""),
		row("B", ""),
		row("A", ""),
	})
	require.Len(t, records, 1)
	require.Equal(t, []string{"A", "B"}, records[0].Executors)
	require.Equal(t, "A, B", JoinNames(records[0].Executors))
}
