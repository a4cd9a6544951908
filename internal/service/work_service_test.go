package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/models"
)

type feedStub struct {
	rows  map[int][]models.AssignmentRow
	calls map[int]int
}

func newFeedStub() *feedStub {
	return &feedStub{rows: make(map[int][]models.AssignmentRow), calls: make(map[int]int)}
}

func (f *feedStub) OpenByDivision(ctx context.Context, divisionID int) ([]models.AssignmentRow, error) {
	f.calls[divisionID]++
	return f.rows[divisionID], nil
}

func assignmentRow(division int, docNumber, executor, controller, approver string) models.AssignmentRow {
	plan := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	return models.AssignmentRow{
		DivisionID:     division,
		DocumentNumber: docNumber,
		DocumentName:   "Turbine hall layout",
		WorkName:       "Stage review",
		Executor:       executor,
		Controller:     controller,
		Approver:       approver,
		PlanDate:       &plan,
	}
}

func TestWorkServiceMergesExecutorsAcrossRows(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{
		assignmentRow(5, "10/77", "Alice", "Carl", "Dunn"),
		assignmentRow(5, "10/77", "Bob", "Carl", "Dunn"),
	}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	records, err := svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"Alice", "Bob"}, records[0].Executors)
}

func TestWorkServiceEmptyDivisionSetSkipsStorage(t *testing.T) {
	feed := newFeedStub()
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	records, err := svc.GetWorkRecords(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, records)
	require.Empty(t, feed.calls)
}

func TestWorkServiceDeduplicatesDivisionSet(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	records, err := svc.GetWorkRecords(context.Background(), []int{5, 5, 5})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 1, feed.calls[5])
}

func TestWorkServiceSecondPassMergesAcrossDivisions(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	feed.rows[6] = []models.AssignmentRow{assignmentRow(6, "10/77", "Bob", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	records, err := svc.GetWorkRecords(context.Background(), []int{5, 6})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"Alice", "Bob"}, records[0].Executors)
}

func TestWorkServiceCachesDivisionResults(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	_, err := svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)
	_, err = svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)
	require.Equal(t, 1, feed.calls[5])
}

func TestWorkServiceClearCacheForcesRequery(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	_, err := svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)

	svc.ClearCache(context.Background(), 5)

	_, err = svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)
	require.Equal(t, 2, feed.calls[5])
}

func TestWorkServiceExpiredEntryIsAMiss(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(30*time.Millisecond), nil, nil)

	_, err := svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = svc.GetWorkRecords(context.Background(), []int{5})
	require.NoError(t, err)
	require.Equal(t, 2, feed.calls[5])
}

func TestWorkServiceExecutorsAndApprovers(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{
		assignmentRow(5, "10/77", "Alice", "Carl", "Dunn"),
		assignmentRow(5, "11/80", "Bob", "Carl", "Evans"),
		assignmentRow(5, "12/81", "Alice", "Dana", "Dunn"),
	}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	executors, err := svc.Executors(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob"}, executors)

	approvers, err := svc.Approvers(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, []string{"Dunn", "Evans"}, approvers)

	// both lists served from cache afterwards
	require.Equal(t, 1, feed.calls[5])
}

func TestWorkServiceFindRecord(t *testing.T) {
	feed := newFeedStub()
	feed.rows[5] = []models.AssignmentRow{assignmentRow(5, "10/77", "Alice", "Carl", "Dunn")}
	svc := NewWorkService(feed, NewDivisionCache(time.Minute), nil, nil)

	record, err := svc.FindRecord(context.Background(), []int{5}, "10/77")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, "10/77", record.DocumentNumber)

	missing, err := svc.FindRecord(context.Background(), []int{5}, "99/99")
	require.NoError(t, err)
	require.Nil(t, missing)
}
