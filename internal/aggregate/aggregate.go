// Package aggregate collapses raw per-executor assignment rows into
// deduplicated work records. Multiple rows that agree on document, work,
// approver and every date describe the same unit of work observed once per
// executor/controller pair; they merge into one record whose executor and
// controller lists are the union of the contributing rows.
package aggregate

import (
	"math"
	"strings"
	"time"

	"github.com/workdesk/work-control-api/internal/models"
)

// key is the structural merge key. Dates participate by exact value with nil
// equal to nil; documentNumber is part of the key, so the same number combined
// with different dates or approvers stays a distinct record.
type key struct {
	documentNumber string
	documentName   string
	workName       string
	approver       string
	plan           int64
	corr1          int64
	corr2          int64
	corr3          int64
	fact           int64
}

// nil dates must not collide with any real timestamp.
const nilDate = math.MinInt64

func dateKey(t *time.Time) int64 {
	if t == nil {
		return nilDate
	}
	return t.UnixNano()
}

func rowKey(r models.AssignmentRow) key {
	return key{
		documentNumber: r.DocumentNumber,
		documentName:   r.DocumentName,
		workName:       r.WorkName,
		approver:       r.Approver,
		plan:           dateKey(r.PlanDate),
		corr1:          dateKey(r.Correction1),
		corr2:          dateKey(r.Correction2),
		corr3:          dateKey(r.Correction3),
		fact:           dateKey(r.FactDate),
	}
}

func recordKey(w models.WorkRecord) key {
	return key{
		documentNumber: w.DocumentNumber,
		documentName:   w.DocumentName,
		workName:       w.WorkName,
		approver:       w.Approver,
		plan:           dateKey(w.PlanDate),
		corr1:          dateKey(w.Correction1),
		corr2:          dateKey(w.Correction2),
		corr3:          dateKey(w.Correction3),
		fact:           dateKey(w.FactDate),
	}
}

// SplitNames splits a comma-joined name string into trimmed non-empty names.
func SplitNames(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// JoinNames flattens a name list for presentation.
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}

// union appends names not already present, preserving first-appearance order.
func union(dst []string, names []string) []string {
	for _, name := range names {
		present := false
		for _, existing := range dst {
			if existing == name {
				present = true
				break
			}
		}
		if !present {
			dst = append(dst, name)
		}
	}
	return dst
}

// Rows merges raw assignment rows into work records. Output order is the
// first-seen order of merge keys; callers needing a display order sort
// explicitly.
func Rows(rows []models.AssignmentRow) []models.WorkRecord {
	byKey := make(map[key]int, len(rows))
	records := make([]models.WorkRecord, 0, len(rows))

	for _, row := range rows {
		k := rowKey(row)
		if idx, ok := byKey[k]; ok {
			records[idx].Executors = union(records[idx].Executors, SplitNames(row.Executor))
			records[idx].Controllers = union(records[idx].Controllers, SplitNames(row.Controller))
			continue
		}
		byKey[k] = len(records)
		records = append(records, models.WorkRecord{
			DocumentNumber: row.DocumentNumber,
			DocumentName:   row.DocumentName,
			WorkName:       row.WorkName,
			Executors:      SplitNames(row.Executor),
			Controllers:    SplitNames(row.Controller),
			Approver:       row.Approver,
			PlanDate:       row.PlanDate,
			Correction1:    row.Correction1,
			Correction2:    row.Correction2,
			Correction3:    row.Correction3,
			FactDate:       row.FactDate,
			Highlight:      models.HighlightNone,
		})
	}

	return records
}

// Records runs the same merge over already-aggregated records. Used for the
// second pass across divisions; aggregation is idempotent under it.
func Records(in []models.WorkRecord) []models.WorkRecord {
	byKey := make(map[key]int, len(in))
	out := make([]models.WorkRecord, 0, len(in))

	for _, rec := range in {
		k := recordKey(rec)
		if idx, ok := byKey[k]; ok {
			out[idx].Executors = union(out[idx].Executors, rec.Executors)
			out[idx].Controllers = union(out[idx].Controllers, rec.Controllers)
			continue
		}
		byKey[k] = len(out)
		merged := rec
		merged.Executors = union(nil, rec.Executors)
		merged.Controllers = union(nil, rec.Controllers)
		out = append(out, merged)
	}

	return out
}
