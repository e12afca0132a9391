// Package aggregate merges the attendance sessions and classrooms
// collections into per-student enrollment statistics.
package aggregate

import (
	"math"

	"github.com/talentbridge/dashboard-gateway/model"
)

// StatusCompleted is the status value that counts a source record towards a
// student's completed total.
const StatusCompleted = "completed"

// KeyFunc extracts the aggregation key from a source record. Records it
// rejects are skipped.
type KeyFunc func(model.Record) (string, bool)

// StudentKey keys source records by their studentId field.
func StudentKey(record model.Record) (string, bool) {
	return record.GetString("studentId")
}

// Aggregate scans the two source collections, sessions first and then
// classrooms, and accumulates one StudentStats per key.
//
// A stats entry is created on first encounter of its key in either source,
// copying the identity fields from that record. Every encounter (including
// the first) increments the total count, and records whose status equals
// StatusCompleted increment the completed count, so the counts and the
// attendance rate are the same whichever source is scanned first. The rating
// average follows the dashboard's historical (current + new) / 2 policy and
// therefore is order-sensitive by design.
//
// The returned map is not finalized; call Finalize once both sources have
// been scanned and before handing the stats to a renderer.
func Aggregate(sessions, classrooms []model.Record, key KeyFunc) map[string]*model.StudentStats {
	stats := make(map[string]*model.StudentStats)
	scan(stats, sessions, key)
	scan(stats, classrooms, key)
	return stats
}

// Finalize computes the derived fields of every entry: the rounded
// attendance rate and the de-duplicated, capped course list. Entries are
// not mutated afterwards by any stage, and running Finalize again yields
// the same values.
func Finalize(stats map[string]*model.StudentStats) {
	for _, entry := range stats {
		if entry.TotalSessions > 0 {
			entry.AttendanceRate = int(math.Round(100 * float64(entry.CompletedSessions) / float64(entry.TotalSessions)))
		} else {
			entry.AttendanceRate = 0
		}
		entry.Courses = dedupeAndCap(entry.Courses, model.MaxCoursesPerStudent)
	}
}

// Records converts finalized stats into a listable record set.
func Records(stats map[string]*model.StudentStats) []model.Record {
	records := make([]model.Record, 0, len(stats))
	for _, entry := range stats {
		records = append(records, entry.AsRecord())
	}
	return records
}

func scan(stats map[string]*model.StudentStats, source []model.Record, key KeyFunc) {
	for _, record := range source {
		id, ok := key(record)
		if !ok {
			continue
		}

		entry, exists := stats[id]
		if !exists {
			entry = &model.StudentStats{StudentID: id}
			entry.Name, _ = record.GetString("studentName")
			entry.Email, _ = record.GetString("studentEmail")
			entry.Role, _ = record.GetString("studentRole")
			stats[id] = entry
		}

		entry.TotalSessions++
		if status, ok := record.GetString("status"); ok && status == StatusCompleted {
			entry.CompletedSessions++
		}

		if rating, ok := record.GetFloat("rating"); ok {
			entry.AverageRating = (entry.AverageRating + rating) / 2
		}

		if course, ok := record.GetString("course"); ok && course != "" {
			entry.Courses = append(entry.Courses, course)
		}
	}
}

// dedupeAndCap keeps the first occurrence of each value, in order, up to max
// entries. Already-deduplicated input passes through unchanged, which keeps
// Finalize idempotent.
func dedupeAndCap(values []string, max int) []string {
	seen := make(map[string]bool, len(values))
	deduped := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		deduped = append(deduped, value)
		if len(deduped) == max {
			break
		}
	}
	return deduped
}
