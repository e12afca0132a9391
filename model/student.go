package model

// StudentStats is the per-student aggregate built from the attendance
// sessions and classrooms collections. A stats entry is created the first
// time a student id is seen in either source and accumulated on every later
// encounter; rates, rounding, and the course-list cap are applied once at
// finalization and the entry is not mutated afterwards.
type StudentStats struct {
	StudentID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`

	TotalSessions     int `json:"totalSessions"`
	CompletedSessions int `json:"completedSessions"`

	// AttendanceRate is round(100 * CompletedSessions / TotalSessions),
	// computed at finalization.
	AttendanceRate int `json:"attendanceRate"`

	// AverageRating follows the upstream dashboard's running policy of
	// (current + new) / 2 per incoming rating. It is recency-weighted and
	// order-sensitive, not sum/count.
	AverageRating float64 `json:"averageRating"`

	// Courses holds the distinct course names seen for the student, capped
	// at MaxCoursesPerStudent after de-duplication.
	Courses []string `json:"courses"`
}

// MaxCoursesPerStudent caps the course list kept per aggregated student.
const MaxCoursesPerStudent = 5

// AsRecord converts the finalized stats into a Record so enrolled-student
// aggregates can flow through the same query/sort/page stages as any other
// collection.
func (s *StudentStats) AsRecord() Record {
	return Record{
		"id":                s.StudentID,
		"name":              s.Name,
		"email":             s.Email,
		"role":              s.Role,
		"totalSessions":     s.TotalSessions,
		"completedSessions": s.CompletedSessions,
		"attendanceRate":    s.AttendanceRate,
		"averageRating":     s.AverageRating,
		"courses":           s.Courses,
	}
}
