package domain

// LessonStatus is the progression state of a lesson. Values outside the
// known set are carried through unchanged so newer catalogs still load.
type LessonStatus string

const (
	LessonDone   LessonStatus = "done"
	LessonActive LessonStatus = "active"
	LessonLocked LessonStatus = "locked"
)

// Known reports whether s is one of done, active or locked.
func (s LessonStatus) Known() bool {
	switch s {
	case LessonDone, LessonActive, LessonLocked:
		return true
	default:
		return false
	}
}

// ValidLessonStatuses is the canonical set of status strings, in progression order.
var ValidLessonStatuses = []LessonStatus{LessonLocked, LessonActive, LessonDone}
