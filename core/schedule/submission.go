package schedule

// ResolveSubmitted reports whether the student handed in work for the course task:
// either a solution was submitted or a reviewer was assigned to it.
func ResolveSubmitted(courseTaskID int, results *StudentResults) bool {
	if results == nil {
		return false
	}
	for _, s := range results.Solutions {
		if s.CourseTaskID == courseTaskID {
			return true
		}
	}
	for _, c := range results.Checkers {
		if c.CourseTaskID == courseTaskID {
			return true
		}
	}
	return false
}

// ResolveProgress resolves the score and submission state of a course task.
// It returns nil without student results, which status rules treat as "no student".
func ResolveProgress(courseTaskID int, results *StudentResults) *StudentProgress {
	if results == nil {
		return nil
	}
	return &StudentProgress{
		Score:     ResolveScore(courseTaskID, results),
		Submitted: ResolveSubmitted(courseTaskID, results),
	}
}
