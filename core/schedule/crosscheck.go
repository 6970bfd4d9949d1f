package schedule

import "time"

// SplitCrossCheck turns a cross-check task into its submission and review items.
// Both items share the task identity and scoring metadata; only windows, tag and status differ.
func SplitCrossCheck(now time.Time, t CourseTask, progress *StudentProgress) [2]Item {
	submitWindow, reviewWindow := t.Window.Submit(), t.Window.Review()

	submit := taskItem(t, progress)
	submit.StartDate, submit.EndDate = copyTime(submitWindow.Start), copyTime(submitWindow.End)
	submit.Tag = TagCrossCheckSubmit
	submit.Status = CrossCheckStatus(now, submitWindow, TagCrossCheckSubmit, progress)

	review := taskItem(t, progress)
	review.StartDate, review.EndDate = copyTime(reviewWindow.Start), copyTime(reviewWindow.End)
	review.Tag = TagCrossCheckReview
	review.Status = CrossCheckStatus(now, reviewWindow, TagCrossCheckReview, progress)

	return [2]Item{submit, review}
}

// taskItem fills the fields every task item carries, whatever its phase.
func taskItem(t CourseTask, progress *StudentProgress) Item {
	maxScore, scoreWeight := t.Policy.MaxScore, t.Policy.ScoreWeight
	item := Item{
		ID:                t.ID,
		CourseID:          t.CourseID,
		Name:              t.Name,
		CrossCheckEndDate: copyTime(t.Window.CrossCheckEnd),
		MaxScore:          &maxScore,
		ScoreWeight:       &scoreWeight,
		DescriptionURL:    t.DescriptionURL,
		Organizer:         copyPerson(t.Owner),
		Source:            SourceCourseTask,
	}
	if progress != nil && progress.Score != nil {
		score := *progress.Score
		item.Score = &score
	}
	return item
}

// copyTime and copyPerson detach items from the records they are built from.

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyPerson(p *Person) *Person {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
