package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/aliakseitokarev/rsschool-app/core"
)

type (
	// Copier copies the schedule of one course into another, shifted by the gap between their start dates.
	Copier interface {
		CopyFromTo(ctx context.Context, fromCourseID, toCourseID int) error
	}

	copier struct {
		repo CopyRepository
		log  core.Logger
	}
)

var _ Copier = (*copier)(nil)

func NewCopier(repo CopyRepository, logger core.Logger) Copier {
	return &copier{repo: repo, log: logger}
}

func (c *copier) CopyFromTo(ctx context.Context, fromCourseID, toCourseID int) error {
	if fromCourseID == toCourseID {
		return core.NewValidationError(ErrSameCourse, core.FieldError{Field: "fromCourseId", Error: ErrSameCourse.Error()})
	}

	from, err := c.repo.GetCourse(ctx, fromCourseID)
	if err != nil {
		return errors.Wrapf(err, "getting course %d", fromCourseID)
	}
	to, err := c.repo.GetCourse(ctx, toCourseID)
	if err != nil {
		return errors.Wrapf(err, "getting course %d", toCourseID)
	}

	var data CourseData
	if data.Tasks, err = c.repo.ListCourseTasks(ctx, fromCourseID); err != nil {
		return errors.Wrap(err, "listing course tasks")
	}
	if data.Events, err = c.repo.ListCourseEvents(ctx, fromCourseID); err != nil {
		return errors.Wrap(err, "listing course events")
	}
	if data.Distributions, err = c.repo.ListTeamDistributions(ctx, fromCourseID); err != nil {
		return errors.Wrap(err, "listing team distributions")
	}

	shifted := ShiftCourseData(data, toCourseID, to.StartDate.Sub(from.StartDate))
	if err := c.repo.SaveCourseData(ctx, shifted); err != nil {
		return errors.Wrap(err, "saving course data")
	}

	c.log.Info("schedule copied", map[string]interface{}{
		"fromCourseId":  fromCourseID,
		"toCourseId":    toCourseID,
		"tasks":         len(shifted.Tasks),
		"events":        len(shifted.Events),
		"distributions": len(shifted.Distributions),
	})
	return nil
}

// ShiftCourseData returns copies of the records moved into courseID with every date shifted by diff.
// Record ids are reset; missing dates stay missing.
func ShiftCourseData(data CourseData, courseID int, diff time.Duration) CourseData {
	out := CourseData{
		Tasks:         make([]CourseTask, 0, len(data.Tasks)),
		Events:        make([]CourseEvent, 0, len(data.Events)),
		Distributions: make([]TeamDistribution, 0, len(data.Distributions)),
	}

	for _, t := range data.Tasks {
		t.ID, t.CourseID = 0, courseID
		t.Window = TaskWindow{
			StudentStart:  shift(t.Window.StudentStart, diff),
			StudentEnd:    shift(t.Window.StudentEnd, diff),
			CrossCheckEnd: shift(t.Window.CrossCheckEnd, diff),
		}
		t.MentorStart = shift(t.MentorStart, diff)
		t.MentorEnd = shift(t.MentorEnd, diff)
		t.StudentRegistrationStart = shift(t.StudentRegistrationStart, diff)
		out.Tasks = append(out.Tasks, t)
	}
	for _, e := range data.Events {
		e.ID, e.CourseID = 0, courseID
		e.Start = shift(e.Start, diff)
		e.End = shift(e.End, diff)
		out.Events = append(out.Events, e)
	}
	for _, d := range data.Distributions {
		d.ID, d.CourseID = 0, courseID
		if !d.StartDate.IsZero() {
			d.StartDate = d.StartDate.Add(diff)
		}
		if !d.EndDate.IsZero() {
			d.EndDate = d.EndDate.Add(diff)
		}
		out.Distributions = append(out.Distributions, d)
	}
	return out
}

func shift(t *time.Time, diff time.Duration) *time.Time {
	if t == nil {
		return nil
	}
	shifted := t.Add(diff)
	return &shifted
}
