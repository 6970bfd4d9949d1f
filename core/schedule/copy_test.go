package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliakseitokarev/rsschool-app/core"
)

type stubCopyRepository struct {
	courses map[int]Course
	data    CourseData
	saved   []CourseData
	saveErr error
}

var _ CopyRepository = (*stubCopyRepository)(nil)

func (r *stubCopyRepository) GetCourse(_ context.Context, courseID int) (Course, error) {
	c, ok := r.courses[courseID]
	if !ok {
		return Course{}, ErrCourseNotFound
	}
	return c, nil
}

func (r *stubCopyRepository) ListCourseTasks(context.Context, int) ([]CourseTask, error) {
	return r.data.Tasks, nil
}

func (r *stubCopyRepository) ListCourseEvents(context.Context, int) ([]CourseEvent, error) {
	return r.data.Events, nil
}

func (r *stubCopyRepository) ListTeamDistributions(context.Context, int) ([]TeamDistribution, error) {
	return r.data.Distributions, nil
}

func (r *stubCopyRepository) SaveCourseData(_ context.Context, data CourseData) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, data)
	return nil
}

func TestShiftCourseData(t *testing.T) {
	start := time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC)
	data := CourseData{
		Tasks: []CourseTask{{
			ID: 11, CourseID: 1, Name: "Songbird", Disabled: true,
			Window:    TaskWindow{StudentStart: tPtr(start), StudentEnd: tPtr(start.Add(time.Hour))},
			MentorEnd: tPtr(start.Add(2 * time.Hour)),
		}},
		Events:        []CourseEvent{{ID: 12, CourseID: 1, Start: tPtr(start)}},
		Distributions: []TeamDistribution{{ID: 13, CourseID: 1, StartDate: start}},
	}
	diff := 30 * 24 * time.Hour

	got := ShiftCourseData(data, 2, diff)

	require.Len(t, got.Tasks, 1)
	task := got.Tasks[0]
	assert.Zero(t, task.ID)
	assert.Equal(t, 2, task.CourseID)
	assert.True(t, task.Disabled)
	assert.Equal(t, start.Add(diff), *task.Window.StudentStart)
	assert.Equal(t, start.Add(diff+time.Hour), *task.Window.StudentEnd)
	assert.Nil(t, task.Window.CrossCheckEnd)
	assert.Nil(t, task.MentorStart)
	assert.Equal(t, start.Add(diff+2*time.Hour), *task.MentorEnd)

	require.Len(t, got.Events, 1)
	assert.Equal(t, start.Add(diff), *got.Events[0].Start)
	assert.Nil(t, got.Events[0].End)

	require.Len(t, got.Distributions, 1)
	assert.Equal(t, start.Add(diff), got.Distributions[0].StartDate)
	assert.True(t, got.Distributions[0].EndDate.IsZero())

	// source records are untouched
	assert.Equal(t, 11, data.Tasks[0].ID)
	assert.Equal(t, start, *data.Tasks[0].Window.StudentStart)
}

func TestCopier_CopyFromTo(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)

	newRepo := func() *stubCopyRepository {
		return &stubCopyRepository{
			courses: map[int]Course{1: {ID: 1, StartDate: from}, 2: {ID: 2, StartDate: to}},
			data: CourseData{
				Tasks: []CourseTask{{ID: 11, CourseID: 1, Window: TaskWindow{StudentStart: tPtr(from)}}},
			},
		}
	}

	t.Run("copies shifted records", func(t *testing.T) {
		repo := newRepo()
		require.NoError(t, NewCopier(repo, nopLogger{}).CopyFromTo(ctx, 1, 2))
		require.Len(t, repo.saved, 1)
		assert.Equal(t, to, *repo.saved[0].Tasks[0].Window.StudentStart)
		assert.Equal(t, 2, repo.saved[0].Tasks[0].CourseID)
	})

	t.Run("unknown course", func(t *testing.T) {
		repo := newRepo()
		err := NewCopier(repo, nopLogger{}).CopyFromTo(ctx, 1, 3)
		assert.Equal(t, ErrCourseNotFound, errors.Cause(err))
		assert.Empty(t, repo.saved)
	})

	t.Run("same course", func(t *testing.T) {
		err := NewCopier(newRepo(), nopLogger{}).CopyFromTo(ctx, 1, 1)
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, ErrSameCourse, vErr.Err)
	})

	t.Run("save failure", func(t *testing.T) {
		repo := newRepo()
		repo.saveErr = errBoom
		err := NewCopier(repo, nopLogger{}).CopyFromTo(ctx, 1, 2)
		assert.Equal(t, errBoom, errors.Cause(err))
	})
}
