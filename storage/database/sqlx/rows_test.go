package sqlxrepos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

func TestCourseTaskRow_toCourseTask(t *testing.T) {
	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	row := courseTaskRow{
		ID:               5,
		CourseID:         1,
		TaskID:           9,
		Name:             "Virtual keyboard",
		TaskType:         "jstask",
		Type:             null.StringFrom("test"),
		Checker:          "crossCheck",
		MaxScore:         100,
		ScoreWeight:      0.5,
		StudentStartDate: null.TimeFrom(start),
		Owner: personRow{
			ID:        null.IntFrom(3),
			FirstName: null.StringFrom("Ada"),
			LastName:  null.StringFrom(""),
			GithubID:  null.StringFrom("ada"),
		},
	}

	task := row.toCourseTask()
	assert.Equal(t, "test", task.Type)
	assert.Equal(t, schedule.TagTest, schedule.TaskTag(task))
	assert.Equal(t, schedule.CheckerCrossCheck, task.Policy.Checker)
	require.NotNil(t, task.Window.StudentStart)
	assert.Equal(t, start, *task.Window.StudentStart)
	assert.Nil(t, task.Window.StudentEnd)
	assert.Equal(t, &schedule.Person{ID: 3, Name: "Ada", GithubID: "ada"}, task.Owner)

	row.Owner = personRow{}
	assert.Nil(t, row.toCourseTask().Owner)
}

func TestCourseEventRow_toCourseEvent(t *testing.T) {
	start := time.Date(2023, 4, 1, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		row     courseEventRow
		wantEnd time.Time
	}{
		{
			name:    "duration in minutes",
			row:     courseEventRow{DateTime: null.TimeFrom(start), Duration: null.IntFrom(90)},
			wantEnd: start.Add(90 * time.Minute),
		},
		{
			name:    "default duration",
			row:     courseEventRow{DateTime: null.TimeFrom(start)},
			wantEnd: start.Add(time.Hour),
		},
		{
			name:    "explicit end",
			row:     courseEventRow{DateTime: null.TimeFrom(start), EndTime: null.TimeFrom(start.Add(3 * time.Hour)), Duration: null.IntFrom(30)},
			wantEnd: start.Add(3 * time.Hour),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.row.toCourseEvent().EndTime()
			require.NotNil(t, end)
			assert.Equal(t, tt.wantEnd, *end)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	d := 45 * time.Minute
	assert.Equal(t, null.IntFrom(45), durationMinutes(&d))
	assert.False(t, durationMinutes(nil).Valid)
}

func TestGroupStageInterviews(t *testing.T) {
	rows := []stageInterviewRow{
		{ID: 1, CourseTaskID: 10, Feedback: null.StringFrom(`{"resume":{"score":3}}`)},
		{ID: 1, CourseTaskID: 10, Feedback: null.StringFrom(`{"resume":{"score":7}}`)},
		{ID: 2, CourseTaskID: 11},
		{ID: 3, CourseTaskID: 12, Feedback: null.StringFrom(`{}`)},
	}

	got := groupStageInterviews(rows)
	want := []schedule.StageInterview{
		{ID: 1, CourseTaskID: 10, Feedbacks: []json.RawMessage{json.RawMessage(`{"resume":{"score":3}}`), json.RawMessage(`{"resume":{"score":7}}`)}},
		{ID: 2, CourseTaskID: 11},
		{ID: 3, CourseTaskID: 12, Feedbacks: []json.RawMessage{json.RawMessage(`{}`)}},
	}
	assert.Equal(t, want, got)

	score := schedule.ResolveScore(10, &schedule.StudentResults{StageInterviews: got})
	require.NotNil(t, score)
	assert.Equal(t, 7.0, *score)
	assert.Nil(t, schedule.ResolveScore(11, &schedule.StudentResults{StageInterviews: got}))
}

func TestDistributionStudentRow(t *testing.T) {
	row := distributionStudentRow{TeamDistributionID: 4, Active: true, StudentID: 8, TotalScore: 120}
	assert.Equal(t, schedule.TeamDistributionStudent{
		TeamDistributionID: 4,
		Active:             true,
		Student:            &schedule.StudentStanding{ID: 8, TotalScore: 120},
	}, row.toTeamDistributionStudent())
}

func TestNullTime(t *testing.T) {
	at := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, nullTime(nil).Valid)

	nt := nullTime(&at)
	assert.True(t, nt.Valid)
	assert.Equal(t, at, nt.Time)
	assert.Equal(t, &at, timePtr(nt))
}
