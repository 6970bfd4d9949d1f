package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

var errConnRefused = errors.New("connection refused")

func setup(t *testing.T) (*scheduleRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewScheduleRepository(db), mock
}

func query(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func TestScheduleRepository_listCourseTasks(t *testing.T) {
	start := time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "course_id", "task_id", "name", "description_url", "type", "task_type",
		"checker", "max_score", "score_weight",
		"student_start_date", "student_end_date", "cross_check_end_date",
		"mentor_start_date", "mentor_end_date", "student_registration_start_date", "disabled",
		"owner.id", "owner.first_name", "owner.last_name", "owner.github_id",
	}

	tests := []struct {
		name      string
		list      func(repo *scheduleRepository) ([]schedule.CourseTask, error)
		wantQuery string
	}{
		{
			name: "active only",
			list: func(repo *scheduleRepository) ([]schedule.CourseTask, error) {
				return repo.ListActiveCourseTasks(context.Background(), 1)
			},
			wantQuery: "WHERE ct.course_id = $1 AND NOT ct.disabled ORDER BY ct.id",
		},
		{
			name: "all",
			list: func(repo *scheduleRepository) ([]schedule.CourseTask, error) {
				return repo.ListCourseTasks(context.Background(), 1)
			},
			wantQuery: "WHERE ct.course_id = $1 ORDER BY ct.id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setup(t)
			mock.ExpectQuery(query(tt.wantQuery)).
				WithArgs(1).
				WillReturnRows(sqlmock.NewRows(columns).
					AddRow(5, 1, 9, "Songbird", "https://rs.school/songbird", nil, "jstask",
						"crossCheck", 270.0, 1.0,
						start, start.Add(72*time.Hour), nil,
						nil, nil, nil, false,
						3, "Ada", "Lovelace", "ada"))

			tasks, err := tt.list(repo)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			task := tasks[0]
			assert.Equal(t, "Songbird", task.Name)
			assert.Equal(t, "", task.Type)
			assert.Equal(t, schedule.CheckerCrossCheck, task.Policy.Checker)
			assert.Equal(t, start, *task.Window.StudentStart)
			assert.Nil(t, task.Window.CrossCheckEnd)
			assert.Equal(t, &schedule.Person{ID: 3, Name: "Ada Lovelace", GithubID: "ada"}, task.Owner)
		})
	}
}

func TestScheduleRepository_ListCourseEvents(t *testing.T) {
	repo, mock := setup(t)
	start := time.Date(2023, 4, 2, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(query("FROM course_event ce")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "course_id", "event_id", "name", "description_url", "type",
			"date_time", "end_time", "duration",
			"organizer.id", "organizer.first_name", "organizer.last_name", "organizer.github_id",
		}).AddRow(6, 1, 2, "Git basics", "", "lecture_online", start, nil, 90, nil, nil, nil, nil))

	events, err := repo.ListCourseEvents(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, start.Add(90*time.Minute), *events[0].EndTime())
	assert.Nil(t, events[0].Organizer)
}

func TestScheduleRepository_ListStageInterviews(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(query("FROM stage_interview si")).
		WithArgs(1001).
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_task_id", "feedback"}).
			AddRow(1, 10, `{"resume":{"score":3}}`).
			AddRow(1, 10, `{"resume":{"score":5}}`).
			AddRow(2, 11, nil))

	interviews, err := repo.ListStageInterviews(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, []schedule.StageInterview{
		{ID: 1, CourseTaskID: 10, Feedbacks: []json.RawMessage{
			json.RawMessage(`{"resume":{"score":3}}`),
			json.RawMessage(`{"resume":{"score":5}}`),
		}},
		{ID: 2, CourseTaskID: 11},
	}, interviews)
}

func TestScheduleRepository_studentCollections(t *testing.T) {
	ctx := context.Background()

	t.Run("task results", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(query("SELECT course_task_id, score FROM task_result WHERE student_id = $1")).
			WithArgs(1001).
			WillReturnRows(sqlmock.NewRows([]string{"course_task_id", "score"}).AddRow(10, 42.5).AddRow(11, nil))

		results, err := repo.ListTaskResults(ctx, 1001)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 42.5, *results[0].Score)
		assert.Nil(t, results[1].Score)
	})

	t.Run("interview results", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(query("FROM task_interview_result WHERE student_id = $1")).
			WithArgs(1001).
			WillReturnError(errConnRefused)

		_, err := repo.ListInterviewResults(ctx, 1001)
		assert.ErrorIs(t, err, errConnRefused)
	})

	t.Run("team distribution students", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(query("WHERE tds.course_id = $1 AND tds.student_id = $2")).
			WithArgs(1, 1001).
			WillReturnRows(sqlmock.NewRows([]string{
				"team_distribution_id", "active", "distributed", "student_id", "is_expelled", "total_score",
			}).AddRow(7, true, false, 1001, false, 120.0))

		members, err := repo.ListTeamDistributionStudents(ctx, 1, 1001)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, 7, members[0].TeamDistributionID)
		assert.Equal(t, 120.0, members[0].Student.TotalScore)
	})
}

func TestScheduleRepository_GetCourse(t *testing.T) {
	start := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    schedule.Course
		wantErr error
	}{
		{
			name: "found",
			rows: sqlmock.NewRows([]string{"id", "name", "alias", "start_date"}).AddRow(1, "JS 2023Q1", "js-2023-q1", start),
			want: schedule.Course{ID: 1, Name: "JS 2023Q1", Alias: "js-2023-q1", StartDate: start},
		},
		{
			name:    "not found",
			err:     sql.ErrNoRows,
			wantErr: schedule.ErrCourseNotFound,
		},
		{
			name:    "db failure",
			err:     errConnRefused,
			wantErr: errConnRefused,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setup(t)
			expect := mock.ExpectQuery(query("FROM course WHERE id = $1")).WithArgs(1)
			if tt.err != nil {
				expect.WillReturnError(tt.err)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			course, err := repo.GetCourse(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, course)
		})
	}
}

func TestScheduleRepository_SaveCourseData(t *testing.T) {
	start := time.Date(2023, 8, 1, 10, 0, 0, 0, time.UTC)
	hour := time.Hour
	data := schedule.CourseData{
		Tasks: []schedule.CourseTask{{
			CourseID: 2,
			TaskID:   9,
			Window:   schedule.TaskWindow{StudentStart: &start},
			Policy:   schedule.ScoringPolicy{MaxScore: 100, ScoreWeight: 1, Checker: schedule.CheckerAutoTest},
		}},
		Events:        []schedule.CourseEvent{{CourseID: 2, EventID: 3, Start: &start, Duration: &hour}},
		Distributions: []schedule.TeamDistribution{{CourseID: 2, Name: "Teams", StartDate: start, EndDate: start.Add(hour)}},
	}

	tests := []struct {
		name    string
		expect  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "commit",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(query("INSERT INTO course_task")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(query("INSERT INTO course_event")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(query("INSERT INTO team_distribution")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rollback on failed insert",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(query("INSERT INTO course_task")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(query("INSERT INTO course_event")).WillReturnError(errConnRefused)
				mock.ExpectRollback()
			},
			wantErr: errConnRefused,
		},
		{
			name: "begin failure",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errConnRefused)
			},
			wantErr: errConnRefused,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setup(t)
			tt.expect(mock)

			err := repo.SaveCourseData(context.Background(), data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
