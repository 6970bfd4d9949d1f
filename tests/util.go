package testutil

import (
	"testing"
	"time"

	"github.com/aliakseitokarev/rsschool-app/core"
	"github.com/aliakseitokarev/rsschool-app/core/schedule"
	"github.com/aliakseitokarev/rsschool-app/storage/database/inmem"
)

// Config returns the configuration of test apps: no caching, no request logs, no tracing.
func Config() *core.Config {
	return &core.Config{
		AppName:  "RS School Schedule",
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
		Server: core.ServerConfig{
			Host:            "localhost",
			Address:         ":0",
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Schedule: core.ScheduleConfig{FetchTimeout: 5 * time.Second},
	}
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// Fixture holds the ids of the records created by SeedCourse.
type Fixture struct {
	Course       schedule.Course
	AutoTest     schedule.CourseTask
	CrossCheck   schedule.CourseTask
	Disabled     schedule.CourseTask
	Lecture      schedule.CourseEvent
	Distribution schedule.TeamDistribution
	StudentID    int
}

func TimePtr(t time.Time) *time.Time { return &t }

func FloatPtr(f float64) *float64 { return &f }

// SeedCourse creates a running course around now with one record of each kind and a student
// who scored the auto-test, submitted the cross-check and registered for the team distribution.
func SeedCourse(t *testing.T, db *inmemdb.DB, now time.Time) Fixture {
	t.Helper()

	day := 24 * time.Hour
	hour := time.Hour
	f := Fixture{StudentID: 1001}

	f.Course = db.AddCourse(schedule.Course{Name: "JS / Front-end 2023Q1", Alias: "js-fe-2023-q1", StartDate: now.Add(-30 * day)})
	f.AutoTest = db.AddCourseTask(schedule.CourseTask{
		CourseID: f.Course.ID,
		Name:     "Basic JS",
		TaskType: "jstask",
		Window:   schedule.TaskWindow{StudentStart: TimePtr(now.Add(-2 * day)), StudentEnd: TimePtr(now.Add(5 * day))},
		Policy:   schedule.ScoringPolicy{MaxScore: 100, ScoreWeight: 1, Checker: schedule.CheckerAutoTest},
	})
	f.CrossCheck = db.AddCourseTask(schedule.CourseTask{
		CourseID: f.Course.ID,
		Name:     "Portfolio",
		TaskType: "htmltask",
		Window: schedule.TaskWindow{
			StudentStart:  TimePtr(now.Add(-10 * day)),
			StudentEnd:    TimePtr(now.Add(-3 * day)),
			CrossCheckEnd: TimePtr(now.Add(4 * day)),
		},
		Policy: schedule.ScoringPolicy{MaxScore: 50, ScoreWeight: 0.5, Checker: schedule.CheckerCrossCheck},
		Owner:  &schedule.Person{ID: 7, Name: "Dzmitry Varabei", GithubID: "dzmitry-varabei"},
	})
	f.Disabled = db.AddCourseTask(schedule.CourseTask{
		CourseID: f.Course.ID,
		Name:     "Removed",
		Disabled: true,
		Window:   schedule.TaskWindow{StudentStart: TimePtr(now.Add(-day)), StudentEnd: TimePtr(now.Add(day))},
	})
	f.Lecture = db.AddCourseEvent(schedule.CourseEvent{
		CourseID: f.Course.ID,
		Name:     "Git basics",
		Type:     "lecture_online",
		Start:    TimePtr(now.Add(2 * day)),
		Duration: &hour,
	})
	f.Distribution = db.AddTeamDistribution(schedule.TeamDistribution{
		CourseID:  f.Course.ID,
		Name:      "Songbird teams",
		StartDate: now.Add(-day),
		EndDate:   now.Add(6 * day),
	})

	db.AddStudentResults(f.StudentID, schedule.StudentResults{
		TaskResults: []schedule.TaskResult{{CourseTaskID: f.AutoTest.ID, Score: FloatPtr(100)}},
		Solutions:   []schedule.TaskSolution{{CourseTaskID: f.CrossCheck.ID, URL: "https://github.com/student/portfolio"}},
		Distributions: []schedule.TeamDistributionStudent{{
			TeamDistributionID: f.Distribution.ID,
			Active:             true,
			Student:            &schedule.StudentStanding{ID: f.StudentID, TotalScore: 100},
		}},
	})
	return f
}
