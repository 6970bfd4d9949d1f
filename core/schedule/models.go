package schedule

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the point-in-time state of a schedule Item.
type Status string

const (
	StatusDone        Status = "done"
	StatusAvailable   Status = "available"
	StatusArchived    Status = "archived"
	StatusFuture      Status = "future"
	StatusMissed      Status = "missed"
	StatusReview      Status = "review"
	StatusRegistered  Status = "registered"
	StatusUnavailable Status = "unavailable"
)

// Statuses lists every Status; an Item never carries a value outside of it.
var Statuses = []Status{
	StatusDone,
	StatusAvailable,
	StatusArchived,
	StatusFuture,
	StatusMissed,
	StatusReview,
	StatusRegistered,
	StatusUnavailable,
}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Tag is the display category of an Item, independent of its Status.
type Tag string

const (
	TagLecture          Tag = "lecture"
	TagCoding           Tag = "coding"
	TagSelfStudy        Tag = "self-study"
	TagInterview        Tag = "interview"
	TagCrossCheckSubmit Tag = "cross-check-submit"
	TagCrossCheckReview Tag = "cross-check-review"
	TagTest             Tag = "test"
	TagTeamDistribution Tag = "team-distribution"
)

// Source tells which collection an Item was built from.
type Source string

const (
	SourceCourseTask       Source = "courseTask"
	SourceCourseEvent      Source = "courseEvent"
	SourceTeamDistribution Source = "courseTeamDistribution"
)

// Checker is the grading mechanism of a course task.
type Checker string

const (
	CheckerAutoTest   Checker = "auto-test"
	CheckerMentor     Checker = "mentor"
	CheckerAssigned   Checker = "assigned"
	CheckerTaskOwner  Checker = "taskOwner"
	CheckerCrossCheck Checker = "crossCheck"
	CheckerJury       Checker = "jury"
)

// Person is the public view of an organizer or task owner.
type Person struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	GithubID string `json:"githubId"`
}

// PersonName joins first and last names, skipping empty parts.
func PersonName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// Window is a closed time interval. A missing bound makes it unscheduled.
type Window struct {
	Start *time.Time
	End   *time.Time
}

func (w Window) Scheduled() bool {
	return w.Start != nil && w.End != nil
}

// Contains reports whether t lies within [Start, End], bounds included.
func (w Window) Contains(t time.Time) bool {
	return w.Scheduled() && !t.Before(*w.Start) && !t.After(*w.End)
}

// TaskWindow holds the student-facing dates of a course task.
type TaskWindow struct {
	StudentStart  *time.Time
	StudentEnd    *time.Time
	CrossCheckEnd *time.Time
}

// Submit is the window students work in; for cross-checks it is the submission phase.
func (w TaskWindow) Submit() Window {
	return Window{Start: w.StudentStart, End: w.StudentEnd}
}

// Review is the peer-review phase of a cross-check task.
func (w TaskWindow) Review() Window {
	return Window{Start: w.StudentEnd, End: w.CrossCheckEnd}
}

type ScoringPolicy struct {
	MaxScore    float64
	ScoreWeight float64
	Checker     Checker
}

type Course struct {
	ID        int
	Name      string
	Alias     string
	StartDate time.Time
}

type CourseTask struct {
	ID             int
	CourseID       int
	TaskID         int
	Name           string
	DescriptionURL string
	// Type overrides TaskType when set.
	Type     string
	TaskType string
	Window   TaskWindow
	Policy   ScoringPolicy
	Disabled bool
	Owner    *Person

	// not used by the timeline, shifted along when copying a course
	MentorStart              *time.Time
	MentorEnd                *time.Time
	StudentRegistrationStart *time.Time
}

// DefaultEventDuration applies to events stored without an end time nor a duration.
const DefaultEventDuration = 60 * time.Minute

type CourseEvent struct {
	ID             int
	CourseID       int
	EventID        int
	Name           string
	DescriptionURL string
	Type           string
	Start          *time.Time
	End            *time.Time
	Duration       *time.Duration
	Organizer      *Person
}

// EndTime is the explicit end when set, else Start plus Duration (DefaultEventDuration when unset).
func (e CourseEvent) EndTime() *time.Time {
	if e.End != nil && !e.End.IsZero() {
		return e.End
	}
	if e.Start == nil {
		return nil
	}
	d := DefaultEventDuration
	if e.Duration != nil {
		d = *e.Duration
	}
	end := e.Start.Add(d)
	return &end
}

type TeamDistribution struct {
	ID             int
	CourseID       int
	Name           string
	DescriptionURL string
	StartDate      time.Time
	EndDate        time.Time
	MinTotalScore  float64
}

func (d TeamDistribution) Window() Window {
	var w Window
	if !d.StartDate.IsZero() {
		start := d.StartDate
		w.Start = &start
	}
	if !d.EndDate.IsZero() {
		end := d.EndDate
		w.End = &end
	}
	return w
}

// CourseData bundles the course-wide collections of a schedule.
type CourseData struct {
	Tasks         []CourseTask
	Events        []CourseEvent
	Distributions []TeamDistribution
}

type TaskResult struct {
	CourseTaskID int
	Score        *float64
}

type InterviewResult struct {
	CourseTaskID int
	Score        *float64
}

// StageInterview is a completed screening interview; each feedback is a raw JSON document.
type StageInterview struct {
	ID           int
	CourseTaskID int
	Feedbacks    []json.RawMessage
}

type TaskSolution struct {
	CourseTaskID int
	URL          string
}

// TaskChecker assigns a reviewer to a student's task; its presence counts as a submission.
type TaskChecker struct {
	CourseTaskID int
	MentorID     int
}

type StudentStanding struct {
	ID         int
	IsExpelled bool
	TotalScore float64
}

type TeamDistributionStudent struct {
	TeamDistributionID int
	Active             bool
	Distributed        bool
	Student            *StudentStanding
}

// StudentResults bundles the per-student collections of a schedule.
type StudentResults struct {
	TaskResults      []TaskResult
	InterviewResults []InterviewResult
	StageInterviews  []StageInterview
	Solutions        []TaskSolution
	Checkers         []TaskChecker
	Distributions    []TeamDistributionStudent
}

// StudentProgress is the resolved state of one task for the student viewing the schedule.
// A nil *StudentProgress means the schedule is computed without a student.
type StudentProgress struct {
	Score     *float64
	Submitted bool
}

// Item is one entry of the course timeline.
type Item struct {
	ID                int        `json:"id"`
	CourseID          int        `json:"courseId"`
	Name              string     `json:"name"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	CrossCheckEndDate *time.Time `json:"crossCheckEndDate,omitempty"`
	Score             *float64   `json:"score,omitempty"`
	MaxScore          *float64   `json:"maxScore,omitempty"`
	ScoreWeight       *float64   `json:"scoreWeight,omitempty"`
	Status            Status     `json:"status"`
	Tag               Tag        `json:"tag"`
	DescriptionURL    string     `json:"descriptionUrl,omitempty"`
	Organizer         *Person    `json:"organizer,omitempty"`
	Source            Source     `json:"type"`
}
