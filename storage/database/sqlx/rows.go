package sqlxrepos

import (
	"encoding/json"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

// row types mirror the selected columns; nullable columns use null/v8 types

type (
	personRow struct {
		ID        null.Int    `db:"id"`
		FirstName null.String `db:"first_name"`
		LastName  null.String `db:"last_name"`
		GithubID  null.String `db:"github_id"`
	}

	courseRow struct {
		ID        int       `db:"id"`
		Name      string    `db:"name"`
		Alias     string    `db:"alias"`
		StartDate time.Time `db:"start_date"`
	}

	courseTaskRow struct {
		ID                           int         `db:"id"`
		CourseID                     int         `db:"course_id"`
		TaskID                       int         `db:"task_id"`
		Name                         string      `db:"name"`
		DescriptionURL               string      `db:"description_url"`
		Type                         null.String `db:"type"`
		TaskType                     string      `db:"task_type"`
		Checker                      string      `db:"checker"`
		MaxScore                     float64     `db:"max_score"`
		ScoreWeight                  float64     `db:"score_weight"`
		StudentStartDate             null.Time   `db:"student_start_date"`
		StudentEndDate               null.Time   `db:"student_end_date"`
		CrossCheckEndDate            null.Time   `db:"cross_check_end_date"`
		MentorStartDate              null.Time   `db:"mentor_start_date"`
		MentorEndDate                null.Time   `db:"mentor_end_date"`
		StudentRegistrationStartDate null.Time   `db:"student_registration_start_date"`
		Disabled                     bool        `db:"disabled"`
		Owner                        personRow   `db:"owner"`
	}

	courseEventRow struct {
		ID             int       `db:"id"`
		CourseID       int       `db:"course_id"`
		EventID        int       `db:"event_id"`
		Name           string    `db:"name"`
		DescriptionURL string    `db:"description_url"`
		Type           string    `db:"type"`
		DateTime       null.Time `db:"date_time"`
		EndTime        null.Time `db:"end_time"`
		Duration       null.Int  `db:"duration"` // minutes
		Organizer      personRow `db:"organizer"`
	}

	teamDistributionRow struct {
		ID             int       `db:"id"`
		CourseID       int       `db:"course_id"`
		Name           string    `db:"name"`
		DescriptionURL string    `db:"description_url"`
		StartDate      time.Time `db:"start_date"`
		EndDate        time.Time `db:"end_date"`
		MinTotalScore  float64   `db:"min_total_score"`
	}

	scoreRow struct {
		CourseTaskID int          `db:"course_task_id"`
		Score        null.Float64 `db:"score"`
	}

	stageInterviewRow struct {
		ID           int         `db:"id"`
		CourseTaskID int         `db:"course_task_id"`
		Feedback     null.String `db:"feedback"`
	}

	solutionRow struct {
		CourseTaskID int    `db:"course_task_id"`
		URL          string `db:"url"`
	}

	checkerRow struct {
		CourseTaskID int `db:"course_task_id"`
		MentorID     int `db:"mentor_id"`
	}

	distributionStudentRow struct {
		TeamDistributionID int     `db:"team_distribution_id"`
		Active             bool    `db:"active"`
		Distributed        bool    `db:"distributed"`
		StudentID          int     `db:"student_id"`
		IsExpelled         bool    `db:"is_expelled"`
		TotalScore         float64 `db:"total_score"`
	}
)

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullTime(t *time.Time) null.Time {
	return null.TimeFromPtr(t)
}

func floatPtr(f null.Float64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func (r personRow) toPerson() *schedule.Person {
	if !r.ID.Valid {
		return nil
	}
	return &schedule.Person{
		ID:       r.ID.Int,
		Name:     schedule.PersonName(r.FirstName.String, r.LastName.String),
		GithubID: r.GithubID.String,
	}
}

func (r courseRow) toCourse() schedule.Course {
	return schedule.Course{ID: r.ID, Name: r.Name, Alias: r.Alias, StartDate: r.StartDate}
}

func (r courseTaskRow) toCourseTask() schedule.CourseTask {
	return schedule.CourseTask{
		ID:             r.ID,
		CourseID:       r.CourseID,
		TaskID:         r.TaskID,
		Name:           r.Name,
		DescriptionURL: r.DescriptionURL,
		Type:           r.Type.String,
		TaskType:       r.TaskType,
		Window: schedule.TaskWindow{
			StudentStart:  timePtr(r.StudentStartDate),
			StudentEnd:    timePtr(r.StudentEndDate),
			CrossCheckEnd: timePtr(r.CrossCheckEndDate),
		},
		Policy: schedule.ScoringPolicy{
			MaxScore:    r.MaxScore,
			ScoreWeight: r.ScoreWeight,
			Checker:     schedule.Checker(r.Checker),
		},
		Disabled:                 r.Disabled,
		Owner:                    r.Owner.toPerson(),
		MentorStart:              timePtr(r.MentorStartDate),
		MentorEnd:                timePtr(r.MentorEndDate),
		StudentRegistrationStart: timePtr(r.StudentRegistrationStartDate),
	}
}

func (r courseEventRow) toCourseEvent() schedule.CourseEvent {
	e := schedule.CourseEvent{
		ID:             r.ID,
		CourseID:       r.CourseID,
		EventID:        r.EventID,
		Name:           r.Name,
		DescriptionURL: r.DescriptionURL,
		Type:           r.Type,
		Start:          timePtr(r.DateTime),
		End:            timePtr(r.EndTime),
		Organizer:      r.Organizer.toPerson(),
	}
	if r.Duration.Valid {
		d := time.Duration(r.Duration.Int) * time.Minute
		e.Duration = &d
	}
	return e
}

func durationMinutes(d *time.Duration) null.Int {
	if d == nil {
		return null.Int{}
	}
	return null.IntFrom(int(*d / time.Minute))
}

func (r teamDistributionRow) toTeamDistribution() schedule.TeamDistribution {
	return schedule.TeamDistribution{
		ID:             r.ID,
		CourseID:       r.CourseID,
		Name:           r.Name,
		DescriptionURL: r.DescriptionURL,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		MinTotalScore:  r.MinTotalScore,
	}
}

func (r distributionStudentRow) toTeamDistributionStudent() schedule.TeamDistributionStudent {
	return schedule.TeamDistributionStudent{
		TeamDistributionID: r.TeamDistributionID,
		Active:             r.Active,
		Distributed:        r.Distributed,
		Student: &schedule.StudentStanding{
			ID:         r.StudentID,
			IsExpelled: r.IsExpelled,
			TotalScore: r.TotalScore,
		},
	}
}

// groupStageInterviews folds interview rows joined with their feedbacks, ordered by interview id,
// into one StageInterview each. Interviews without feedback get an empty feedback list.
func groupStageInterviews(rows []stageInterviewRow) []schedule.StageInterview {
	interviews := make([]schedule.StageInterview, 0, len(rows))
	for _, r := range rows {
		n := len(interviews)
		if n == 0 || interviews[n-1].ID != r.ID {
			interviews = append(interviews, schedule.StageInterview{ID: r.ID, CourseTaskID: r.CourseTaskID})
			n++
		}
		if r.Feedback.Valid {
			interviews[n-1].Feedbacks = append(interviews[n-1].Feedbacks, json.RawMessage(r.Feedback.String))
		}
	}
	return interviews
}

func personID(p *schedule.Person) null.Int {
	if p == nil {
		return null.Int{}
	}
	return null.IntFrom(p.ID)
}
