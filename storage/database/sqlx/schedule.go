package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

const (
	courseTaskQuery = `
	SELECT
		ct.id, ct.course_id, ct.task_id, t.name, t.description_url, ct.type, t.type AS task_type,
		ct.checker, ct.max_score, ct.score_weight,
		ct.student_start_date, ct.student_end_date, ct.cross_check_end_date,
		ct.mentor_start_date, ct.mentor_end_date, ct.student_registration_start_date, ct.disabled,
		u.id AS "owner.id", u.first_name AS "owner.first_name", u.last_name AS "owner.last_name",
		u.github_id AS "owner.github_id"
	FROM course_task ct
	JOIN task t ON t.id = ct.task_id
	LEFT JOIN "user" u ON u.id = ct.task_owner_id
	WHERE ct.course_id = $1`

	courseEventQuery = `
	SELECT
		ce.id, ce.course_id, ce.event_id, e.name, e.description_url, e.type,
		ce.date_time, ce.end_time, ce.duration,
		u.id AS "organizer.id", u.first_name AS "organizer.first_name", u.last_name AS "organizer.last_name",
		u.github_id AS "organizer.github_id"
	FROM course_event ce
	JOIN event e ON e.id = ce.event_id
	LEFT JOIN "user" u ON u.id = ce.organizer_id
	WHERE ce.course_id = $1
	ORDER BY ce.id`
)

type scheduleRepository struct {
	db *sqlx.DB
}

var (
	_ schedule.Repository     = (*scheduleRepository)(nil)
	_ schedule.CopyRepository = (*scheduleRepository)(nil)
)

// NewScheduleRepository serves both schedule.Repository and schedule.CopyRepository.
func NewScheduleRepository(db *sql.DB) *scheduleRepository {
	return &scheduleRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *scheduleRepository) PingContext(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

func (repo *scheduleRepository) listCourseTasks(ctx context.Context, courseID int, activeOnly bool) ([]schedule.CourseTask, error) {
	q := courseTaskQuery
	if activeOnly {
		q += " AND NOT ct.disabled"
	}
	q += " ORDER BY ct.id"

	var rows []courseTaskRow
	if err := repo.db.SelectContext(ctx, &rows, q, courseID); err != nil {
		return nil, errors.Wrap(err, "selecting course tasks")
	}
	tasks := make([]schedule.CourseTask, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toCourseTask())
	}
	return tasks, nil
}

func (repo *scheduleRepository) ListActiveCourseTasks(ctx context.Context, courseID int) ([]schedule.CourseTask, error) {
	return repo.listCourseTasks(ctx, courseID, true)
}

func (repo *scheduleRepository) ListCourseTasks(ctx context.Context, courseID int) ([]schedule.CourseTask, error) {
	return repo.listCourseTasks(ctx, courseID, false)
}

func (repo *scheduleRepository) ListCourseEvents(ctx context.Context, courseID int) ([]schedule.CourseEvent, error) {
	var rows []courseEventRow
	if err := repo.db.SelectContext(ctx, &rows, courseEventQuery, courseID); err != nil {
		return nil, errors.Wrap(err, "selecting course events")
	}
	events := make([]schedule.CourseEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toCourseEvent())
	}
	return events, nil
}

func (repo *scheduleRepository) ListTeamDistributions(ctx context.Context, courseID int) ([]schedule.TeamDistribution, error) {
	var rows []teamDistributionRow
	q := `SELECT id, course_id, name, description_url, start_date, end_date, min_total_score
		FROM team_distribution WHERE course_id = $1 ORDER BY id`
	if err := repo.db.SelectContext(ctx, &rows, q, courseID); err != nil {
		return nil, errors.Wrap(err, "selecting team distributions")
	}
	distributions := make([]schedule.TeamDistribution, 0, len(rows))
	for _, r := range rows {
		distributions = append(distributions, r.toTeamDistribution())
	}
	return distributions, nil
}

func (repo *scheduleRepository) selectScores(ctx context.Context, table string, studentID int) ([]scoreRow, error) {
	var rows []scoreRow
	q := "SELECT course_task_id, score FROM " + table + " WHERE student_id = $1 ORDER BY id"
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrapf(err, "selecting %s", table)
	}
	return rows, nil
}

func (repo *scheduleRepository) ListTaskResults(ctx context.Context, studentID int) ([]schedule.TaskResult, error) {
	rows, err := repo.selectScores(ctx, "task_result", studentID)
	if err != nil {
		return nil, err
	}
	results := make([]schedule.TaskResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, schedule.TaskResult{CourseTaskID: r.CourseTaskID, Score: floatPtr(r.Score)})
	}
	return results, nil
}

func (repo *scheduleRepository) ListInterviewResults(ctx context.Context, studentID int) ([]schedule.InterviewResult, error) {
	rows, err := repo.selectScores(ctx, "task_interview_result", studentID)
	if err != nil {
		return nil, err
	}
	results := make([]schedule.InterviewResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, schedule.InterviewResult{CourseTaskID: r.CourseTaskID, Score: floatPtr(r.Score)})
	}
	return results, nil
}

func (repo *scheduleRepository) ListStageInterviews(ctx context.Context, studentID int) ([]schedule.StageInterview, error) {
	var rows []stageInterviewRow
	q := `SELECT si.id, si.course_task_id, f.json AS feedback
		FROM stage_interview si
		LEFT JOIN stage_interview_feedback f ON f.stage_interview_id = si.id
		WHERE si.student_id = $1 AND si.is_completed
		ORDER BY si.id, f.id`
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting stage interviews")
	}
	return groupStageInterviews(rows), nil
}

func (repo *scheduleRepository) ListTaskSolutions(ctx context.Context, studentID int) ([]schedule.TaskSolution, error) {
	var rows []solutionRow
	q := "SELECT course_task_id, url FROM task_solution WHERE student_id = $1 ORDER BY id"
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting task solutions")
	}
	solutions := make([]schedule.TaskSolution, 0, len(rows))
	for _, r := range rows {
		solutions = append(solutions, schedule.TaskSolution{CourseTaskID: r.CourseTaskID, URL: r.URL})
	}
	return solutions, nil
}

func (repo *scheduleRepository) ListTaskCheckers(ctx context.Context, studentID int) ([]schedule.TaskChecker, error) {
	var rows []checkerRow
	q := "SELECT course_task_id, mentor_id FROM task_checker WHERE student_id = $1 ORDER BY id"
	if err := repo.db.SelectContext(ctx, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting task checkers")
	}
	checkers := make([]schedule.TaskChecker, 0, len(rows))
	for _, r := range rows {
		checkers = append(checkers, schedule.TaskChecker{CourseTaskID: r.CourseTaskID, MentorID: r.MentorID})
	}
	return checkers, nil
}

func (repo *scheduleRepository) ListTeamDistributionStudents(ctx context.Context, courseID, studentID int) ([]schedule.TeamDistributionStudent, error) {
	var rows []distributionStudentRow
	q := `SELECT tds.team_distribution_id, tds.active, tds.distributed,
			s.id AS student_id, s.is_expelled, s.total_score
		FROM team_distribution_student tds
		JOIN student s ON s.id = tds.student_id
		WHERE tds.course_id = $1 AND tds.student_id = $2
		ORDER BY tds.id`
	if err := repo.db.SelectContext(ctx, &rows, q, courseID, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting team distribution students")
	}
	members := make([]schedule.TeamDistributionStudent, 0, len(rows))
	for _, r := range rows {
		members = append(members, r.toTeamDistributionStudent())
	}
	return members, nil
}

func (repo *scheduleRepository) GetCourse(ctx context.Context, courseID int) (schedule.Course, error) {
	var row courseRow
	q := "SELECT id, name, alias, start_date FROM course WHERE id = $1"
	if err := repo.db.GetContext(ctx, &row, q, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.Course{}, schedule.ErrCourseNotFound
		}
		return schedule.Course{}, errors.Wrap(err, "selecting course")
	}
	return row.toCourse(), nil
}

func (repo *scheduleRepository) SaveCourseData(ctx context.Context, data schedule.CourseData) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range data.Tasks {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO course_task (
				course_id, task_id, type, checker, max_score, score_weight,
				student_start_date, student_end_date, cross_check_end_date,
				mentor_start_date, mentor_end_date, student_registration_start_date,
				task_owner_id, disabled
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			t.CourseID, t.TaskID, null.NewString(t.Type, t.Type != ""), string(t.Policy.Checker),
			t.Policy.MaxScore, t.Policy.ScoreWeight,
			nullTime(t.Window.StudentStart), nullTime(t.Window.StudentEnd), nullTime(t.Window.CrossCheckEnd),
			nullTime(t.MentorStart), nullTime(t.MentorEnd), nullTime(t.StudentRegistrationStart),
			personID(t.Owner), t.Disabled,
		)
		if err != nil {
			return errors.Wrap(err, "inserting course task")
		}
	}

	for _, e := range data.Events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO course_event (course_id, event_id, date_time, end_time, duration, organizer_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.CourseID, e.EventID, nullTime(e.Start), nullTime(e.End), durationMinutes(e.Duration), personID(e.Organizer),
		)
		if err != nil {
			return errors.Wrap(err, "inserting course event")
		}
	}

	for _, d := range data.Distributions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO team_distribution (course_id, name, description_url, start_date, end_date, min_total_score)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.CourseID, d.Name, d.DescriptionURL, d.StartDate, d.EndDate, d.MinTotalScore,
		)
		if err != nil {
			return errors.Wrap(err, "inserting team distribution")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing course data")
	}
	return nil
}
