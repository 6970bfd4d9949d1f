package inmemdb

import (
	"context"
	"sort"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var (
	_ schedule.Repository     = (*scheduleRepository)(nil)
	_ schedule.CopyRepository = (*scheduleRepository)(nil)
)

func NewScheduleRepository(db *DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) PingContext(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

// begin read-locks the DB unless ctx is done or a failure was injected for method.
func (repo *scheduleRepository) begin(ctx context.Context, method string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.mu.RLock()
	if err := repo.db.failure(method); err != nil {
		repo.db.mu.RUnlock()
		return nil, err
	}
	return repo.db.mu.RUnlock, nil
}

func (repo *scheduleRepository) listCourseTasks(ctx context.Context, method string, courseID int, activeOnly bool) ([]schedule.CourseTask, error) {
	done, err := repo.begin(ctx, method)
	if err != nil {
		return nil, err
	}
	defer done()

	tasks := make([]schedule.CourseTask, 0)
	for _, t := range repo.db.tasks {
		if t.CourseID == courseID && !(activeOnly && t.Disabled) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (repo *scheduleRepository) ListActiveCourseTasks(ctx context.Context, courseID int) ([]schedule.CourseTask, error) {
	return repo.listCourseTasks(ctx, "ListActiveCourseTasks", courseID, true)
}

func (repo *scheduleRepository) ListCourseTasks(ctx context.Context, courseID int) ([]schedule.CourseTask, error) {
	return repo.listCourseTasks(ctx, "ListCourseTasks", courseID, false)
}

func (repo *scheduleRepository) ListCourseEvents(ctx context.Context, courseID int) ([]schedule.CourseEvent, error) {
	done, err := repo.begin(ctx, "ListCourseEvents")
	if err != nil {
		return nil, err
	}
	defer done()

	events := make([]schedule.CourseEvent, 0)
	for _, e := range repo.db.events {
		if e.CourseID == courseID {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (repo *scheduleRepository) ListTeamDistributions(ctx context.Context, courseID int) ([]schedule.TeamDistribution, error) {
	done, err := repo.begin(ctx, "ListTeamDistributions")
	if err != nil {
		return nil, err
	}
	defer done()

	distributions := make([]schedule.TeamDistribution, 0)
	for _, d := range repo.db.distributions {
		if d.CourseID == courseID {
			distributions = append(distributions, d)
		}
	}
	sort.Slice(distributions, func(i, j int) bool { return distributions[i].ID < distributions[j].ID })
	return distributions, nil
}

// student returns a copy of the records of the student, empty when unknown.
func (repo *scheduleRepository) student(ctx context.Context, method string, studentID int) (schedule.StudentResults, error) {
	done, err := repo.begin(ctx, method)
	if err != nil {
		return schedule.StudentResults{}, err
	}
	defer done()

	res, ok := repo.db.students[studentID]
	if !ok {
		return schedule.StudentResults{}, nil
	}
	return schedule.StudentResults{
		TaskResults:      append([]schedule.TaskResult(nil), res.TaskResults...),
		InterviewResults: append([]schedule.InterviewResult(nil), res.InterviewResults...),
		StageInterviews:  append([]schedule.StageInterview(nil), res.StageInterviews...),
		Solutions:        append([]schedule.TaskSolution(nil), res.Solutions...),
		Checkers:         append([]schedule.TaskChecker(nil), res.Checkers...),
		Distributions:    append([]schedule.TeamDistributionStudent(nil), res.Distributions...),
	}, nil
}

func (repo *scheduleRepository) ListTaskResults(ctx context.Context, studentID int) ([]schedule.TaskResult, error) {
	res, err := repo.student(ctx, "ListTaskResults", studentID)
	return res.TaskResults, err
}

func (repo *scheduleRepository) ListInterviewResults(ctx context.Context, studentID int) ([]schedule.InterviewResult, error) {
	res, err := repo.student(ctx, "ListInterviewResults", studentID)
	return res.InterviewResults, err
}

func (repo *scheduleRepository) ListStageInterviews(ctx context.Context, studentID int) ([]schedule.StageInterview, error) {
	res, err := repo.student(ctx, "ListStageInterviews", studentID)
	return res.StageInterviews, err
}

func (repo *scheduleRepository) ListTaskSolutions(ctx context.Context, studentID int) ([]schedule.TaskSolution, error) {
	res, err := repo.student(ctx, "ListTaskSolutions", studentID)
	return res.Solutions, err
}

func (repo *scheduleRepository) ListTaskCheckers(ctx context.Context, studentID int) ([]schedule.TaskChecker, error) {
	res, err := repo.student(ctx, "ListTaskCheckers", studentID)
	return res.Checkers, err
}

func (repo *scheduleRepository) ListTeamDistributionStudents(ctx context.Context, courseID, studentID int) ([]schedule.TeamDistributionStudent, error) {
	res, err := repo.student(ctx, "ListTeamDistributionStudents", studentID)
	if err != nil {
		return nil, err
	}

	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	members := make([]schedule.TeamDistributionStudent, 0, len(res.Distributions))
	for _, m := range res.Distributions {
		if d, ok := repo.db.distributions[m.TeamDistributionID]; ok && d.CourseID == courseID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (repo *scheduleRepository) GetCourse(ctx context.Context, courseID int) (schedule.Course, error) {
	done, err := repo.begin(ctx, "GetCourse")
	if err != nil {
		return schedule.Course{}, err
	}
	defer done()

	c, ok := repo.db.courses[courseID]
	if !ok {
		return schedule.Course{}, schedule.ErrCourseNotFound
	}
	return c, nil
}

// SaveCourseData stores the records with fresh ids; nothing is stored on failure.
func (repo *scheduleRepository) SaveCourseData(ctx context.Context, data schedule.CourseData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	if err := repo.db.failure("SaveCourseData"); err != nil {
		return err
	}

	for _, t := range data.Tasks {
		t.ID = repo.db.assignPK(0)
		repo.db.tasks[t.ID] = t
	}
	for _, e := range data.Events {
		e.ID = repo.db.assignPK(0)
		repo.db.events[e.ID] = e
	}
	for _, d := range data.Distributions {
		d.ID = repo.db.assignPK(0)
		repo.db.distributions[d.ID] = d
	}
	return nil
}
