package schedule

import "context"

// Repository reads the collections a schedule is computed from.
type Repository interface {
	// ListActiveCourseTasks excludes disabled course tasks.
	ListActiveCourseTasks(ctx context.Context, courseID int) ([]CourseTask, error)
	ListCourseEvents(ctx context.Context, courseID int) ([]CourseEvent, error)
	ListTeamDistributions(ctx context.Context, courseID int) ([]TeamDistribution, error)

	ListTaskResults(ctx context.Context, studentID int) ([]TaskResult, error)
	ListInterviewResults(ctx context.Context, studentID int) ([]InterviewResult, error)
	// ListStageInterviews returns completed stage interviews with their feedbacks.
	ListStageInterviews(ctx context.Context, studentID int) ([]StageInterview, error)
	ListTaskSolutions(ctx context.Context, studentID int) ([]TaskSolution, error)
	ListTaskCheckers(ctx context.Context, studentID int) ([]TaskChecker, error)
	ListTeamDistributionStudents(ctx context.Context, courseID, studentID int) ([]TeamDistributionStudent, error)
}

// CopyRepository reads and writes the collections copied between courses.
type CopyRepository interface {
	GetCourse(ctx context.Context, courseID int) (Course, error)
	// ListCourseTasks includes disabled course tasks.
	ListCourseTasks(ctx context.Context, courseID int) ([]CourseTask, error)
	ListCourseEvents(ctx context.Context, courseID int) ([]CourseEvent, error)
	ListTeamDistributions(ctx context.Context, courseID int) ([]TeamDistribution, error)
	// SaveCourseData inserts the given records as new rows, all or none.
	SaveCourseData(ctx context.Context, data CourseData) error
}
