package schedule

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/aliakseitokarev/rsschool-app/core"
)

const tracerName = "github.com/aliakseitokarev/rsschool-app/core/schedule"

type (
	Service interface {
		// ComputeSchedule returns the ordered timeline of a course.
		// With studentID 0 the timeline is computed without a student context.
		ComputeSchedule(ctx context.Context, courseID, studentID int) ([]Item, error)
	}

	service struct {
		repo   Repository
		cached *cachedRepository // nil when caching is disabled
		log    core.Logger
		conf   core.ScheduleConfig
		tracer trace.Tracer
		now    func() time.Time
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger, conf *core.Config) Service {
	return newService(repo, logger, conf)
}

func newService(repo Repository, logger core.Logger, conf *core.Config) *service {
	svc := &service{
		repo:   repo,
		log:    logger,
		conf:   conf.Schedule,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	if conf.Schedule.CacheTTL > 0 {
		svc.cached = newCachedRepository(repo, conf.Schedule.CacheTTL, conf.Schedule.FetchTimeout)
	}
	return svc
}

func (svc *service) ComputeSchedule(ctx context.Context, courseID, studentID int) (items []Item, err error) {
	ctx, span := svc.tracer.Start(ctx, "schedule.ComputeSchedule", trace.WithAttributes(
		attribute.Int("course.id", courseID),
		attribute.Int("student.id", studentID),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("schedule.items", len(items)))
		}
		span.End()
	}()

	data, results, err := svc.fetch(ctx, courseID, studentID)
	if err != nil {
		svc.log.Error("schedule: fetching course data", err, map[string]interface{}{
			"courseId":  courseID,
			"studentId": studentID,
		})
		return nil, err
	}
	return BuildTimeline(svc.now(), data, results), nil
}

// fetch loads the course collections and, for a student, the student collections concurrently.
// The first failure cancels the others and is returned as an *UpstreamError.
func (svc *service) fetch(ctx context.Context, courseID, studentID int) (CourseData, *StudentResults, error) {
	if svc.conf.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.conf.FetchTimeout)
		defer cancel()
	}

	// course collections are cached only for student schedules
	var courseRepo Repository = svc.repo
	if studentID != 0 && svc.cached != nil {
		courseRepo = svc.cached
	}

	var (
		data    CourseData
		results *StudentResults
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(upstream("course tasks", func() (err error) {
		data.Tasks, err = courseRepo.ListActiveCourseTasks(ctx, courseID)
		return
	}))
	g.Go(upstream("course events", func() (err error) {
		data.Events, err = courseRepo.ListCourseEvents(ctx, courseID)
		return
	}))
	g.Go(upstream("team distributions", func() (err error) {
		data.Distributions, err = courseRepo.ListTeamDistributions(ctx, courseID)
		return
	}))

	if studentID != 0 {
		results = new(StudentResults)
		g.Go(upstream("task results", func() (err error) {
			results.TaskResults, err = svc.repo.ListTaskResults(ctx, studentID)
			return
		}))
		g.Go(upstream("interview results", func() (err error) {
			results.InterviewResults, err = svc.repo.ListInterviewResults(ctx, studentID)
			return
		}))
		g.Go(upstream("stage interviews", func() (err error) {
			results.StageInterviews, err = svc.repo.ListStageInterviews(ctx, studentID)
			return
		}))
		g.Go(upstream("task solutions", func() (err error) {
			results.Solutions, err = svc.repo.ListTaskSolutions(ctx, studentID)
			return
		}))
		g.Go(upstream("task checkers", func() (err error) {
			results.Checkers, err = svc.repo.ListTaskCheckers(ctx, studentID)
			return
		}))
		g.Go(upstream("team distribution students", func() (err error) {
			results.Distributions, err = svc.repo.ListTeamDistributionStudents(ctx, courseID, studentID)
			return
		}))
	}

	if err := g.Wait(); err != nil {
		return CourseData{}, nil, err
	}
	return data, results, nil
}

func upstream(source string, fetch func() error) func() error {
	return func() error {
		if err := fetch(); err != nil {
			return &UpstreamError{Source: source, Err: err}
		}
		return nil
	}
}
