package inmemdb

import (
	"context"
	"sync"

	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

type (
	// DB is a process-local store of schedule records, shared by the repositories of this package.
	DB struct {
		mu sync.RWMutex
		pk int

		courses       map[int]schedule.Course
		tasks         map[int]schedule.CourseTask
		events        map[int]schedule.CourseEvent
		distributions map[int]schedule.TeamDistribution
		students      map[int]*schedule.StudentResults

		failures map[string]error
	}
)

func Open() (*DB, error) {
	db := &DB{}
	db.reset()
	return db, nil
}

func (db *DB) reset() {
	db.pk = 0
	db.courses = make(map[int]schedule.Course)
	db.tasks = make(map[int]schedule.CourseTask)
	db.events = make(map[int]schedule.CourseEvent)
	db.distributions = make(map[int]schedule.TeamDistribution)
	db.students = make(map[int]*schedule.StudentResults)
	db.failures = make(map[string]error)
}

// Reset drops every record and every injected failure.
func (db *DB) Reset() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.reset()
}

// FailOn makes every later call of the named repository method return err; a nil err clears it.
func (db *DB) FailOn(method string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, method)
		return
	}
	db.failures[method] = err
}

func (db *DB) failure(method string) error {
	return db.failures[method]
}

// assignPK returns id, or the next free primary key when id is 0.
func (db *DB) assignPK(id int) int {
	if id == 0 {
		db.pk++
		return db.pk
	}
	if id > db.pk {
		db.pk = id
	}
	return id
}

func (db *DB) AddCourse(c schedule.Course) schedule.Course {
	db.mu.Lock()
	defer db.mu.Unlock()
	c.ID = db.assignPK(c.ID)
	db.courses[c.ID] = c
	return c
}

func (db *DB) AddCourseTask(t schedule.CourseTask) schedule.CourseTask {
	db.mu.Lock()
	defer db.mu.Unlock()
	t.ID = db.assignPK(t.ID)
	db.tasks[t.ID] = t
	return t
}

func (db *DB) AddCourseEvent(e schedule.CourseEvent) schedule.CourseEvent {
	db.mu.Lock()
	defer db.mu.Unlock()
	e.ID = db.assignPK(e.ID)
	db.events[e.ID] = e
	return e
}

func (db *DB) AddTeamDistribution(d schedule.TeamDistribution) schedule.TeamDistribution {
	db.mu.Lock()
	defer db.mu.Unlock()
	d.ID = db.assignPK(d.ID)
	db.distributions[d.ID] = d
	return d
}

// AddStudentResults appends results to the records of the student.
func (db *DB) AddStudentResults(studentID int, results schedule.StudentResults) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.students[studentID]
	if !ok {
		cur = new(schedule.StudentResults)
		db.students[studentID] = cur
	}
	cur.TaskResults = append(cur.TaskResults, results.TaskResults...)
	cur.InterviewResults = append(cur.InterviewResults, results.InterviewResults...)
	cur.StageInterviews = append(cur.StageInterviews, results.StageInterviews...)
	cur.Solutions = append(cur.Solutions, results.Solutions...)
	cur.Checkers = append(cur.Checkers, results.Checkers...)
	cur.Distributions = append(cur.Distributions, results.Distributions...)
}

func (db *DB) PingContext(ctx context.Context) error {
	return ctx.Err()
}
