package schedule

import (
	"errors"
	"fmt"
)

var (
	// errors
	ErrUpstreamUnavailable = errors.New("schedule data unavailable")
	ErrCourseNotFound      = errors.New("course not found")
	ErrSameCourse          = errors.New("cannot copy a course schedule onto itself")
)

// UpstreamError reports the collection whose fetch failed a schedule computation.
// It matches ErrUpstreamUnavailable with errors.Is.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: fetching %s: %v", ErrUpstreamUnavailable, e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}
