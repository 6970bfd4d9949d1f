package schedule

// task and event types as stored upstream
const (
	TaskTypeSelfEducation  = "selfeducation"
	TaskTypeTest           = "test"
	TaskTypeInterview      = "interview"
	TaskTypeStageInterview = "stage-interview"

	EventTypeSelfStudy = "self-study"
)

// TaskTag classifies a course task; the course-level type overrides the task type.
func TaskTag(t CourseTask) Tag {
	taskType := t.Type
	if taskType == "" {
		taskType = t.TaskType
	}

	switch taskType {
	case TaskTypeSelfEducation, TaskTypeTest:
		return TagTest
	case TaskTypeInterview, TaskTypeStageInterview:
		return TagInterview
	default:
		return TagCoding
	}
}

func EventTag(e CourseEvent) Tag {
	if e.Type == EventTypeSelfStudy {
		return TagSelfStudy
	}
	return TagLecture
}

// tagPriorities orders items starting in the same minute; unlisted tags come last.
var tagPriorities = map[Tag]int{
	TagSelfStudy: 1,
	TagTest:      2,
	TagCoding:    3,
}

func tagPriority(tag Tag) int {
	if p, ok := tagPriorities[tag]; ok {
		return p
	}
	return len(tagPriorities) + 1
}
