package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedbacks(docs ...string) []json.RawMessage {
	raws := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		raws = append(raws, json.RawMessage(d))
	}
	return raws
}

func TestResolveScore(t *testing.T) {
	tests := []struct {
		name    string
		results *StudentResults
		want    *float64
	}{
		{name: "no student", results: nil},
		{name: "no records", results: &StudentResults{}},
		{
			name: "task result first",
			results: &StudentResults{
				TaskResults:      []TaskResult{{CourseTaskID: 1, Score: fPtr(5)}},
				InterviewResults: []InterviewResult{{CourseTaskID: 1, Score: fPtr(9)}},
			},
			want: fPtr(5),
		},
		{
			name: "zero is a score",
			results: &StudentResults{
				TaskResults:      []TaskResult{{CourseTaskID: 1, Score: fPtr(0)}},
				InterviewResults: []InterviewResult{{CourseTaskID: 1, Score: fPtr(9)}},
			},
			want: fPtr(0),
		},
		{
			name: "other tasks ignored",
			results: &StudentResults{
				TaskResults:      []TaskResult{{CourseTaskID: 2, Score: fPtr(5)}},
				InterviewResults: []InterviewResult{{CourseTaskID: 1, Score: fPtr(9)}},
			},
			want: fPtr(9),
		},
		{
			name: "unscored task result falls through",
			results: &StudentResults{
				TaskResults:      []TaskResult{{CourseTaskID: 1}},
				InterviewResults: []InterviewResult{{CourseTaskID: 1, Score: fPtr(9)}},
			},
			want: fPtr(9),
		},
		{
			name: "screening max",
			results: &StudentResults{
				StageInterviews: []StageInterview{{
					CourseTaskID: 1,
					Feedbacks: feedbacks(
						`{"resume":{"score":null},"steps":{"decision":{"values":{"finalScore":3}}}}`,
						`{"resume":{"score":7},"steps":{"decision":{"values":{"finalScore":null}}}}`,
					),
				}},
			},
			want: fPtr(7),
		},
		{
			name: "resume score preferred",
			results: &StudentResults{
				StageInterviews: []StageInterview{{
					CourseTaskID: 1,
					Feedbacks:    feedbacks(`{"resume":{"score":2},"steps":{"decision":{"values":{"finalScore":8}}}}`),
				}},
			},
			want: fPtr(2),
		},
		{
			name: "malformed feedback counts as zero",
			results: &StudentResults{
				StageInterviews: []StageInterview{{CourseTaskID: 1, Feedbacks: feedbacks(`{not json`, `{}`)}},
			},
			want: fPtr(0),
		},
		{
			name: "screening without feedbacks",
			results: &StudentResults{
				StageInterviews: []StageInterview{{CourseTaskID: 1}},
			},
		},
		{
			name: "interview result before screening",
			results: &StudentResults{
				InterviewResults: []InterviewResult{{CourseTaskID: 1, Score: fPtr(4)}},
				StageInterviews:  []StageInterview{{CourseTaskID: 1, Feedbacks: feedbacks(`{"resume":{"score":7}}`)}},
			},
			want: fPtr(4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScore(1, tt.results))
		})
	}
}

func TestResolveSubmitted(t *testing.T) {
	tests := []struct {
		name    string
		results *StudentResults
		want    bool
	}{
		{name: "no student", results: nil},
		{name: "nothing", results: &StudentResults{Solutions: []TaskSolution{{CourseTaskID: 2}}}},
		{name: "solution", results: &StudentResults{Solutions: []TaskSolution{{CourseTaskID: 1, URL: "https://github.com/s/t"}}}, want: true},
		{name: "checker", results: &StudentResults{Checkers: []TaskChecker{{CourseTaskID: 1, MentorID: 3}}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSubmitted(1, tt.results); got != tt.want {
				t.Errorf("ResolveSubmitted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskTag(t *testing.T) {
	tests := []struct {
		name string
		task CourseTask
		want Tag
	}{
		{name: "self education", task: CourseTask{TaskType: "selfeducation"}, want: TagTest},
		{name: "test", task: CourseTask{TaskType: "test"}, want: TagTest},
		{name: "interview", task: CourseTask{TaskType: "interview"}, want: TagInterview},
		{name: "stage interview", task: CourseTask{TaskType: "stage-interview"}, want: TagInterview},
		{name: "js task", task: CourseTask{TaskType: "jstask"}, want: TagCoding},
		{name: "empty", task: CourseTask{}, want: TagCoding},
		{name: "course type overrides", task: CourseTask{Type: "test", TaskType: "jstask"}, want: TagTest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaskTag(tt.task); got != tt.want {
				t.Errorf("TaskTag() = %v, want %v", got, tt.want)
			}
		})
	}

	assert.Equal(t, TagSelfStudy, EventTag(CourseEvent{Type: "self-study"}))
	assert.Equal(t, TagLecture, EventTag(CourseEvent{Type: "lecture_online"}))
	assert.Equal(t, TagLecture, EventTag(CourseEvent{}))
}
