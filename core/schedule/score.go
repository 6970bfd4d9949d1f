package schedule

import (
	"encoding/json"
	"math"
)

// screeningFeedback is the subset of a stage interview feedback document holding a score.
type screeningFeedback struct {
	Resume *struct {
		Score *float64 `json:"score"`
	} `json:"resume"`
	Steps *struct {
		Decision *struct {
			Values *struct {
				FinalScore *float64 `json:"finalScore"`
			} `json:"values"`
		} `json:"decision"`
	} `json:"steps"`
}

// feedbackScore prefers the resume score, then the final decision score.
// Unparseable documents and documents without either score count as 0.
func feedbackScore(raw json.RawMessage) float64 {
	var fb screeningFeedback
	if err := json.Unmarshal(raw, &fb); err != nil {
		return 0
	}
	if fb.Resume != nil && fb.Resume.Score != nil {
		return *fb.Resume.Score
	}
	if fb.Steps != nil && fb.Steps.Decision != nil && fb.Steps.Decision.Values != nil && fb.Steps.Decision.Values.FinalScore != nil {
		return *fb.Steps.Decision.Values.FinalScore
	}
	return 0
}

// screeningScore is the best score over all feedbacks of the stage interview, if any.
func screeningScore(si StageInterview) (float64, bool) {
	if len(si.Feedbacks) == 0 {
		return 0, false
	}
	best := math.Inf(-1)
	for _, raw := range si.Feedbacks {
		best = math.Max(best, feedbackScore(raw))
	}
	return best, true
}

// ResolveScore returns the current score of a course task for a student.
//
// The first source holding a score wins, regardless of its value: the task result,
// then the interview result, then the screening interview. nil means no score.
func ResolveScore(courseTaskID int, results *StudentResults) *float64 {
	if results == nil {
		return nil
	}

	for _, r := range results.TaskResults {
		if r.CourseTaskID == courseTaskID {
			if r.Score != nil {
				return finite(*r.Score)
			}
			break
		}
	}
	for _, r := range results.InterviewResults {
		if r.CourseTaskID == courseTaskID {
			if r.Score != nil {
				return finite(*r.Score)
			}
			break
		}
	}
	for _, si := range results.StageInterviews {
		if si.CourseTaskID == courseTaskID {
			if score, ok := screeningScore(si); ok {
				return finite(score)
			}
			return nil
		}
	}
	return nil
}

func finite(score float64) *float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil
	}
	return &score
}
