package schedule

import "time"

func progressState(p *StudentProgress) (score *float64, submitted bool) {
	if p == nil {
		return nil, false
	}
	return p.Score, p.Submitted
}

// TaskStatus derives the status of an ordinary (non cross-check) course task.
func TaskStatus(now time.Time, w Window, policy ScoringPolicy, progress *StudentProgress) Status {
	if !w.Scheduled() {
		return StatusArchived
	}
	if now.Before(*w.Start) {
		return StatusFuture
	}

	score, submitted := progressState(progress)
	inPeriod := w.Contains(now)

	// auto-tests stay open until the max score is reached; no score counts as below max
	if inPeriod && policy.Checker == CheckerAutoTest && (score == nil || *score < policy.MaxScore) {
		return StatusAvailable
	}
	if score != nil {
		return StatusDone
	}
	if submitted {
		return StatusReview
	}
	if inPeriod {
		return StatusAvailable
	}
	if progress != nil {
		return StatusMissed
	}
	return StatusArchived
}

// CrossCheckStatus derives the status of one phase of a cross-check task.
// phase is TagCrossCheckSubmit or TagCrossCheckReview.
func CrossCheckStatus(now time.Time, w Window, phase Tag, progress *StudentProgress) Status {
	if !w.Scheduled() {
		return StatusArchived
	}
	if now.Before(*w.Start) {
		return StatusFuture
	}

	score, submitted := progressState(progress)

	// a lapsed submission phase is complete once something was submitted
	if score != nil || (now.After(*w.End) && phase == TagCrossCheckSubmit && submitted) {
		return StatusDone
	}
	if w.Contains(now) {
		return StatusAvailable
	}
	if progress != nil {
		return StatusMissed
	}
	return StatusArchived
}

// EventStatus derives the status of a course event. Events are never done nor missed.
func EventStatus(now time.Time, e CourseEvent) Status {
	if e.Start == nil {
		return StatusArchived
	}
	if end := e.EndTime(); end != nil && now.After(*end) {
		return StatusArchived
	}
	if now.After(*e.Start) {
		return StatusAvailable
	}
	return StatusFuture
}

// DistributionStatus derives the status of a team distribution round.
// member is the student's registration for the round, nil when absent.
func DistributionStatus(now time.Time, d TeamDistribution, member *TeamDistributionStudent) Status {
	w := d.Window()
	if !w.Scheduled() {
		return StatusArchived
	}
	if now.Before(*w.Start) {
		return StatusFuture
	}
	if member != nil && member.Distributed {
		return StatusDone
	}
	if member != nil && member.Active {
		return StatusRegistered
	}
	if member == nil || member.Student == nil || member.Student.IsExpelled || d.MinTotalScore > member.Student.TotalScore {
		return StatusUnavailable
	}
	if w.Contains(now) {
		return StatusAvailable
	}
	if now.After(*w.End) {
		return StatusMissed
	}
	return StatusUnavailable
}
