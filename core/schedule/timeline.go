package schedule

import (
	"sort"
	"time"
)

// BuildTimeline maps every task, event and team distribution of the course to schedule items
// and orders them. results is nil when the schedule is computed without a student.
func BuildTimeline(now time.Time, data CourseData, results *StudentResults) []Item {
	items := make([]Item, 0, len(data.Tasks)*2+len(data.Events)+len(data.Distributions))

	for _, t := range data.Tasks {
		progress := ResolveProgress(t.ID, results)
		if t.Policy.Checker == CheckerCrossCheck {
			split := SplitCrossCheck(now, t, progress)
			items = append(items, split[:]...)
			continue
		}

		w := t.Window.Submit()
		item := taskItem(t, progress)
		item.StartDate, item.EndDate = copyTime(w.Start), copyTime(w.End)
		item.Tag = TaskTag(t)
		item.Status = TaskStatus(now, w, t.Policy, progress)
		items = append(items, item)
	}

	for _, e := range data.Events {
		items = append(items, Item{
			ID:             e.ID,
			CourseID:       e.CourseID,
			Name:           e.Name,
			StartDate:      copyTime(e.Start),
			EndDate:        copyTime(e.EndTime()),
			Status:         EventStatus(now, e),
			Tag:            EventTag(e),
			DescriptionURL: e.DescriptionURL,
			Organizer:      copyPerson(e.Organizer),
			Source:         SourceCourseEvent,
		})
	}

	var memberships map[int]*TeamDistributionStudent
	if results != nil {
		memberships = make(map[int]*TeamDistributionStudent, len(results.Distributions))
		for i := range results.Distributions {
			m := &results.Distributions[i]
			if _, ok := memberships[m.TeamDistributionID]; !ok {
				memberships[m.TeamDistributionID] = m
			}
		}
	}
	for _, d := range data.Distributions {
		w := d.Window()
		items = append(items, Item{
			ID:             d.ID,
			CourseID:       d.CourseID,
			Name:           d.Name,
			StartDate:      w.Start,
			EndDate:        w.End,
			Status:         DistributionStatus(now, d, memberships[d.ID]),
			Tag:            TagTeamDistribution,
			DescriptionURL: d.DescriptionURL,
			Source:         SourceTeamDistribution,
		})
	}

	SortItems(items)
	return items
}

// SortItems orders items by start date at minute resolution, then by tag priority.
// Items without a start date come first. The sort is stable.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := startMinute(items[i]), startMinute(items[j])
		if !a.Equal(b) {
			return a.Before(b)
		}
		return tagPriority(items[i].Tag) < tagPriority(items[j].Tag)
	})
}

func startMinute(item Item) time.Time {
	if item.StartDate == nil {
		return time.Time{}
	}
	return item.StartDate.Truncate(time.Minute)
}
