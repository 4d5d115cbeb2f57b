// Package query composes stored tasks into the views consumers need.
// Every function here is pure: slices in, slices out, no I/O.
package query

import (
	"strings"

	"github.com/servicehub/marketplace-api/internal/models"
)

// Filter holds the search criteria applied to a task list.
type Filter struct {
	// SearchTerm matches case-insensitively against title, description or
	// category. Empty matches everything.
	SearchTerm string

	// Location, when non-empty, must be a case-insensitive substring of the
	// task's location.
	Location string

	// MaxPrice, when set, excludes tasks whose parsed budget exceeds it.
	// Tasks with an empty or non-numeric budget parse to 0 and are therefore
	// excluded by any positive MaxPrice.
	MaxPrice *int
}

// FilterTasks returns the tasks matching all criteria, preserving order.
func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	matched := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, f) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matches(t models.Task, f Filter) bool {
	if term := strings.ToLower(f.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) &&
			!strings.Contains(strings.ToLower(t.Category), term) {
			return false
		}
	}

	if loc := strings.ToLower(f.Location); loc != "" {
		if !strings.Contains(strings.ToLower(t.Location), loc) {
			return false
		}
	}

	if f.MaxPrice != nil && MaxBudget(t.Budget) > *f.MaxPrice {
		return false
	}

	return true
}

// MaxBudget extracts every integer embedded in a free-text budget ("500-1000",
// "ca. 150") and returns the largest. A budget with no digits yields 0.
func MaxBudget(budget string) int {
	max := 0
	current := 0
	inNumber := false

	for _, r := range budget {
		if r >= '0' && r <= '9' {
			current = current*10 + int(r-'0')
			inNumber = true
			continue
		}
		if inNumber && current > max {
			max = current
		}
		current = 0
		inNumber = false
	}
	if inNumber && current > max {
		max = current
	}

	return max
}

// Partition splits tasks into those created by the given user and the rest.
type Partition struct {
	Mine   []models.Task
	Others []models.Task
}

// PartitionByOwner splits tasks by creator. A nil currentUserID (no identity)
// puts every task into Others.
func PartitionByOwner(tasks []models.Task, currentUserID *uint64) Partition {
	p := Partition{
		Mine:   []models.Task{},
		Others: []models.Task{},
	}
	for _, t := range tasks {
		if currentUserID != nil && t.CreatedBy != nil && *t.CreatedBy == *currentUserID {
			p.Mine = append(p.Mine, t)
		} else {
			p.Others = append(p.Others, t)
		}
	}
	return p
}

// Grouped is an insertion-order-preserving category grouping.
type Grouped struct {
	// Categories lists group keys in first-seen order.
	Categories []string
	// Tasks maps the literal category string to its tasks. Keys are not
	// normalized: "webentwicklung" and "Webentwicklung" are distinct groups.
	Tasks map[string][]models.Task
}

// GroupByCategory groups tasks by their literal category string. Flattening
// the groups in key order yields the input as a multiset.
func GroupByCategory(tasks []models.Task) Grouped {
	g := Grouped{
		Categories: []string{},
		Tasks:      make(map[string][]models.Task),
	}
	for _, t := range tasks {
		if _, seen := g.Tasks[t.Category]; !seen {
			g.Categories = append(g.Categories, t.Category)
		}
		g.Tasks[t.Category] = append(g.Tasks[t.Category], t)
	}
	return g
}
