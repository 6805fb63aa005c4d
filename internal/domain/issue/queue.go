package issue

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Tab is a top-level grouping filter in the manager's queue view. Tabs are
// mutually exclusive views over the same source collection.
type Tab string

// Queue tabs.
const (
	TabNeedsAction Tab = "needs_action"
	TabAllActive   Tab = "all_active"
	TabResolved    Tab = "resolved"
	TabClosed      Tab = "closed"
)

// Tabs lists all queue tabs in display order.
var Tabs = []Tab{TabNeedsAction, TabAllActive, TabResolved, TabClosed}

// Valid reports whether t is a defined tab.
func (t Tab) Valid() bool {
	switch t {
	case TabNeedsAction, TabAllActive, TabResolved, TabClosed:
		return true
	}
	return false
}

// contains reports whether the issue's status falls inside the tab.
func (t Tab) contains(s Status) bool {
	switch t {
	case TabNeedsAction:
		return s.NeedsAction()
	case TabAllActive:
		return s.Active()
	case TabResolved:
		return s == StatusResolvedByAgent
	case TabClosed:
		return s == StatusClosed
	}
	return false
}

// Sort selects the ordering of the queue view.
type Sort string

// Queue sort modes.
const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortPriority Sort = "priority"
)

// Valid reports whether s is a defined sort mode.
func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriority:
		return true
	}
	return false
}

// Criteria is the full set of UI-selected filter and sort settings for the
// queue. The zero value of each secondary filter means "all".
type Criteria struct {
	Tab        Tab
	Status     Status   // exact match; empty = all
	Priority   Priority // exact match; empty = all
	PropertyID int      // exact match; 0 = all
	TenantID   int      // exact match; 0 = all
	From       time.Time // inclusive from 00:00:00 of the day; zero = unset
	To         time.Time // inclusive to 23:59:59.999 of the day; zero = unset
	Search     string    // case-insensitive substring over title/description/category
	Sort       Sort
}

// Normalize fills defaults: tab needs_action, sort newest.
func (c Criteria) Normalize() Criteria {
	if !c.Tab.Valid() {
		c.Tab = TabNeedsAction
	}
	if !c.Sort.Valid() {
		c.Sort = SortNewest
	}
	return c
}

// Key returns a cheap cache key identifying the criteria. Combined with a
// snapshot version it keys memoized view computations.
func (c Criteria) Key() string {
	var from, to string
	if !c.From.IsZero() {
		from = c.From.Format("2006-01-02")
	}
	if !c.To.IsZero() {
		to = c.To.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s|%s|%d|%d|%s|%s|%s|%s",
		c.Tab, c.Status, c.Priority, c.PropertyID, c.TenantID,
		from, to, strings.ToLower(strings.TrimSpace(c.Search)), c.Sort)
}

// View is the derived queue projection: the ordered rows to render plus
// per-tab counts. It is disposable and recomputed on every input change.
type View struct {
	Rows   []Issue     `json:"rows"`
	Counts map[Tab]int `json:"counts"`
	Total  int         `json:"total"`
}

// ComputeView filters and sorts issues per the criteria and counts each
// tab's membership over the unfiltered source. It is pure: no I/O, inputs
// are never mutated, and malformed enum values never cause a failure.
func ComputeView(issues []Issue, c Criteria) View {
	c = c.Normalize()

	counts := make(map[Tab]int, len(Tabs))
	for _, t := range Tabs {
		counts[t] = 0
	}
	for i := range issues {
		for _, t := range Tabs {
			if t.contains(issues[i].Status) {
				counts[t]++
			}
		}
	}

	rows := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if matches(is, c) {
			rows = append(rows, is)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		switch c.Sort {
		case SortOldest:
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		case SortPriority:
			return rows[i].Priority.Rank() < rows[j].Priority.Rank()
		default: // newest
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
	})

	return View{Rows: rows, Counts: counts, Total: len(rows)}
}

// matches applies the tab predicate and every secondary filter.
func matches(is Issue, c Criteria) bool {
	if !c.Tab.contains(is.Status) {
		return false
	}
	if c.Status != "" && is.Status != c.Status {
		return false
	}
	if c.Priority != "" && is.Priority != c.Priority {
		return false
	}
	if c.PropertyID != 0 && is.PropertyID != c.PropertyID {
		return false
	}
	if c.TenantID != 0 && is.TenantID != c.TenantID {
		return false
	}
	if !c.From.IsZero() {
		from := startOfDay(c.From)
		if is.CreatedAt.Before(from) {
			return false
		}
	}
	if !c.To.IsZero() {
		to := endOfDay(c.To)
		if is.CreatedAt.After(to) {
			return false
		}
	}
	if q := strings.TrimSpace(c.Search); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(is.Title), q) &&
			!strings.Contains(strings.ToLower(is.Description), q) &&
			!strings.Contains(strings.ToLower(string(is.Category)), q) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
