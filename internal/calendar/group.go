// Package calendar turns the flat event collection into day-keyed groups for
// display. Grouping is a pure function over the store's ordered event list;
// it is recomputed from scratch on every read.
package calendar

import (
	"sort"

	"github.com/kwahlin/daybook/internal/datekey"
	"github.com/kwahlin/daybook/internal/domain"
)

// DayGroup is one calendar day together with the events that touch it.
// Day is a UTC day key as produced by datekey.FromTime.
type DayGroup struct {
	Day    string
	Events []domain.Event
}

// GroupByDay buckets events by the UTC calendar day of their start and, when
// it differs, also the day of their end — an event crossing midnight appears
// in both days' groups. Groups are returned most recent day first; within a
// group, events keep the insertion order of the input list.
//
// The input is never mutated and an empty input yields an empty (non-nil)
// result. Callers must not confuse "no events" with "not yet loaded"; the
// store's load status carries that distinction.
func GroupByDay(events []domain.Event) []DayGroup {
	buckets := make(map[string][]domain.Event)

	for _, ev := range events {
		startKey := datekey.FromTime(ev.DateStart)
		endKey := datekey.FromTime(ev.DateEnd)

		buckets[startKey] = append(buckets[startKey], ev)
		if endKey != startKey {
			buckets[endKey] = append(buckets[endKey], ev)
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Day keys are fixed-width, so reverse lexicographic order is reverse
	// chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, DayGroup{Day: key, Events: buckets[key]})
	}
	return groups
}
