package ui

import (
	"sort"
	"time"

	"github.com/dux-cli/dux/internal/entry"
)

// toggleSort switches to field, flipping direction if it was already
// the active field.
func (m *Model) toggleSort(field SortField) {
	if m.sortMode.Field == field {
		m.sortMode.Desc = !m.sortMode.Desc
	} else {
		m.sortMode = SortMode{Field: field, Desc: true}
	}
	m.refreshCurrentView()
}

// applySort returns a freshly sorted copy of children per m.sortMode.
// Name is always the tiebreak so equal-key orderings stay deterministic.
func (m *Model) applySort(children []*entry.Entry) []*entry.Entry {
	sorted := append([]*entry.Entry(nil), children...)
	less := func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		var cmp int
		switch m.sortMode.Field {
		case SortName:
			cmp = compareStrings(a.Name(), b.Name())
		case SortMtime:
			cmp = compareTimes(a.ModTime, b.ModTime)
		case SortCount:
			cmp = compareInt64(a.EntryCount(), b.EntryCount())
		default:
			cmp = compareInt64(m.entrySize(a), m.entrySize(b))
		}
		if cmp == 0 {
			return a.Name() < b.Name()
		}
		if m.sortMode.Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(sorted, less)
	return sorted
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
