package analyzer

import (
	"sort"

	"github.com/ludo-technologies/lintreport/domain"
)

// GroupMessages partitions messages by (module, path) and orders each
// group by ascending line. Messages without a line sort before every
// located message with MissingLineFirst and after them with
// MissingLineLast; equal lines keep input order.
//
// Groups are returned in order of first appearance of their key.
func GroupMessages(messages []domain.Message, placement domain.MissingLinePlacement) []domain.ModuleGroup {
	index := make(map[domain.ModuleKey]int)
	var groups []domain.ModuleGroup

	for _, msg := range messages {
		key := domain.KeyOf(msg)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.ModuleGroup{Key: key})
		}
		groups[i].Messages = append(groups[i].Messages, msg)
	}

	for i := range groups {
		sortByLine(groups[i].Messages, placement)
	}

	return groups
}

func sortByLine(messages []domain.Message, placement domain.MissingLinePlacement) {
	missingFirst := placement != domain.MissingLineLast
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		switch {
		case a.HasLine() && b.HasLine():
			return *a.Line < *b.Line
		case !a.HasLine() && !b.HasLine():
			return false
		case !a.HasLine():
			return missingFirst
		default:
			return !missingFirst
		}
	})
}

// sortModules orders groups by path, then module name
func sortModules(groups []domain.ModuleGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Name < b.Name
	})
}
