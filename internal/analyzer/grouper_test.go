package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/ludo-technologies/lintreport/domain"
	"github.com/ludo-technologies/lintreport/internal/testutil"
)

func lines(msgs []domain.Message) []int {
	out := make([]int, len(msgs))
	for i, m := range msgs {
		if m.Line == nil {
			out[i] = -1
			continue
		}
		out[i] = *m.Line
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGroupMessages_SortsByLine(t *testing.T) {
	messages := []domain.Message{
		testutil.NewMessage("a", "a.py", 5),
		testutil.NewMessage("a", "a.py", 2),
	}

	groups := GroupMessages(messages, domain.MissingLineFirst)
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}

	key := domain.ModuleKey{Name: "a", Path: "a.py"}
	if groups[0].Key != key {
		t.Errorf("Expected key %v, got %v", key, groups[0].Key)
	}
	if got := lines(groups[0].Messages); !equalInts(got, []int{2, 5}) {
		t.Errorf("Expected lines [2 5], got %v", got)
	}
}

func TestGroupMessages_MissingLinePlacement(t *testing.T) {
	messages := []domain.Message{
		testutil.NewMessage("a", "a.py", 7),
		testutil.NewUnlocatedMessage("a", "a.py"),
		testutil.NewMessage("a", "a.py", 1),
	}

	tests := []struct {
		name      string
		placement domain.MissingLinePlacement
		want      []int
	}{
		{"first", domain.MissingLineFirst, []int{-1, 1, 7}},
		{"last", domain.MissingLineLast, []int{1, 7, -1}},
		{"default", "", []int{-1, 1, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupMessages(messages, tt.placement)
			if got := lines(groups[0].Messages); !equalInts(got, tt.want) {
				t.Errorf("Expected lines %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGroupMessages_StableForEqualLines(t *testing.T) {
	first := testutil.WithSymbol(testutil.NewMessage("a", "a.py", 3), "first")
	second := testutil.WithSymbol(testutil.NewMessage("a", "a.py", 3), "second")

	groups := GroupMessages([]domain.Message{first, second}, domain.MissingLineFirst)
	msgs := groups[0].Messages
	if msgs[0].Symbol != "first" || msgs[1].Symbol != "second" {
		t.Errorf("Equal lines should keep input order, got %s, %s", msgs[0].Symbol, msgs[1].Symbol)
	}
}

func TestGroupMessages_KeyIncludesPath(t *testing.T) {
	messages := []domain.Message{
		testutil.NewMessage("a", "a.py", 1),
		testutil.NewMessage("a", "other/a.py", 1),
		testutil.NewMessage("", "", 1),
		testutil.NewMessage("", "", 2),
	}

	groups := GroupMessages(messages, domain.MissingLineFirst)
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	unknown := groups[2]
	if unknown.Key != (domain.ModuleKey{}) {
		t.Errorf("Expected the empty key group last, got %v", unknown.Key)
	}
	if len(unknown.Messages) != 2 {
		t.Errorf("Unknown module group should hold 2 messages, got %d", len(unknown.Messages))
	}
}

func TestGroupMessages_AbsentAndEmptyKeysShareGroup(t *testing.T) {
	data := `[
		{"type": "error", "line": 4},
		{"type": "error", "module": "", "path": "", "line": 1},
		{"type": "warning", "module": "m", "line": 2}
	]`
	var messages []domain.Message
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	groups := GroupMessages(messages, domain.MissingLineFirst)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != (domain.ModuleKey{}) || !equalInts(lines(groups[0].Messages), []int{1, 4}) {
		t.Errorf("Absent and empty keys should share one group, got %v %v", groups[0].Key, lines(groups[0].Messages))
	}

	metrics := CountMetrics(messages)
	if metrics.Paths.Count(domain.Unknown()) != 3 || metrics.Modules.Count(domain.Unknown()) != 2 {
		t.Errorf("Unexpected unknown buckets: paths %v, modules %v", metrics.Paths.Entries(), metrics.Modules.Entries())
	}
}

func TestGroupMessages_PreservesEveryMessage(t *testing.T) {
	messages := testutil.SampleMessages()
	groups := GroupMessages(messages, domain.MissingLineFirst)

	total := 0
	for _, g := range groups {
		total += len(g.Messages)
		for _, m := range g.Messages {
			if domain.KeyOf(m) != g.Key {
				t.Errorf("Message %v filed under %v", domain.KeyOf(m), g.Key)
			}
		}
	}
	if total != len(messages) {
		t.Errorf("Expected %d grouped messages, got %d", len(messages), total)
	}
}

func TestGroupMessages_Empty(t *testing.T) {
	if groups := GroupMessages(nil, domain.MissingLineFirst); len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestSortModules(t *testing.T) {
	groups := []domain.ModuleGroup{
		{Key: domain.ModuleKey{Name: "z", Path: "b.py"}},
		{Key: domain.ModuleKey{Name: "y", Path: "a.py"}},
		{Key: domain.ModuleKey{Name: "x", Path: "a.py"}},
		{Key: domain.ModuleKey{}},
	}

	sortModules(groups)

	want := []domain.ModuleKey{
		{},
		{Name: "x", Path: "a.py"},
		{Name: "y", Path: "a.py"},
		{Name: "z", Path: "b.py"},
	}
	for i, k := range want {
		if groups[i].Key != k {
			t.Errorf("Position %d: expected %v, got %v", i, k, groups[i].Key)
		}
	}
}
