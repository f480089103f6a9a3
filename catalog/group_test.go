package catalog

import (
	"testing"

	"github.com/goliatone/go-portfolio/locale"
)

func TestGroupSkillsLexicographicOrder(t *testing.T) {
	groups := GroupSkills([]Skill{
		{Name: locale.Value{EN: "React"}, Category: locale.Value{VI: "Frontend", EN: "Frontend"}},
		{Name: locale.Value{EN: "Node"}, Category: locale.Value{VI: "Backend", EN: "Backend"}},
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Backend" || groups[1].Key != "Frontend" {
		t.Fatalf("unexpected group order: %q, %q", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Skills) != 1 || groups[0].Skills[0].Name.EN != "Node" {
		t.Fatalf("Backend group holds %+v", groups[0].Skills)
	}
	if len(groups[1].Skills) != 1 || groups[1].Skills[0].Name.EN != "React" {
		t.Fatalf("Frontend group holds %+v", groups[1].Skills)
	}
}

func TestGroupSkillsKeyIgnoresDisplayLanguage(t *testing.T) {
	// The key resolves VI first so the bucket is stable regardless of
	// the active UI language.
	groups := GroupSkills([]Skill{
		{Name: locale.Value{EN: "Go"}, Category: locale.Value{VI: "Hệ thống", EN: "Systems"}},
	})
	if len(groups) != 1 || groups[0].Key != "Hệ thống" {
		t.Fatalf("got %+v", groups)
	}
}

func TestGroupSkillsFallsBackToENThenUncategorized(t *testing.T) {
	groups := GroupSkills([]Skill{
		{Name: locale.Value{EN: "Docker"}, Category: locale.Value{EN: "Tooling"}},
		{Name: locale.Value{EN: "Misc"}},
	})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Tooling" || groups[1].Key != UncategorizedGroup {
		t.Fatalf("unexpected keys: %q, %q", groups[0].Key, groups[1].Key)
	}
}

func TestGroupSkillsStableSortWithinGroup(t *testing.T) {
	cat := locale.Value{VI: "Backend"}
	groups := GroupSkills([]Skill{
		{ID: 1, Name: locale.Value{EN: "third"}, Category: cat, SortOrder: 5},
		{ID: 2, Name: locale.Value{EN: "first"}, Category: cat, SortOrder: 1},
		{ID: 3, Name: locale.Value{EN: "second-a"}, Category: cat, SortOrder: 3},
		{ID: 4, Name: locale.Value{EN: "second-b"}, Category: cat, SortOrder: 3},
	})

	got := groups[0].Skills
	want := []int64{2, 3, 4, 1}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d (%+v)", i, id, got[i].ID, got)
		}
	}
}

func TestGroupSkillsEmptyInput(t *testing.T) {
	if groups := GroupSkills(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}
