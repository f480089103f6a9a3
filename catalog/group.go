package catalog

import (
	"sort"

	"github.com/goliatone/go-portfolio/locale"
)

// UncategorizedGroup is the bucket for skills whose category carries no
// content in either language.
const UncategorizedGroup = "Uncategorized"

// SkillGroup is one display bucket of skills sharing a category.
type SkillGroup struct {
	Key    string
	Skills []Skill
}

// GroupSkills buckets skills by category for display. The grouping key
// is resolved at a fixed language (VI slot, then EN, then the
// Uncategorized literal) so entries never jump between groups when the
// viewer toggles the UI language. Groups come back in lexicographic key
// order; within a group skills are ordered by sort_order ascending with
// ties keeping their input order.
func GroupSkills(items []Skill) []SkillGroup {
	buckets := make(map[string][]Skill)
	for _, item := range items {
		key := groupKey(item.Category)
		buckets[key] = append(buckets[key], item)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]SkillGroup, 0, len(keys))
	for _, key := range keys {
		skills := buckets[key]
		sort.SliceStable(skills, func(i, j int) bool {
			return skills[i].SortOrder < skills[j].SortOrder
		})
		groups = append(groups, SkillGroup{Key: key, Skills: skills})
	}
	return groups
}

func groupKey(category locale.Value) string {
	if category.VI != "" {
		return category.VI
	}
	if category.EN != "" {
		return category.EN
	}
	return UncategorizedGroup
}
