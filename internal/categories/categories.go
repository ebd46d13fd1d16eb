package categories

import (
	"slices"
	"strings"
)

// Vocabulary lists every label an item may carry, in display order.
var Vocabulary = []string{
	AbilityAptitude,
	KnowledgeSkills,
	PersonalityBehavior,
	Competencies,
	BiodataSituational,
	Development360,
	AssessmentExercises,
	Simulations,
	Unknown,
}

// DisplayMap maps the preference names offered to callers onto internal labels.
// Order inside each slice is the bucket priority used by the selector.
var DisplayMap = map[string][]string{
	displayCognitive:      {AbilityAptitude},
	displayPersonality:    {PersonalityBehavior},
	displayTechnicalSkill: {KnowledgeSkills},
	displayBehavioral:     {Competencies, PersonalityBehavior},
}

var inferenceRules = []keywordRule{
	{
		category: AbilityAptitude,
		keywords: []string{"cognitive", "aptitude", "ability", "reasoning"},
	},
	{
		category: PersonalityBehavior,
		keywords: []string{"personality", "behavior", "behaviour", "competency", "competencies"},
	},
	{
		category: KnowledgeSkills,
		keywords: []string{"coding", "developer", "engineer", "programming", "python", "java", "sql", "technical"},
	},
}

// infers the categories a query asks for from keyword hits in the lower-cased text
func Infer(query string) []string {
	q := strings.ToLower(query)
	needed := make([]string, 0, len(inferenceRules))

	for _, rule := range inferenceRules {
		if slices.ContainsFunc(rule.keywords, func(k string) bool { return strings.Contains(q, k) }) {
			needed = appendUnique(needed, rule.category)
		}
	}

	return needed
}

// maps a preference to internal labels. Display names go through DisplayMap,
// an internal label maps to itself; nil when empty, "Any", "Unknown" or unmapped.
func FromPreference(preferred string) []string {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" || preferred == PreferenceAny || preferred == Unknown {
		return nil
	}

	if mapped, ok := DisplayMap[preferred]; ok {
		return slices.Clone(mapped)
	}

	if IsKnown(preferred) {
		return []string{preferred}
	}

	return nil
}

// resolves the needed-category set: a mappable preference overrides inference
func Needed(query, preferred string) []string {
	if mapped := FromPreference(preferred); len(mapped) > 0 {
		return mapped
	}

	return Infer(query)
}

// returns the display names callers may pass as a preference, sorted
func DisplayNames() []string {
	names := make([]string, 0, len(DisplayMap))
	for name := range DisplayMap {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// reports whether label belongs to the internal vocabulary
func IsKnown(label string) bool {
	return slices.Contains(Vocabulary, label)
}

// trims labels, drops empties and duplicates, keeps first-seen order
func Clean(labels []string) []string {
	out := make([]string, 0, len(labels))

	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			out = appendUnique(out, label)
		}
	}

	return out
}

func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}

	return append(list, value)
}
