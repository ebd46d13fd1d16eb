package catalogue

import "codeberg.org/talentmatch/server/internal/categories"

// built-in catalogue used when no real source can be read
func Sample() *Catalogue {
	items := []Item{
		{
			ID:              "1",
			URL:             "https://example.com/general-ability-test",
			Name:            "General Ability Test",
			Description:     "Measures critical thinking, problem solving, and numerical reasoning ability.",
			AdaptiveSupport: "No",
			RemoteSupport:   "Yes",
			DurationMinutes: 36,
			Categories:      []string{categories.AbilityAptitude, categories.KnowledgeSkills},
		},
		{
			ID:              "2",
			URL:             "https://example.com/opq-personality",
			Name:            "OPQ Personality Questionnaire",
			Description:     "Evaluates workplace personality traits and behavioral preferences.",
			AdaptiveSupport: "No",
			RemoteSupport:   "Yes",
			DurationMinutes: 25,
			Categories:      []string{categories.PersonalityBehavior},
		},
	}

	for i := range items {
		items[i].Normalize()
	}

	return &Catalogue{Items: items, Source: SourceSample, Degraded: true}
}
