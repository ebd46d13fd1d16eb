package categories

// internal category vocabulary (the catalogue's test_type labels)
const (
	AbilityAptitude       = "Ability & Aptitude"
	KnowledgeSkills       = "Knowledge & Skills"
	PersonalityBehavior   = "Personality & Behavior"
	Competencies          = "Competencies"
	BiodataSituational    = "Biodata & Situational Judgement"
	Development360        = "Development & 360"
	AssessmentExercises   = "Assessment Exercises"
	Simulations           = "Simulations"
	Unknown               = "Unknown"
	PreferenceAny         = "Any"
	displayCognitive      = "Cognitive Ability"
	displayPersonality    = "Personality"
	displayTechnicalSkill = "Technical Skill"
	displayBehavioral     = "Behavioral"
)

// one keyword group per inferable category, checked in this order
type keywordRule struct {
	category string
	keywords []string
}
