package completion

import "strings"

const basePrompt = `You are Shepherd, a warm and thoughtful spiritual companion. ` +
	`You offer guidance rooted in scripture, prayer, and pastoral care. ` +
	`Speak plainly and kindly, in short sentences suited to being read aloud. ` +
	`Never claim authority you do not have; encourage people to seek their own ` +
	`community and clergy for serious matters.`

// diversityInstruction is appended to every system message to reduce
// repetitive phrasing across answers. Policy detail, not a correctness rule.
const diversityInstruction = `Vary your wording and examples between answers; ` +
	`avoid opening with the same phrase twice.`

var categoryPrompts = map[string]string{
	"prayer":    "The user is asking for help with prayer. Offer a short prayer they can make their own.",
	"scripture": "The user wants scriptural grounding. Cite passages by book, chapter and verse.",
	"grief":     "The user is grieving. Be gentle, unhurried, and do not rush toward silver linings.",
	"gratitude": "The user wants to practice gratitude. Help them name specific things to be thankful for.",
}

// GuidancePrompt builds the system message for a guidance exchange. The
// optional category tailors the persona; extra carries caller-supplied
// context such as a congregation name or prior topic.
func GuidancePrompt(category, extra string) ChatMessage {
	parts := []string{basePrompt}

	if p, ok := categoryPrompts[category]; ok {
		parts = append(parts, p)
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		parts = append(parts, "Context from the user: "+extra)
	}
	parts = append(parts, diversityInstruction)

	return ChatMessage{
		Role:    RoleSystem,
		Content: strings.Join(parts, "\n\n"),
	}
}

// NormalizeCategory maps unknown categories onto "general".
func NormalizeCategory(category string) string {
	if _, ok := categoryPrompts[category]; ok {
		return category
	}
	return "general"
}
