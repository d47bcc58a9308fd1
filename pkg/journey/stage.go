package journey

// Stage is one step of the fixed business-journey wizard. The sequence is
// defined once at startup and never mutated.
type Stage struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Icon        string `json:"icon"`
	Placeholder string `json:"placeholder"`
}

var stages = []Stage{
	{
		Id:          "idea",
		Title:       "Idea Generation",
		Prompt:      "What's your business idea? (Be specific!)",
		Icon:        "💡",
		Placeholder: "e.g., A mobile app connecting township chefs with customers for home-cooked meals...",
	},
	{
		Id:          "plan",
		Title:       "Business Planning",
		Prompt:      "Share details about your concept and how you'll deliver it.",
		Icon:        "📄",
		Placeholder: "Provide as much detail as you can...",
	},
	{
		Id:          "market",
		Title:       "Market Research",
		Prompt:      "Who are your customers and where do you find them?",
		Icon:        "👥",
		Placeholder: "Age, location, channels, competitors...",
	},
	{
		Id:          "marketing",
		Title:       "Marketing Strategy",
		Prompt:      "What will you say? Which channels? How often?",
		Icon:        "📈",
		Placeholder: "WhatsApp, IG, flyers, partnerships...",
	},
	{
		Id:          "finance",
		Title:       "Financial Planning",
		Prompt:      "List your costs and how you'll price. Add your income goal.",
		Icon:        "💰",
		Placeholder: "CAPEX, OPEX, price tiers, breakeven...",
	},
	{
		Id:          "launch",
		Title:       "Launch & Sales",
		Prompt:      "What's your first offer and how will you collect payment?",
		Icon:        "✅",
		Placeholder: "Offer, payment method, delivery steps...",
	},
}

// Stages returns the fixed stage sequence.
func Stages() []Stage {
	return stages
}

// StageCount is the number of wizard steps.
func StageCount() int {
	return len(stages)
}

// StageById looks up a stage by identifier.
func StageById(id string) (Stage, bool) {
	for _, s := range stages {
		if s.Id == id {
			return s, true
		}
	}
	return Stage{}, false
}
