package checklist

import (
	"fmt"
	"regexp"
	"strings"
)

// Item is a single actionable entry in the mentor checklist.
type Item struct {
	Id      string `json:"id"`
	Text    string `json:"text"`
	Done    bool   `json:"done"`
	Advice  string `json:"advice"`
	Loading bool   `json:"loading"`
}

const (
	// MaxAiItems caps how many model-derived segments survive before padding.
	MaxAiItems = 6
	// MaxItems caps the final checklist length.
	MaxItems = 8
)

// baseline is the canonical startup task list. It is never persisted; it is
// the fallback checklist on error and the filler source when the model
// produces fewer than MaxItems actionable lines.
var baseline = []Item{
	{Id: "register", Text: "Register your business legally"},
	{Id: "tax", Text: "Secure tax ID and tax clearance certificate"},
	{Id: "bank", Text: "Open a business bank account"},
	{Id: "plan", Text: "Draft a lean business plan with pricing and costs"},
	{Id: "funding", Text: "List funding options (grants, loans, incubators)"},
	{Id: "branding", Text: "Create a simple brand kit (logo, colors, tagline)"},
	{Id: "bookkeeping", Text: "Set up bookkeeping and invoice/expense tracking"},
}

// Baseline returns a fresh copy of the canonical checklist so callers can
// mutate done/advice flags without touching the template.
func Baseline() []Item {
	out := make([]Item, len(baseline))
	copy(out, baseline)
	return out
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Synthesize turns free-form mentor text into a bounded, deduplicated action
// list. Model output arrives with unpredictable bullet styles and occasional
// repetition; the result is always 1..MaxItems items with unique ids.
//
// Every '-' is a split point, not just line-leading bullets, and the baseline
// padding suppresses an item when any kept segment contains the item's first
// word (case-insensitive). Both quirks are load-bearing for downstream
// clients and covered by tests; do not "fix" them here.
func Synthesize(guidanceText string) []Item {
	segments := splitSegments(guidanceText)

	deduped := make([]string, 0, len(segments))
	for _, seg := range segments {
		kept := false
		for _, d := range deduped {
			if strings.EqualFold(d, seg) {
				kept = true
				break
			}
		}
		if !kept {
			deduped = append(deduped, seg)
		}
	}

	merged := deduped
	if len(merged) > MaxAiItems {
		merged = merged[:MaxAiItems]
	}

	for _, item := range baseline {
		firstWord := strings.ToLower(strings.Split(item.Text, " ")[0])
		covered := false
		for _, m := range merged {
			if strings.Contains(strings.ToLower(m), firstWord) {
				covered = true
				break
			}
		}
		if !covered {
			merged = append(merged, item.Text)
		}
	}

	if len(merged) > MaxItems {
		merged = merged[:MaxItems]
	}

	items := make([]Item, len(merged))
	for i, text := range merged {
		items[i] = Item{Id: deriveId(i, text), Text: text}
	}
	return items
}

// splitSegments breaks text on newlines and on the bullet markers '•' and
// '-', trimming each piece and dropping empties.
func splitSegments(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '•' || r == '-'
	})
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// deriveId builds a stable identifier from the item's position and a short
// prefix of its text. The positional index keeps ids collision-free even when
// two items share a prefix.
func deriveId(index int, text string) string {
	prefix := text
	if runes := []rune(text); len(runes) > 12 {
		prefix = string(runes[:12])
	}
	return fmt.Sprintf("ai-%d-%s", index, whitespaceRuns.ReplaceAllString(prefix, "-"))
}
