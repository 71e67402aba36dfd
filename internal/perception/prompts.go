package perception

import (
	"fmt"
	"strings"

	"github.com/malcolmbastien/Agile-Team-Profiler/internal/catalog"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/types"
)

func analysisSystemPrompt(categories []string) string {
	return fmt.Sprintf("You are an expert Agile Coach. Your task is to analyze a description of an agile team practice. "+
		"You must evaluate it against a predefined set of attributes, categorize it, and provide a concise summary of its trade-offs. "+
		"Respond only with a single, valid JSON object that adheres to the provided schema. "+
		"The scores for each attribute should range from %d (strong negative impact) to +%d (strong positive impact). "+
		"The category must be one of the following: %s. "+
		"The summary should be 2-3 sentences and should align with the identified positive and negative impacts. "+
		"List a few key pros and key cons as short phrases.",
		catalog.ScoreMin, catalog.ScoreMax, strings.Join(categories, ", "))
}

func analysisUserPrompt(cat *catalog.Catalog, description string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following agile practice description and return the full JSON analysis:\n\n")
	fmt.Fprintf(&sb, "\"%s\"\n\n", description)
	sb.WriteString("**Available Attributes for analysis:**\n")
	sb.WriteString(cat.Context())
	return sb.String()
}

const actionPlanSystemPrompt = "You are an expert Agile Coach. Your task is to analyze a team's agile practices and their aggregated scores " +
	"to provide a concise, actionable improvement plan. Respond only with a single, valid JSON value that adheres to the provided schema. " +
	"Generate 3 to 4 recommendations, each with a clear title."

// actionPlanUserPrompt lists every practice, then the total for every
// catalog attribute in catalog order (absent totals read as 0).
func actionPlanUserPrompt(cat *catalog.Catalog, practices []types.Practice, totals types.Scores) string {
	var sb strings.Builder
	sb.WriteString("Based on the following team practices and their resulting attribute scores, please provide an action plan.\n\n")

	sb.WriteString("**Team Practices:**\n")
	for _, p := range practices {
		fmt.Fprintf(&sb, "- %s\n", p.Description)
	}

	sb.WriteString("\n**Current Attribute Scores:**\n")
	for _, attr := range cat.Attributes() {
		fmt.Fprintf(&sb, "%s: %d\n", attr.Name, totals.Get(attr.ID))
	}

	sb.WriteString("\n**Attribute Meanings:**\n")
	sb.WriteString(cat.Context())
	sb.WriteString("\n\nPlease generate recommendations that are specific and would help the team address their weaknesses or build on their strengths. ")
	sb.WriteString("For each recommendation, list the attribute IDs that would be most significantly impacted.")
	return sb.String()
}

const ideaSystemPrompt = "You are an expert Agile Coach helping a team describe how they work. " +
	"Reply with plain text only: no markdown, no quotes, no preamble."

func ideaUserPrompt(categories []string) string {
	return "Write one realistic description of a practice an agile team might follow, good or bad, " +
		"in one or two sentences written from the team's point of view (for example \"We hold a 15 minute stand-up every morning.\"). " +
		"It may relate to any of these areas: " + strings.Join(categories, ", ") + "."
}
