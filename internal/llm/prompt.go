package llm

import "strings"

// SystemPrompt is the role instruction shared by chat-based providers.
const SystemPrompt = "You are an expert HR CV analyst. Respond with JSON only. Never omit keys. Output must match the schema exactly."

const promptTemplate = `Compare the Candidate CV with the Job Description (JD).

**CANDIDATE CV TEXT:**
---
{{CV_TEXT}}
---

**JOB DESCRIPTION (JD):**
---
{{JOB_DESCRIPTION}}
---

Generate a JSON response with the following four keys ONLY:
1.  **fit_score**: (Integer 0-100) The numerical match percentage.
2.  **summary**: (String) A 3-sentence summary of the CV's alignment.
3.  **suggestions**: (List of Strings) 3-5 specific, actionable bullet points the user must update or add to their CV (e.g., "Add quantified results for your experience.").
4.  **alternative_summary**: (String) A new, best-alternative professional summary (4-6 lines) written for the CV, optimized specifically for this JD.

Output ONLY the valid JSON object. Do not include any other text or markdown formatting.`

// BuildPrompt renders the user prompt for a CV analysis request.
func BuildPrompt(input AnalyzeInput) string {
	replacer := strings.NewReplacer(
		"{{CV_TEXT}}", input.CVText,
		"{{JOB_DESCRIPTION}}", input.JobDescription,
	)
	return replacer.Replace(promptTemplate)
}
