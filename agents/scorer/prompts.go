/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"chainguard.dev/transcriptscore/agents/promptbuilder"
)

// scoringPrompt is the prompt for grading one transcript against a rubric.
var scoringPrompt = promptbuilder.MustNewPrompt(`<task>
You are grading a spoken-presentation transcript against a rubric.
Score the transcript on each rubric criterion independently.
</task>

<rubric>
{{criteria}}
</rubric>

{{transcript}}

<instructions>
1. Read the entire transcript before scoring anything
2. Score each criterion on its own scale, from 0 to that criterion's max_score
3. Ground every score in the transcript: cite what the speaker actually said or failed to say
4. Use this calibration for each criterion's scale:

SCORING CALIBRATION (shown for a max_score of 10, scale proportionally):
- 9-10 (Excellent): The transcript fully demonstrates the criterion with no meaningful gaps.
  * Justification: Name the specific strengths that earn the top band.
- 7-8 (Good): The criterion is met well, with minor lapses.
  * Justification: Acknowledge the strengths, then name the lapses that prevent the top band.
- 5-6 (Adequate): The criterion is partially met, with notable gaps.
  * Justification: Balance what works against the specific gaps.
- 3-4 (Weak): The criterion is mostly unmet, though some correct elements exist.
  * Justification: Identify the major failures while noting any correct aspects.
- 0-2 (Failing): The transcript fails the criterion outright.
  * Justification: Explain the fundamental failure.

5. Score every criterion in the rubric exactly once; never invent criteria
6. Write overall_feedback as two to four sentences: the transcript's main strength, its main weakness, and the single most valuable improvement
</instructions>

<output_format>
Return your grading as a JSON object with this structure:
{
  "scores": [
    {
      "criterion": "the rubric criterion name, exactly as given",
      "score": 0 to that criterion's max_score,
      "justification": "evidence-based explanation of the score"
    }
  ],
  "overall_feedback": "prose assessment of the transcript as a whole"
}

IMPORTANT: The scores array must contain exactly one entry per rubric criterion, using the criterion names exactly as given.
</output_format>

Respond with only the JSON object, no additional text.`)

// Bind implements promptbuilder.Bindable for Request
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	prompt, err := prompt.BindJSON("criteria", r.Criteria)
	if err != nil {
		return nil, err
	}

	return prompt.BindXML("transcript", struct {
		XMLName struct{} `xml:"transcript"`
		Content string   `xml:",chardata"`
	}{
		Content: r.Transcript,
	})
}
