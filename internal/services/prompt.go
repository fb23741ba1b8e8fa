package services

import "fmt"

// CompletionRequest is the prompt pair sent to the chat-completion endpoint.
type CompletionRequest struct {
	System string
	User   string
}

const matchSystemPrompt = "You are an expert HR recruiter and technical hiring manager. Return results in JSON format."

// BuildMatchRequest composes the completion request for one resume against
// one job description. The output-schema directive enumerates exactly the
// five fields of the match contract and forbids any text outside the JSON
// object; MatchClient still enforces that defensively on the reply.
func BuildMatchRequest(resumeText, jobDescription string) CompletionRequest {
	user := fmt.Sprintf(`Analyze the following Resume against the Job Description (JD).

Resume:
%s

Job Description:
%s

Return a strictly formatted JSON object with the following fields:
- score: A number from 0 to 100 representing the match fit.
- explanation: A short, 1-2 sentence justification for the score.
- edit_suggestions: An array of 2-3 actionable bullet points on how the candidate can improve their resume for this specific JD.
- candidate_name: The candidate's name extracted from the resume (default to "Unknown").
- job_title: The target job title or role extracted from the JD (default to "Position").

Do not include any other text, markdown formatting (like `+"```json"+`), or explanations outside the JSON object.`,
		resumeText, jobDescription)

	return CompletionRequest{
		System: matchSystemPrompt,
		User:   user,
	}
}
