package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"talenthub_backend/internal/models"

	"github.com/sashabaranov/go-openai"
)

const maxGeneratedSkills = 10

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateJobDescription(ctx context.Context, title, rawRequirements string) (*JobDescription, error) {
	system := "You are an HR assistant. Respond with a JSON object of the shape " +
		`{"description": string, "skills": string[]} with at most 10 skills.`
	user := fmt.Sprintf(
		"Write a professional job description for the position %q based on these raw requirements:\n\n%s",
		title, rawRequirements,
	)

	content, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var result JobDescription
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse description response: %w", err)
	}
	if len(result.Skills) > maxGeneratedSkills {
		result.Skills = result.Skills[:maxGeneratedSkills]
	}
	return &result, nil
}

func (c *OpenAIClient) ParseResume(ctx context.Context, resumeText string) (*models.ParsedResume, error) {
	system := "You are a resume parser. Respond with a JSON object of the shape " +
		`{"skills": string[], "experience": string[], "education": string[], "summary": string}.`
	user := "Extract the structured profile from this resume:\n\n" + resumeText

	content, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var result models.ParsedResume
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse resume response: %w", err)
	}
	return &result, nil
}

func (c *OpenAIClient) MatchResume(ctx context.Context, job *models.Job, parsed *models.ParsedResume) (*MatchResult, error) {
	system := "You are a recruiting assistant. Respond with a JSON object of the shape " +
		`{"score": number, "summary": string} where score is 0-100.`

	jobSkills := strings.Join(job.Skills, ", ")
	candidateSkills := strings.Join(parsed.Skills, ", ")
	user := fmt.Sprintf(
		"Rate how well this candidate matches the job.\n\nJob: %s\nRequired skills: %s\nDescription: %s\n\nCandidate skills: %s\nCandidate summary: %s",
		job.Title, jobSkills, job.Description, candidateSkills, parsed.Summary,
	)

	content, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var result MatchResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse match response: %w", err)
	}
	result.Score = clampScore(result.Score)
	return &result, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// cleanJSONResponse strips markdown code fences some models wrap around
// JSON output even in JSON mode.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}
