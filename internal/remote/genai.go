//  Copyright (c) 2025 dingodb.com, Inc. All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http:www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package remote

import (
	"context"
	"fmt"
	"strings"

	"repolens/pkg/config"
	myerr "repolens/pkg/error"
	"repolens/pkg/util"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const summaryInstruction = `Based on the provided content, create a concise, bullet-point summary of the tech stack and technologies used in this project. Include only information that is explicitly mentioned or can be clearly inferred from the content provided. Omit any categories not addressed in the content. Do not include any project names, repository names, or other identifying information.

Use the following format, including only relevant sections:

• Main programming languages:
• Frameworks and libraries:
• Databases or storage solutions:
• DevOps tools or cloud services:
• Notable technical components or architectural choices:
`

// GenaiClient is both the summarizer and the embedder.
type GenaiClient struct {
	client         *genai.Client
	summaryModel   string
	embeddingModel string
	policy         util.RetryPolicy
}

func NewGenaiClient(config *config.Config) (*GenaiClient, func(), error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(config.Genai.ApiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("create genai client: %w", err)
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			zap.S().Warnf("close genai client err: %v", err)
		}
	}
	return &GenaiClient{
		client:         client,
		summaryModel:   config.Genai.SummaryModel,
		embeddingModel: config.Genai.EmbeddingModel,
		policy:         util.NewRetryPolicy(config),
	}, cleanup, nil
}

func BuildSummaryPrompt(readme string, languages []string) string {
	var b strings.Builder
	b.WriteString(summaryInstruction)
	b.WriteString("\nREADME:\n")
	b.WriteString(readme)
	b.WriteString("\n\nLanguages used: ")
	b.WriteString(strings.Join(languages, ", "))
	b.WriteString("\n\nProvide only the bullet-point summary, with no additional text before or after.")
	return b.String()
}

func (g *GenaiClient) Summarize(ctx context.Context, readme string, languages []string) (string, error) {
	prompt := BuildSummaryPrompt(readme, languages)
	model := g.client.GenerativeModel(g.summaryModel)
	var summary string
	err := util.Retry(ctx, g.policy, func() error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return fmt.Errorf("genai generate: %w", err)
		}
		summary, err = SummaryText(resp)
		return err
	})
	return summary, err
}

// SummaryText accepts only a final, text-only candidate.
func SummaryText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", myerr.ErrUnexpectedResponse
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok {
			return "", fmt.Errorf("%w: part %T", myerr.ErrUnexpectedResponse, part)
		}
		text.WriteString(string(txt))
	}
	summary := strings.TrimSpace(text.String())
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", myerr.ErrUnexpectedResponse)
	}
	return summary, nil
}

func (g *GenaiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.embeddingModel)
	var values []float32
	err := util.Retry(ctx, g.policy, func() error {
		res, err := em.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return fmt.Errorf("genai embed: %w", err)
		}
		if res.Embedding == nil || len(res.Embedding.Values) == 0 {
			return fmt.Errorf("%w: no embedding values", myerr.ErrUnexpectedResponse)
		}
		values = res.Embedding.Values
		return nil
	})
	return values, err
}
