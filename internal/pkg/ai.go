package pkg

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var ErrAIUnavailable = errors.New("ai provider unavailable")

// AIClient 生成式文本端口
type AIClient interface {
	// DraftMarkdown 为项目/版本生成一段 Markdown 描述草稿
	DraftMarkdown(ctx context.Context, kind, topic string) (string, error)
	// StreamChat 围绕给定正文回答问题，按块回调纯文本
	StreamChat(ctx context.Context, content, question string, fn func(chunk string) error) error
}

type OpenAIClient struct {
	client openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

const draftSystemPrompt = `You are a technical writer for a software project showcase site.
Write a concise Markdown description (headings, bullet lists allowed, no code fences around the whole answer).
Respond with Markdown only, no extra commentary.`

func (c *OpenAIClient) DraftMarkdown(ctx context.Context, kind, topic string) (string, error) {
	user := fmt.Sprintf("Write the description for a %s about: %s", kind, topic)
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(draftSystemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrAIUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}

const chatSystemPrompt = `You answer questions strictly about the release notes given below.
If the answer is not in the notes, say you don't know. Reply in plain text.

Release notes:
`

func (c *OpenAIClient) StreamChat(ctx context.Context, content, question string, fn func(chunk string) error) error {
	stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt + content),
			openai.UserMessage(question),
		},
	})
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := fn(delta); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	return nil
}
