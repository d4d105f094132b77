// Package openai implements the vlm.Extractor contract against an
// OpenAI-compatible chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jkassemi/ttb-labeling/vlm"
)

const (
	defaultModel = "gpt-4o-mini"
	maxTokens    = 512
)

var _ vlm.Extractor = (*Extractor)(nil)

type Extractor struct {
	client openai.Client
	model  string
}

type config struct {
	model   string
	options []option.RequestOption
}

type Option func(*config)

func WithModel(model string) Option {
	return func(c *config) {
		c.model = model
	}
}

func WithBaseURL(url string) Option {
	return func(c *config) {
		c.options = append(c.options, option.WithBaseURL(url))
	}
}

func WithAPIKey(key string) Option {
	return func(c *config) {
		c.options = append(c.options, option.WithAPIKey(key))
	}
}

// New builds an extractor talking to the OpenAI API. The API key is read
// from OPENAI_API_KEY unless set through WithAPIKey.
func New(options ...Option) *Extractor {
	cfg := &config{model: defaultModel}
	for _, opt := range options {
		opt(cfg)
	}
	return &Extractor{
		client: openai.NewClient(cfg.options...),
		model:  cfg.model,
	}
}

// Extract sends the label images as data URLs with the field instruction
// and parses the model's JSON response.
func (e *Extractor) Extract(ctx context.Context, images []image.Image) (vlm.Result, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(images)+1)
	for i, img := range images {
		url, err := dataURL(img)
		if err != nil {
			return vlm.Result{}, fmt.Errorf("encode image %d: %w", i, err)
		}
		parts = append(parts, openai.ImageContentPart(
			openai.ChatCompletionContentPartImageImageURLParam{URL: url},
		))
	}
	parts = append(parts, openai.TextContentPart(vlm.Prompt()))

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return vlm.Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return vlm.Result{}, fmt.Errorf("chat completion returned no choices")
	}
	return vlm.ParseResponse(completion.Choices[0].Message.Content)
}

func dataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
