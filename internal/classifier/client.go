// Package classifier wraps the remote language model that resolves
// ambiguous pairs the deterministic detectors couldn't classify.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/shobhit-87labs/opentell/internal/types"
)

const (
	assistantMaxChars = 500
	developerMaxChars = 500
	errorMaxChars     = 300

	requestsPerSecond = 2
	burstSize         = 4
	maxRetries        = 3
	requestTimeout    = 20 * time.Second
)

// Rejection classes: outcomes the classifier can return that never become
// a stored Learning.
const (
	ClassSituational  = "SITUATIONAL"
	ClassFactual      = "FACTUAL"
	ClassContinuation = "CONTINUATION"
	classError        = "ERROR"
)

// Result is the classifier's structured judgment of one pair.
type Result struct {
	Classification string
	Learning       string
	Scope          types.Scope
	Certainty      types.Certainty
	Area           types.Area
	Usage          Usage
}

// Usage carries the token accounting the caller needs for cost tracking.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// IsLearning reports whether the result names a class that should be
// persisted as a Learning.
func (r Result) IsLearning() bool {
	c := types.Classification(r.Classification)
	return c.Valid() && r.Learning != ""
}

// ToSignal converts a learning-bearing result into a candidate signal.
// Callers must check IsLearning first.
func (r Result) ToSignal(pair types.Pair) types.Signal {
	area := r.Area
	if area == "" {
		area = types.AreaGeneral
	}
	scope := r.Scope
	if scope == "" {
		scope = types.ScopeGlobal
	}
	return types.Signal{
		Text:             r.Learning,
		Confidence:       types.StartingConfidence(types.Classification(r.Classification), r.Certainty),
		Classification:   types.Classification(r.Classification),
		Scope:            scope,
		Area:             area,
		DetectionMethod:  types.DetectionLLM,
		AssistantExcerpt: pair.AssistantText,
		DeveloperExcerpt: pair.DeveloperText,
	}
}

// messageClient is the seam realClient and test doubles both satisfy —
// swapping it out never requires touching Classify's retry or prompt logic.
type messageClient interface {
	New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// realClient wraps the Anthropic SDK's message service behind messageClient.
type realClient struct {
	messages *anthropic.MessageService
}

func (r *realClient) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return r.messages.New(ctx, params)
}

// Client classifies ambiguous pairs against a remote model, rate limited
// and retried so a burst of turn-stops never floods the API.
type Client struct {
	client  messageClient
	model   string
	limiter *rate.Limiter
}

// New constructs a Client using the real Anthropic API.
func New(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	sdk := anthropic.NewClient(opts...)
	return &Client{
		client:  &realClient{messages: &sdk.Messages},
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// newWithClient is used by tests to substitute a fake messageClient.
func newWithClient(c messageClient, model string) *Client {
	return &Client{client: c, model: model, limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)}
}

// Classify sends pair (with optional error/tool context) to the model and
// parses its JSON verdict. A malformed or unparseable response is
// returned as a classError result rather than propagated — a classifier
// hiccup must never fail the hook it's called from.
func (c *Client) Classify(ctx context.Context, pair types.Pair, errorContext, toolContext string) (Result, error) {
	prompt := FormatClassifyPrompt(
		truncate(pair.AssistantText, assistantMaxChars),
		truncate(pair.DeveloperText, developerMaxChars),
		truncate(errorContext, errorMaxChars),
		toolContext,
	)

	text, usage, err := c.Generate(ctx, FormatSystemPrompt(), prompt)
	if err != nil {
		return Result{}, fmt.Errorf("classify request: %w", err)
	}

	result, parseErr := parseResult(text)
	if parseErr != nil {
		return Result{Classification: classError}, nil
	}
	result.Usage = usage
	return result, nil
}

// Generate sends one system/user prompt pair to the model and returns the
// concatenated text of the response. It is the shared transport behind
// Classify and is exported so the consolidator and profile synthesizer —
// which need free-form prose rather than a structured verdict — can reuse
// the same rate limiting and retry policy without duplicating it.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, Usage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", Usage{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	message, err := c.callWithRetry(reqCtx, systemPrompt, userPrompt)
	if err != nil {
		return "", Usage{}, err
	}

	usage := Usage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}
	return extractText(message), usage, nil
}

// callWithRetry retries transient failures (rate limits, server errors)
// with exponential backoff; a context cancellation aborts immediately.
func (c *Client) callWithRetry(ctx context.Context, systemPrompt, userPrompt string) (*anthropic.Message, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)

	var message *anthropic.Message
	err := backoff.Retry(func() error {
		msg, err := c.client.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: 512,
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
			},
		})
		if err != nil {
			return err
		}
		message = msg
		return nil
	}, policy)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func extractText(message *anthropic.Message) string {
	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}

// rawResult mirrors the JSON shape the system prompt requests.
type rawResult struct {
	Classification string `json:"classification"`
	Learning       string `json:"learning"`
	Scope          string `json:"scope"`
	Certainty      string `json:"certainty"`
	Area           string `json:"area"`
}

func parseResult(text string) (Result, error) {
	jsonStr := extractJSONObject(text)
	if jsonStr == "" {
		return Result{}, fmt.Errorf("no JSON object in response")
	}
	var raw rawResult
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return Result{}, fmt.Errorf("unmarshal classifier response: %w", err)
	}
	if raw.Classification == "" {
		return Result{}, fmt.Errorf("missing classification field")
	}
	return Result{
		Classification: raw.Classification,
		Learning:       raw.Learning,
		Scope:          types.Scope(raw.Scope),
		Certainty:      types.Certainty(raw.Certainty),
		Area:           types.Area(raw.Area),
	}, nil
}

// extractJSONObject returns the first balanced {...} span in text.
func extractJSONObject(text string) string {
	start := -1
	depth := 0
	for i, r := range text {
		switch r {
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
