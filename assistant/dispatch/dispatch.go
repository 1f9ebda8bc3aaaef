package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/puntoventa/backend/assistant/contract"
	"github.com/puntoventa/backend/assistant/llm"
	toolx "github.com/puntoventa/backend/assistant/tool"
)

// Client performs the single chat-completion round trip per query. The tool
// catalogue is attached with tool_choice=auto so the model decides between a
// free-text answer and one tool invocation.
type Client struct {
	api   *openai.Client
	cfg   llm.Config
	tools []openai.ChatCompletionToolParam
}

var _ contractx.ModelClient = (*Client)(nil)

func New(api *openai.Client, cfg llm.Config) *Client {
	return &Client{
		api:   api,
		cfg:   cfg,
		tools: toolx.Catalog(),
	}
}

func (c *Client) Dispatch(ctx context.Context, systemPrompt, userQuery string) (contractx.ModelOutcome, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.ModelName()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userQuery),
		},
		Tools:       c.tools,
		ToolChoice:  openai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openai.String("auto")},
		MaxTokens:   openai.Int(int64(c.cfg.MaxCompletionToken)),
		Temperature: openai.Float(float64(c.cfg.Temperature)),
	})
	if err != nil {
		return contractx.ModelOutcome{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return outcomeFromCompletion(resp)
}

// outcomeFromCompletion maps the raw completion to a ModelOutcome. When the
// model proposes several tool calls in one turn only the first is honored;
// the protocol here is at most one state change per query.
func outcomeFromCompletion(resp *openai.ChatCompletion) (contractx.ModelOutcome, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return contractx.ModelOutcome{}, fmt.Errorf("%w: empty completion", contractx.ErrModelInvoke)
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return contractx.ModelOutcome{Text: strings.TrimSpace(msg.Content)}, nil
	}

	if dropped := len(msg.ToolCalls) - 1; dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("model proposed multiple tool calls, honoring only the first")
	}

	call := msg.ToolCalls[0]
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return contractx.ModelOutcome{}, fmt.Errorf("%w: tool call without a name", contractx.ErrModelInvoke)
	}

	return contractx.ModelOutcome{
		ToolCall: &contractx.ToolInvocation{
			Name:    name,
			RawArgs: call.Function.Arguments,
		},
	}, nil
}
