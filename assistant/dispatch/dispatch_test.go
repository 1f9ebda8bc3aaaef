package dispatch

import (
	"errors"
	"testing"

	"github.com/openai/openai-go"

	contractx "github.com/puntoventa/backend/assistant/contract"
)

func completionWithText(text string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func completionWithCalls(calls ...openai.ChatCompletionMessageToolCall) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{ToolCalls: calls}},
		},
	}
}

func TestOutcomeFreeText(t *testing.T) {
	t.Parallel()

	out, err := outcomeFromCompletion(completionWithText("  Tienes 12 productos.  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IsToolCall() {
		t.Fatal("no tool call expected")
	}
	if out.Text != "Tienes 12 productos." {
		t.Fatalf("unexpected text: %q", out.Text)
	}
}

func TestOutcomeSingleToolCall(t *testing.T) {
	t.Parallel()

	out, err := outcomeFromCompletion(completionWithCalls(openai.ChatCompletionMessageToolCall{
		Function: openai.ChatCompletionMessageToolCallFunction{
			Name:      "create_supplier",
			Arguments: `{"name":"Norte"}`,
		},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.IsToolCall() {
		t.Fatal("expected a tool call")
	}
	if out.ToolCall.Name != "create_supplier" || out.ToolCall.RawArgs != `{"name":"Norte"}` {
		t.Fatalf("unexpected invocation: %+v", out.ToolCall)
	}
}

func TestOutcomeMultipleToolCallsHonorsFirst(t *testing.T) {
	t.Parallel()

	out, err := outcomeFromCompletion(completionWithCalls(
		openai.ChatCompletionMessageToolCall{
			Function: openai.ChatCompletionMessageToolCallFunction{Name: "create_supplier", Arguments: `{}`},
		},
		openai.ChatCompletionMessageToolCall{
			Function: openai.ChatCompletionMessageToolCallFunction{Name: "create_sale", Arguments: `{}`},
		},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ToolCall == nil || out.ToolCall.Name != "create_supplier" {
		t.Fatalf("expected first call only, got %+v", out.ToolCall)
	}
}

func TestOutcomeRejectsEmptyCompletion(t *testing.T) {
	t.Parallel()

	if _, err := outcomeFromCompletion(nil); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected model invoke error, got %v", err)
	}
	if _, err := outcomeFromCompletion(&openai.ChatCompletion{}); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected model invoke error for no choices, got %v", err)
	}
	if _, err := outcomeFromCompletion(completionWithCalls(openai.ChatCompletionMessageToolCall{
		Function: openai.ChatCompletionMessageToolCallFunction{Name: "   "},
	})); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("expected model invoke error for unnamed tool, got %v", err)
	}
}
