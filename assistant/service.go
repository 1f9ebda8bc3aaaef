// Package assistant implements the natural-language business-command
// pipeline: snapshot the tenant's business state, ask the model, and either
// relay its answer or validate and execute the one tool call it proposed.
package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/puntoventa/backend/assistant/aggregator"
	contractx "github.com/puntoventa/backend/assistant/contract"
	"github.com/puntoventa/backend/assistant/executor"
	"github.com/puntoventa/backend/assistant/prompt"
	"github.com/puntoventa/backend/assistant/render"
	"github.com/puntoventa/backend/store"
)

type Service struct {
	aggregator *aggregator.Aggregator
	model      contractx.ModelClient
	executors  contractx.Executor
}

func NewService(s store.Store, model contractx.ModelClient) *Service {
	return &Service{
		aggregator: aggregator.New(s),
		model:      model,
		executors:  executor.New(s),
	}
}

// ProcessUserQuery handles one stateless query for one tenant. It always
// returns a renderable string; no error and no panic crosses this boundary.
// There are no retries: a failed dispatch or execution terminates the query
// and the caller may simply ask again.
func (s *Service) ProcessUserQuery(ctx context.Context, query, tenantID, userID string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tenant_id", tenantID).Any("panic", r).
				Msg("query pipeline panicked")
			reply = render.Apology
		}
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return "No recibí ninguna consulta. ¿En qué te ayudo?"
	}

	bc := s.aggregator.Build(ctx, tenantID)
	systemPrompt := prompt.Compose(bc)

	outcome, err := s.model.Dispatch(ctx, systemPrompt, query)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", tenantID).Msg("model dispatch failed")
		return render.Apology
	}

	if !outcome.IsToolCall() {
		if outcome.Text == "" {
			log.Warn().Str("tenant_id", tenantID).Msg("model returned neither text nor tool call")
			return render.Apology
		}
		return outcome.Text
	}

	log.Info().Str("tenant_id", tenantID).Str("tool", outcome.ToolCall.Name).
		Msg("executing tool invocation")
	result := s.executors.Execute(ctx, tenantID, userID, *outcome.ToolCall)
	return render.Render(result)
}
