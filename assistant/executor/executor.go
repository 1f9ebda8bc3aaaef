package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/puntoventa/backend/assistant/contract"
	toolx "github.com/puntoventa/backend/assistant/tool"
	"github.com/puntoventa/backend/store"
)

// Executors runs validated tool invocations against the business store. This
// is the only place in the subsystem allowed to mutate persistent state, and
// each run performs at most one logical write.
type Executors struct {
	store store.Store
	now   func() time.Time
}

var _ contractx.Executor = (*Executors)(nil)

func New(s store.Store) *Executors {
	return &Executors{
		store: s,
		now:   time.Now,
	}
}

func (e *Executors) Execute(ctx context.Context, tenantID, userID string, call contractx.ToolInvocation) contractx.ToolResult {
	switch call.Name {
	case toolx.ToolCreateSupplier:
		return e.createSupplier(ctx, tenantID, call.RawArgs)
	case toolx.ToolCreateAppointment:
		return e.createAppointment(ctx, tenantID, call.RawArgs)
	case toolx.ToolCreateProduct:
		return e.createProduct(ctx, tenantID, call.RawArgs)
	case toolx.ToolCreateSale:
		return e.createSale(ctx, tenantID, userID, call.RawArgs)
	default:
		log.Warn().Str("tool", call.Name).Str("tenant_id", tenantID).Msg("model requested unknown tool")
		return contractx.ToolResult{
			Tool:  call.Name,
			Error: fmt.Sprintf("no tengo una operación llamada %q", call.Name),
		}
	}
}

// failure folds a validation or business-rule error into a user-facing result.
func failure(tool string, err error) contractx.ToolResult {
	return contractx.ToolResult{
		Tool:  tool,
		Error: reason(err),
	}
}

// storageFailure logs the real cause for operators and hands the user a
// generic message; internals never leak into the reply.
func storageFailure(tool, entity, tenantID string, err error) contractx.ToolResult {
	log.Error().Err(err).Str("tool", tool).Str("tenant_id", tenantID).
		Msg("storage write failed")
	return contractx.ToolResult{
		Tool:  tool,
		Error: fmt.Sprintf("error interno al crear %s, intenta de nuevo", entity),
	}
}

// reason strips the sentinel prefix so only the user-facing text remains.
func reason(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{contractx.ErrValidation, contractx.ErrBusinessRule} {
		if prefix := sentinel.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}
