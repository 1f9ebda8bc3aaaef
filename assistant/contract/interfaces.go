package contract

import "context"

// ModelClient performs one chat-completion round trip with the static tool
// catalogue attached.
type ModelClient interface {
	Dispatch(ctx context.Context, systemPrompt, userQuery string) (ModelOutcome, error)
}

// Executor validates and runs one proposed tool invocation for a tenant.
// Implementations never return a Go error to the caller; every failure is
// folded into ToolResult.Error as user-facing text.
type Executor interface {
	Execute(ctx context.Context, tenantID, userID string, call ToolInvocation) ToolResult
}
