package executor

import (
	"context"

	contractx "github.com/puntoventa/backend/assistant/contract"
	toolx "github.com/puntoventa/backend/assistant/tool"
	"github.com/puntoventa/backend/store"
)

type SupplierCreated struct {
	Supplier *store.Supplier `json:"supplier"`
}

func (e *Executors) createSupplier(ctx context.Context, tenantID, raw string) contractx.ToolResult {
	args, err := toolx.ParseSupplierArgs(raw)
	if err != nil {
		return failure(toolx.ToolCreateSupplier, err)
	}

	supplier := &store.Supplier{
		TenantID:  tenantID,
		Name:      args.Name,
		Email:     args.Email,
		Phone:     args.Phone,
		Address:   args.Address,
		CreatedAt: e.now().UTC(),
	}
	if err := e.store.CreateSupplier(ctx, supplier); err != nil {
		return storageFailure(toolx.ToolCreateSupplier, "el proveedor", tenantID, err)
	}

	return contractx.ToolResult{
		Tool:   toolx.ToolCreateSupplier,
		Result: SupplierCreated{Supplier: supplier},
	}
}
