package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	contractx "github.com/puntoventa/backend/assistant/contract"
	toolx "github.com/puntoventa/backend/assistant/tool"
	"github.com/puntoventa/backend/store"
)

type SaleCreated struct {
	Sale   *store.Sale     `json:"sale"`
	Total  decimal.Decimal `json:"total"`
	Change decimal.Decimal `json:"change"`
}

// createSale prices every line from the current catalog, checks payment
// coverage, and only then persists sale, items, and payments atomically.
// Nothing is written when any check fails.
func (e *Executors) createSale(ctx context.Context, tenantID, userID, raw string) contractx.ToolResult {
	args, err := toolx.ParseSaleArgs(raw)
	if err != nil {
		return failure(toolx.ToolCreateSale, err)
	}

	products, err := e.store.ListProducts(ctx, tenantID)
	if err != nil {
		return storageFailure(toolx.ToolCreateSale, "la venta", tenantID, err)
	}
	byName := make(map[string]store.Product, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = p
	}

	total := decimal.Zero
	items := make([]*store.SaleItem, 0, len(args.Items))
	for _, it := range args.Items {
		product, ok := byName[strings.ToLower(it.ProductName)]
		if !ok {
			return failure(toolx.ToolCreateSale,
				fmt.Errorf("%w: no encontré el producto %q en el catálogo", contractx.ErrBusinessRule, it.ProductName))
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, &store.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	paid := decimal.Zero
	payments := make([]*store.SalePayment, 0, len(args.Payments))
	for _, p := range args.Payments {
		amount := decimal.NewFromFloat(p.Amount)
		payments = append(payments, &store.SalePayment{
			Method: p.Method,
			Amount: amount,
		})
		paid = paid.Add(amount)
	}
	if paid.LessThan(total) {
		return failure(toolx.ToolCreateSale,
			fmt.Errorf("%w: los pagos suman %s pero el total es %s", contractx.ErrBusinessRule,
				paid.StringFixed(2), total.StringFixed(2)))
	}

	change := decimal.Zero
	sale := &store.Sale{
		TenantID:  tenantID,
		UserID:    userID,
		Ticket:    args.Ticket,
		Total:     total,
		CreatedAt: e.now().UTC(),
		Items:     items,
		Payments:  payments,
	}
	if args.CashReceived != nil {
		received := decimal.NewFromFloat(*args.CashReceived)
		if received.LessThan(total) {
			return failure(toolx.ToolCreateSale,
				fmt.Errorf("%w: el efectivo recibido %s no alcanza para el total %s", contractx.ErrBusinessRule,
					received.StringFixed(2), total.StringFixed(2)))
		}
		change = received.Sub(total)
		sale.CashReceived = decimal.NewNullDecimal(received)
		sale.Change = decimal.NewNullDecimal(change)
	}

	if err := e.store.CreateSale(ctx, sale); err != nil {
		return storageFailure(toolx.ToolCreateSale, "la venta", tenantID, err)
	}

	return contractx.ToolResult{
		Tool: toolx.ToolCreateSale,
		Result: SaleCreated{
			Sale:   sale,
			Total:  total,
			Change: change,
		},
	}
}
