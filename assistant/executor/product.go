package executor

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/puntoventa/backend/assistant/contract"
	toolx "github.com/puntoventa/backend/assistant/tool"
	"github.com/puntoventa/backend/store"
)

const (
	defaultMinStock = 5
	defaultUnit     = "pieza"
	skuPrefixLen    = 3
	skuSuffixLen    = 6
)

type ProductCreated struct {
	Product *store.Product      `json:"product"`
	Margin  decimal.NullDecimal `json:"margin,omitempty"` // percent over price, only when cost was given
}

func (e *Executors) createProduct(ctx context.Context, tenantID, raw string) contractx.ToolResult {
	args, err := toolx.ParseProductArgs(raw)
	if err != nil {
		return failure(toolx.ToolCreateProduct, err)
	}

	product := &store.Product{
		TenantID: tenantID,
		Name:     args.Name,
		SKU:      args.SKU,
		Price:    decimal.NewFromFloat(*args.Price),
		Stock:    0,
		MinStock: defaultMinStock,
		Unit:     defaultUnit,
		Status:   "active",
	}
	if product.SKU == "" {
		product.SKU = generateSKU(args.Name, e.now())
	}
	if args.Cost != nil {
		product.Cost = decimal.NewNullDecimal(decimal.NewFromFloat(*args.Cost))
	}
	if args.Stock != nil {
		product.Stock = *args.Stock
	}
	if args.MinStock != nil {
		product.MinStock = *args.MinStock
	}
	if args.Unit != "" {
		product.Unit = args.Unit
	}
	product.CreatedAt = e.now().UTC()

	if args.Category != "" {
		product.CategoryID = e.resolveCategory(ctx, tenantID, args.Category)
	}

	if err := e.store.CreateProduct(ctx, product); err != nil {
		return storageFailure(toolx.ToolCreateProduct, "el producto", tenantID, err)
	}

	result := ProductCreated{Product: product}
	if product.Cost.Valid && product.Price.IsPositive() {
		margin := product.Price.Sub(product.Cost.Decimal).
			Div(product.Price).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		result.Margin = decimal.NewNullDecimal(margin)
	}

	return contractx.ToolResult{
		Tool:   toolx.ToolCreateProduct,
		Result: result,
	}
}

// resolveCategory matches an existing category case-insensitively. A missing
// category is never created here; changing tenant data beyond the requested
// product needs explicit confirmation.
func (e *Executors) resolveCategory(ctx context.Context, tenantID, name string) *string {
	categories, err := e.store.ListCategories(ctx, tenantID)
	if err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).
			Msg("category lookup failed, product created without category")
		return nil
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			id := c.ID
			return &id
		}
	}
	return nil
}

// generateSKU derives a SKU from the product name plus the trailing digits of
// the current Unix millisecond clock. Same name and same millisecond give the
// same SKU; a different millisecond gives a different one.
func generateSKU(name string, now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > skuSuffixLen {
		millis = millis[len(millis)-skuSuffixLen:]
	}
	return skuPrefix(name) + "-" + millis
}

func skuPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= skuPrefixLen {
			break
		}
	}
	if b.Len() == 0 {
		return "PRD"
	}
	return b.String()
}
