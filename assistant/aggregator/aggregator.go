package aggregator

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	contractx "github.com/puntoventa/backend/assistant/contract"
	"github.com/puntoventa/backend/store"
)

const (
	recentSalesLimit     = 10
	recentPurchasesLimit = 10
	topProductsLimit     = 5
)

// Aggregator builds the per-request BusinessContext. Every sub-read is
// degraded independently: one failing data source zeroes its own section and
// nothing else, so the assistant answers with partial knowledge instead of
// erroring out.
type Aggregator struct {
	store store.Store
}

func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Build never fails. In the worst case it returns a minimal zeroed context.
func (a *Aggregator) Build(ctx context.Context, tenantID string) (bc *contractx.BusinessContext) {
	bc = &contractx.BusinessContext{TenantID: tenantID}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("tenant_id", tenantID).Any("panic", r).
				Msg("business context build panicked, returning minimal context")
			bc = &contractx.BusinessContext{TenantID: tenantID}
		}
	}()

	a.fillTenant(ctx, tenantID, bc)
	a.fillProducts(ctx, tenantID, bc)
	a.fillWarehouses(ctx, tenantID, bc)
	a.fillSales(ctx, tenantID, bc)
	a.fillPurchases(ctx, tenantID, bc)
	a.fillSuppliers(ctx, tenantID, bc)
	a.fillEmployees(ctx, tenantID, bc)
	a.fillUsers(ctx, tenantID, bc)
	a.fillAppointments(ctx, tenantID, bc)

	return bc
}

func (a *Aggregator) fillTenant(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	tenant, err := a.store.GetTenant(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "tenant", err)
		return
	}
	bc.TenantName = tenant.Name
	bc.TenantPlan = tenant.Plan
	bc.Currency = tenant.Currency
}

func (a *Aggregator) fillProducts(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	products, err := a.store.ListProducts(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "products", err)
		return
	}

	bc.ProductCount = len(products)
	bc.Products = products
	bc.LowStock, bc.NegativeStock = classifyStock(products)
	bc.StockValuation = stockValuation(products)

	categories, err := a.store.ListCategories(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "categories", err)
		return
	}
	bc.Categories = categories
}

func (a *Aggregator) fillWarehouses(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	warehouses, err := a.store.ListWarehouses(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "warehouses", err)
		return
	}
	bc.WarehouseCount = len(warehouses)
	bc.Warehouses = warehouses

	stocks, err := a.store.ListWarehouseStocks(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "warehouse_stocks", err)
		return
	}
	bc.WarehouseStocks = stocks
}

func (a *Aggregator) fillSales(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	stats, err := a.store.GetSalesStats(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "sales_stats", err)
	} else {
		bc.SalesCount = stats.Count
		bc.SalesRevenue = stats.Revenue
		bc.PaymentBreakdown = paymentBreakdown(stats.ByPaymentMethod)
	}

	recent, err := a.store.ListRecentSales(ctx, tenantID, recentSalesLimit)
	if err != nil {
		degraded(tenantID, "recent_sales", err)
	} else {
		bc.RecentSales = recent
	}

	top, err := a.store.ListTopSellingProducts(ctx, tenantID, topProductsLimit)
	if err != nil {
		degraded(tenantID, "top_products", err)
	} else {
		bc.TopProducts = top
	}
}

func (a *Aggregator) fillPurchases(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	purchases, err := a.store.ListRecentPurchases(ctx, tenantID, recentPurchasesLimit)
	if err != nil {
		degraded(tenantID, "purchases", err)
		return
	}
	bc.PurchaseCount = len(purchases)
	bc.RecentPurchases = purchases
}

func (a *Aggregator) fillSuppliers(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	suppliers, err := a.store.ListSuppliers(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "suppliers", err)
		return
	}
	bc.SupplierCount = len(suppliers)
	bc.Suppliers = suppliers
}

func (a *Aggregator) fillEmployees(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	employees, err := a.store.ListEmployees(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "employees", err)
		return
	}
	bc.EmployeeCount = len(employees)
	bc.EmployeesByDepartment = employeesByDepartment(employees)
	bc.AverageSalary = averageActiveSalary(employees)
}

func (a *Aggregator) fillUsers(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	users, err := a.store.ListUsers(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "users", err)
		return
	}
	bc.UserCount = len(users)
}

func (a *Aggregator) fillAppointments(ctx context.Context, tenantID string, bc *contractx.BusinessContext) {
	appointments, err := a.store.ListAppointments(ctx, tenantID)
	if err != nil {
		degraded(tenantID, "appointments", err)
		return
	}
	bc.AppointmentCount = len(appointments)
	bc.Appointments = appointments
	bc.AppointmentsByStatus = appointmentsByStatus(appointments)
	bc.AppointmentsByDay = appointmentsByDay(appointments)
}

func degraded(tenantID, section string, err error) {
	log.Warn().Err(err).Str("tenant_id", tenantID).Str("section", section).
		Msg("business context section degraded to defaults")
}

func classifyStock(products []store.Product) (low, negative []store.Product) {
	for _, p := range products {
		switch {
		case p.Stock < 0:
			negative = append(negative, p)
		case p.Stock > 0 && p.Stock <= p.MinStock:
			low = append(low, p)
		}
	}
	return low, negative
}

func stockValuation(products []store.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		if !p.Cost.Valid || p.Stock <= 0 {
			continue
		}
		total = total.Add(p.Cost.Decimal.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

func paymentBreakdown(byMethod map[string]decimal.Decimal) map[string]float64 {
	total := decimal.Zero
	for _, amount := range byMethod {
		total = total.Add(amount)
	}
	if total.IsZero() {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	breakdown := make(map[string]float64, len(byMethod))
	for method, amount := range byMethod {
		pct, _ := amount.Mul(hundred).Div(total).Round(2).Float64()
		breakdown[method] = pct
	}
	return breakdown
}

func employeesByDepartment(employees []store.Employee) map[string]int {
	if len(employees) == 0 {
		return nil
	}
	byDept := make(map[string]int)
	for _, e := range employees {
		dept := strings.TrimSpace(e.Department)
		if dept == "" {
			dept = "sin departamento"
		}
		byDept[dept]++
	}
	return byDept
}

func averageActiveSalary(employees []store.Employee) decimal.Decimal {
	sum := decimal.Zero
	active := 0
	for _, e := range employees {
		if !e.Active {
			continue
		}
		sum = sum.Add(e.Salary)
		active++
	}
	if active == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(active))).Round(2)
}

func appointmentsByStatus(appointments []store.Appointment) map[string]int {
	if len(appointments) == 0 {
		return nil
	}
	byStatus := make(map[string]int)
	for _, ap := range appointments {
		byStatus[ap.Status]++
	}
	return byStatus
}

func appointmentsByDay(appointments []store.Appointment) map[string]int {
	if len(appointments) == 0 {
		return nil
	}
	byDay := make(map[string]int)
	for _, ap := range appointments {
		byDay[ap.Date.UTC().Format("2006-01-02")]++
	}
	return byDay
}
