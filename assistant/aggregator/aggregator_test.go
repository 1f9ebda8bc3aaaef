package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/puntoventa/backend/store"
)

var errDown = errors.New("data source down")

// brokenStore fails every read.
type brokenStore struct{}

func (brokenStore) GetTenant(context.Context, string) (*store.Tenant, error) { return nil, errDown }
func (brokenStore) ListProducts(context.Context, string) ([]store.Product, error) {
	return nil, errDown
}
func (brokenStore) ListCategories(context.Context, string) ([]store.Category, error) {
	return nil, errDown
}
func (brokenStore) ListWarehouses(context.Context, string) ([]store.Warehouse, error) {
	return nil, errDown
}
func (brokenStore) ListWarehouseStocks(context.Context, string) ([]store.WarehouseStock, error) {
	return nil, errDown
}
func (brokenStore) ListSuppliers(context.Context, string) ([]store.Supplier, error) {
	return nil, errDown
}
func (brokenStore) ListEmployees(context.Context, string) ([]store.Employee, error) {
	return nil, errDown
}
func (brokenStore) ListUsers(context.Context, string) ([]store.User, error) { return nil, errDown }
func (brokenStore) ListAppointments(context.Context, string) ([]store.Appointment, error) {
	return nil, errDown
}
func (brokenStore) ListRecentSales(context.Context, string, int) ([]store.Sale, error) {
	return nil, errDown
}
func (brokenStore) ListRecentPurchases(context.Context, string, int) ([]store.Purchase, error) {
	return nil, errDown
}
func (brokenStore) GetSalesStats(context.Context, string) (*store.SalesStats, error) {
	return nil, errDown
}
func (brokenStore) ListTopSellingProducts(context.Context, string, int) ([]store.TopProduct, error) {
	return nil, errDown
}
func (brokenStore) CreateSupplier(context.Context, *store.Supplier) error       { return errDown }
func (brokenStore) CreateAppointment(context.Context, *store.Appointment) error { return errDown }
func (brokenStore) CreateProduct(context.Context, *store.Product) error         { return errDown }
func (brokenStore) CreateSale(context.Context, *store.Sale) error               { return errDown }

// healthyStore embeds brokenStore and overrides the reads under test.
type healthyStore struct {
	brokenStore
}

func (healthyStore) GetTenant(context.Context, string) (*store.Tenant, error) {
	return &store.Tenant{ID: "t1", Name: "Cafetería Luna", Plan: "pro", Currency: "MXN"}, nil
}

func (healthyStore) ListProducts(context.Context, string) ([]store.Product, error) {
	return []store.Product{
		{Name: "Café", Stock: 3, MinStock: 5, Cost: decimal.NewNullDecimal(decimal.NewFromInt(18)), Price: decimal.NewFromInt(30)},
		{Name: "Pan", Stock: 40, MinStock: 10, Cost: decimal.NewNullDecimal(decimal.NewFromInt(6)), Price: decimal.NewFromFloat(12.5)},
		{Name: "Leche", Stock: -2, MinStock: 4, Price: decimal.NewFromInt(22)},
		{Name: "Azúcar", Stock: 0, MinStock: 3, Price: decimal.NewFromInt(9)},
	}, nil
}

func (healthyStore) ListWarehouses(context.Context, string) ([]store.Warehouse, error) {
	return []store.Warehouse{{ID: "w1", Name: "Bodega Centro"}}, nil
}

func (healthyStore) ListWarehouseStocks(context.Context, string) ([]store.WarehouseStock, error) {
	return []store.WarehouseStock{
		{WarehouseID: "w1", ProductID: "p1", Quantity: 7},
		{WarehouseID: "w1", ProductID: "p2", Quantity: 5},
	}, nil
}

func (healthyStore) GetSalesStats(context.Context, string) (*store.SalesStats, error) {
	return &store.SalesStats{
		Count:   8,
		Revenue: decimal.NewFromInt(400),
		ByPaymentMethod: map[string]decimal.Decimal{
			"cash": decimal.NewFromInt(300),
			"card": decimal.NewFromInt(100),
		},
	}, nil
}

func (healthyStore) ListEmployees(context.Context, string) ([]store.Employee, error) {
	return []store.Employee{
		{Name: "Ana", Department: "Ventas", Salary: decimal.NewFromInt(9000), Active: true},
		{Name: "Luis", Department: "Ventas", Salary: decimal.NewFromInt(11000), Active: true},
		{Name: "Eva", Department: "", Salary: decimal.NewFromInt(50000), Active: false},
	}, nil
}

func (healthyStore) ListAppointments(context.Context, string) ([]store.Appointment, error) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return []store.Appointment{
		{Status: "scheduled", Date: day},
		{Status: "scheduled", Date: day},
		{Status: "cancelled", Date: day.AddDate(0, 0, 1)},
	}, nil
}

func TestBuildSurvivesTotalDataSourceFailure(t *testing.T) {
	t.Parallel()

	bc := New(brokenStore{}).Build(context.Background(), "tenant-1")
	if bc == nil {
		t.Fatal("context must never be nil")
	}
	if bc.TenantID != "tenant-1" {
		t.Fatalf("unexpected tenant id %q", bc.TenantID)
	}

	counts := []int{
		bc.ProductCount, bc.WarehouseCount, bc.SalesCount, bc.PurchaseCount,
		bc.SupplierCount, bc.EmployeeCount, bc.UserCount, bc.AppointmentCount,
	}
	for i, c := range counts {
		if c != 0 {
			t.Fatalf("count %d should be zero, got %d", i, c)
		}
	}
	if !bc.StockValuation.IsZero() || !bc.SalesRevenue.IsZero() || !bc.AverageSalary.IsZero() {
		t.Fatal("derived money fields must default to zero")
	}
	if len(bc.Products) != 0 || len(bc.RecentSales) != 0 || len(bc.Suppliers) != 0 {
		t.Fatal("lists must default to empty")
	}
}

func TestBuildDerivedMetrics(t *testing.T) {
	t.Parallel()

	bc := New(healthyStore{}).Build(context.Background(), "tenant-1")

	if bc.TenantName != "Cafetería Luna" || bc.TenantPlan != "pro" {
		t.Fatalf("tenant section wrong: %+v", bc)
	}
	if bc.ProductCount != 4 {
		t.Fatalf("expected 4 products, got %d", bc.ProductCount)
	}

	if len(bc.LowStock) != 1 || bc.LowStock[0].Name != "Café" {
		t.Fatalf("low stock misclassified: %+v", bc.LowStock)
	}
	if len(bc.NegativeStock) != 1 || bc.NegativeStock[0].Name != "Leche" {
		t.Fatalf("negative stock misclassified: %+v", bc.NegativeStock)
	}

	if bc.WarehouseCount != 1 {
		t.Fatalf("expected 1 warehouse, got %d", bc.WarehouseCount)
	}
	if len(bc.WarehouseStocks) != 2 || bc.WarehouseStocks[0].Quantity != 7 {
		t.Fatalf("warehouse stocks not carried into context: %+v", bc.WarehouseStocks)
	}

	// 3*18 + 40*6 = 294; products without cost or stock contribute nothing.
	if bc.StockValuation.StringFixed(2) != "294.00" {
		t.Fatalf("expected valuation 294.00, got %s", bc.StockValuation.StringFixed(2))
	}

	if bc.PaymentBreakdown["cash"] != 75.0 || bc.PaymentBreakdown["card"] != 25.0 {
		t.Fatalf("unexpected payment breakdown: %+v", bc.PaymentBreakdown)
	}

	if bc.EmployeesByDepartment["Ventas"] != 2 || bc.EmployeesByDepartment["sin departamento"] != 1 {
		t.Fatalf("unexpected department counts: %+v", bc.EmployeesByDepartment)
	}
	// Inactive Eva is excluded: (9000+11000)/2.
	if bc.AverageSalary.StringFixed(2) != "10000.00" {
		t.Fatalf("expected average salary 10000.00, got %s", bc.AverageSalary.StringFixed(2))
	}

	if bc.AppointmentsByStatus["scheduled"] != 2 || bc.AppointmentsByStatus["cancelled"] != 1 {
		t.Fatalf("unexpected appointment status counts: %+v", bc.AppointmentsByStatus)
	}
	if bc.AppointmentsByDay["2025-03-10"] != 2 || bc.AppointmentsByDay["2025-03-11"] != 1 {
		t.Fatalf("unexpected appointment day counts: %+v", bc.AppointmentsByDay)
	}

	// Sales stats landed even though recent sales and top products errored.
	if bc.SalesCount != 8 || bc.SalesRevenue.StringFixed(2) != "400.00" {
		t.Fatalf("sales stats wrong: %d %s", bc.SalesCount, bc.SalesRevenue)
	}
	if len(bc.RecentSales) != 0 || len(bc.TopProducts) != 0 {
		t.Fatal("failed sub-reads must degrade to empty")
	}
}
