package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrEmptySale      = errors.New("sale has no items")
)

// Store is the persistence contract consumed by the assistant. Every method is
// scoped to one tenant; implementations must never leak rows across tenants.
type Store interface {
	GetTenant(ctx context.Context, tenantID string) (*Tenant, error)
	ListProducts(ctx context.Context, tenantID string) ([]Product, error)
	ListCategories(ctx context.Context, tenantID string) ([]Category, error)
	ListWarehouses(ctx context.Context, tenantID string) ([]Warehouse, error)
	ListWarehouseStocks(ctx context.Context, tenantID string) ([]WarehouseStock, error)
	ListSuppliers(ctx context.Context, tenantID string) ([]Supplier, error)
	ListEmployees(ctx context.Context, tenantID string) ([]Employee, error)
	ListUsers(ctx context.Context, tenantID string) ([]User, error)
	ListAppointments(ctx context.Context, tenantID string) ([]Appointment, error)
	ListRecentSales(ctx context.Context, tenantID string, limit int) ([]Sale, error)
	ListRecentPurchases(ctx context.Context, tenantID string, limit int) ([]Purchase, error)
	GetSalesStats(ctx context.Context, tenantID string) (*SalesStats, error)
	ListTopSellingProducts(ctx context.Context, tenantID string, limit int) ([]TopProduct, error)

	CreateSupplier(ctx context.Context, supplier *Supplier) error
	CreateAppointment(ctx context.Context, appointment *Appointment) error
	CreateProduct(ctx context.Context, product *Product) error
	CreateSale(ctx context.Context, sale *Sale) error
}

type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"5s"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"8"`
}

// PostgresStore implements Store on top of bun/Postgres.
type PostgresStore struct {
	db *bun.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(cfg Config) (*PostgresStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store: dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
	))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// NewWithDB wraps an existing bun.DB, mainly for tests.
func NewWithDB(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	tenant := new(Tenant)
	err := s.db.NewSelect().Model(tenant).Where("t.id = ?", tenantID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, tenantID string) ([]Product, error) {
	var products []Product
	err := s.db.NewSelect().Model(&products).
		Where("p.tenant_id = ?", tenantID).
		Order("p.name ASC").
		Scan(ctx)
	return products, err
}

func (s *PostgresStore) ListCategories(ctx context.Context, tenantID string) ([]Category, error) {
	var categories []Category
	err := s.db.NewSelect().Model(&categories).
		Where("c.tenant_id = ?", tenantID).
		Order("c.name ASC").
		Scan(ctx)
	return categories, err
}

func (s *PostgresStore) ListWarehouses(ctx context.Context, tenantID string) ([]Warehouse, error) {
	var warehouses []Warehouse
	err := s.db.NewSelect().Model(&warehouses).
		Where("w.tenant_id = ?", tenantID).
		Scan(ctx)
	return warehouses, err
}

func (s *PostgresStore) ListWarehouseStocks(ctx context.Context, tenantID string) ([]WarehouseStock, error) {
	var stocks []WarehouseStock
	err := s.db.NewSelect().Model(&stocks).
		Where("ws.tenant_id = ?", tenantID).
		Scan(ctx)
	return stocks, err
}

func (s *PostgresStore) ListSuppliers(ctx context.Context, tenantID string) ([]Supplier, error) {
	var suppliers []Supplier
	err := s.db.NewSelect().Model(&suppliers).
		Where("s.tenant_id = ?", tenantID).
		Order("s.name ASC").
		Scan(ctx)
	return suppliers, err
}

func (s *PostgresStore) ListEmployees(ctx context.Context, tenantID string) ([]Employee, error) {
	var employees []Employee
	err := s.db.NewSelect().Model(&employees).
		Where("e.tenant_id = ?", tenantID).
		Scan(ctx)
	return employees, err
}

func (s *PostgresStore) ListUsers(ctx context.Context, tenantID string) ([]User, error) {
	var users []User
	err := s.db.NewSelect().Model(&users).
		Where("u.tenant_id = ?", tenantID).
		Scan(ctx)
	return users, err
}

func (s *PostgresStore) ListAppointments(ctx context.Context, tenantID string) ([]Appointment, error) {
	var appointments []Appointment
	err := s.db.NewSelect().Model(&appointments).
		Where("a.tenant_id = ?", tenantID).
		Order("a.date ASC").
		Scan(ctx)
	return appointments, err
}

func (s *PostgresStore) ListRecentSales(ctx context.Context, tenantID string, limit int) ([]Sale, error) {
	var sales []Sale
	err := s.db.NewSelect().Model(&sales).
		Where("sl.tenant_id = ?", tenantID).
		Order("sl.created_at DESC").
		Limit(limit).
		Scan(ctx)
	return sales, err
}

func (s *PostgresStore) ListRecentPurchases(ctx context.Context, tenantID string, limit int) ([]Purchase, error) {
	var purchases []Purchase
	err := s.db.NewSelect().Model(&purchases).
		Where("pu.tenant_id = ?", tenantID).
		Order("pu.created_at DESC").
		Limit(limit).
		Scan(ctx)
	return purchases, err
}

func (s *PostgresStore) GetSalesStats(ctx context.Context, tenantID string) (*SalesStats, error) {
	var totals struct {
		Count   int             `bun:"count"`
		Revenue decimal.Decimal `bun:"revenue"`
	}
	err := s.db.NewSelect().Model((*Sale)(nil)).
		ColumnExpr("count(*) AS count").
		ColumnExpr("coalesce(sum(sl.total), 0) AS revenue").
		Where("sl.tenant_id = ?", tenantID).
		Scan(ctx, &totals)
	if err != nil {
		return nil, err
	}

	var byMethod []struct {
		Method string          `bun:"method"`
		Amount decimal.Decimal `bun:"amount"`
	}
	err = s.db.NewSelect().Model((*SalePayment)(nil)).
		ColumnExpr("sp.method AS method").
		ColumnExpr("coalesce(sum(sp.amount), 0) AS amount").
		Where("sp.tenant_id = ?", tenantID).
		GroupExpr("sp.method").
		Scan(ctx, &byMethod)
	if err != nil {
		return nil, err
	}

	stats := &SalesStats{
		Count:           totals.Count,
		Revenue:         totals.Revenue,
		ByPaymentMethod: make(map[string]decimal.Decimal, len(byMethod)),
	}
	for _, row := range byMethod {
		stats.ByPaymentMethod[row.Method] = row.Amount
	}
	return stats, nil
}

func (s *PostgresStore) ListTopSellingProducts(ctx context.Context, tenantID string, limit int) ([]TopProduct, error) {
	var top []TopProduct
	err := s.db.NewSelect().Model((*SaleItem)(nil)).
		ColumnExpr("si.product_name AS product_name").
		ColumnExpr("coalesce(sum(si.quantity), 0) AS units_sold").
		ColumnExpr("coalesce(sum(si.subtotal), 0) AS revenue").
		Where("si.tenant_id = ?", tenantID).
		GroupExpr("si.product_name").
		OrderExpr("units_sold DESC").
		Limit(limit).
		Scan(ctx, &top)
	return top, err
}

func (s *PostgresStore) CreateSupplier(ctx context.Context, supplier *Supplier) error {
	fillID(&supplier.ID)
	_, err := s.db.NewInsert().Model(supplier).Exec(ctx)
	return err
}

func (s *PostgresStore) CreateAppointment(ctx context.Context, appointment *Appointment) error {
	fillID(&appointment.ID)
	_, err := s.db.NewInsert().Model(appointment).Exec(ctx)
	return err
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *Product) error {
	fillID(&product.ID)
	_, err := s.db.NewInsert().Model(product).Exec(ctx)
	return err
}

// CreateSale persists the sale header, its line items, and its payments in a
// single transaction. Either everything lands or nothing does.
func (s *PostgresStore) CreateSale(ctx context.Context, sale *Sale) error {
	if len(sale.Items) == 0 {
		return ErrEmptySale
	}
	stampSale(sale)

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(sale).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(&sale.Items).Exec(ctx); err != nil {
			return err
		}
		if len(sale.Payments) > 0 {
			if _, err := tx.NewInsert().Model(&sale.Payments).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// stampSale assigns missing IDs and propagates the sale's identity onto its
// items and payments so child rows always land under the right sale and tenant.
func stampSale(sale *Sale) {
	fillID(&sale.ID)
	for _, item := range sale.Items {
		fillID(&item.ID)
		item.SaleID = sale.ID
		item.TenantID = sale.TenantID
	}
	for _, payment := range sale.Payments {
		fillID(&payment.ID)
		payment.SaleID = sale.ID
		payment.TenantID = sale.TenantID
	}
}

func fillID(id *string) {
	if strings.TrimSpace(*id) == "" {
		*id = uuid.NewString()
	}
}
