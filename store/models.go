package store

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type Tenant struct {
	bun.BaseModel `bun:"table:tenants,alias:t"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	Plan      string    `bun:"plan,notnull,default:'free'"`
	Currency  string    `bun:"currency,notnull,default:'MXN'"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID         string              `bun:"id,pk"`
	TenantID   string              `bun:"tenant_id,notnull"`
	Name       string              `bun:"name,notnull"`
	SKU        string              `bun:"sku,notnull"`
	Price      decimal.Decimal     `bun:"price,notnull"`
	Cost       decimal.NullDecimal `bun:"cost"`
	CategoryID *string             `bun:"category_id"`
	Stock      int                 `bun:"stock,notnull,default:0"`
	MinStock   int                 `bun:"min_stock,notnull,default:5"`
	Unit       string              `bun:"unit,notnull,default:'pieza'"`
	Status     string              `bun:"status,notnull,default:'active'"`
	CreatedAt  time.Time           `bun:"created_at,notnull,default:current_timestamp"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID       string `bun:"id,pk"`
	TenantID string `bun:"tenant_id,notnull"`
	Name     string `bun:"name,notnull"`
}

type Warehouse struct {
	bun.BaseModel `bun:"table:warehouses,alias:w"`

	ID       string `bun:"id,pk"`
	TenantID string `bun:"tenant_id,notnull"`
	Name     string `bun:"name,notnull"`
	Location string `bun:"location"`
}

type WarehouseStock struct {
	bun.BaseModel `bun:"table:warehouse_stocks,alias:ws"`

	ID          string `bun:"id,pk"`
	TenantID    string `bun:"tenant_id,notnull"`
	WarehouseID string `bun:"warehouse_id,notnull"`
	ProductID   string `bun:"product_id,notnull"`
	Quantity    int    `bun:"quantity,notnull,default:0"`
}

type Supplier struct {
	bun.BaseModel `bun:"table:suppliers,alias:s"`

	ID        string    `bun:"id,pk"`
	TenantID  string    `bun:"tenant_id,notnull"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email"`
	Phone     string    `bun:"phone"`
	Address   string    `bun:"address"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	ID         string          `bun:"id,pk"`
	TenantID   string          `bun:"tenant_id,notnull"`
	Name       string          `bun:"name,notnull"`
	Department string          `bun:"department"`
	Salary     decimal.Decimal `bun:"salary,notnull"`
	Active     bool            `bun:"active,notnull,default:true"`
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       string `bun:"id,pk"`
	TenantID string `bun:"tenant_id,notnull"`
	Name     string `bun:"name,notnull"`
	Email    string `bun:"email,notnull"`
	Role     string `bun:"role,notnull,default:'seller'"`
}

const AppointmentStatusScheduled = "scheduled"

type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:a"`

	ID            string    `bun:"id,pk"`
	TenantID      string    `bun:"tenant_id,notnull"`
	CustomerName  string    `bun:"customer_name,notnull"`
	CustomerPhone string    `bun:"customer_phone,notnull"`
	Subject       string    `bun:"subject,notnull"`
	Date          time.Time `bun:"date,notnull"`
	Time          string    `bun:"time,notnull"`
	Status        string    `bun:"status,notnull,default:'scheduled'"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type Sale struct {
	bun.BaseModel `bun:"table:sales,alias:sl"`

	ID           string              `bun:"id,pk"`
	TenantID     string              `bun:"tenant_id,notnull"`
	UserID       string              `bun:"user_id"`
	Ticket       string              `bun:"ticket"`
	Total        decimal.Decimal     `bun:"total,notnull"`
	CashReceived decimal.NullDecimal `bun:"cash_received"`
	Change       decimal.NullDecimal `bun:"change"`
	CreatedAt    time.Time           `bun:"created_at,notnull,default:current_timestamp"`

	Items    []*SaleItem    `bun:"rel:has-many,join:id=sale_id"`
	Payments []*SalePayment `bun:"rel:has-many,join:id=sale_id"`
}

type SaleItem struct {
	bun.BaseModel `bun:"table:sale_items,alias:si"`

	ID          string          `bun:"id,pk"`
	SaleID      string          `bun:"sale_id,notnull"`
	TenantID    string          `bun:"tenant_id,notnull"`
	ProductID   string          `bun:"product_id,notnull"`
	ProductName string          `bun:"product_name,notnull"`
	Quantity    int             `bun:"quantity,notnull"`
	UnitPrice   decimal.Decimal `bun:"unit_price,notnull"`
	Subtotal    decimal.Decimal `bun:"subtotal,notnull"`
}

type SalePayment struct {
	bun.BaseModel `bun:"table:sale_payments,alias:sp"`

	ID       string          `bun:"id,pk"`
	SaleID   string          `bun:"sale_id,notnull"`
	TenantID string          `bun:"tenant_id,notnull"`
	Method   string          `bun:"method,notnull"`
	Amount   decimal.Decimal `bun:"amount,notnull"`
}

type Purchase struct {
	bun.BaseModel `bun:"table:purchases,alias:pu"`

	ID           string          `bun:"id,pk"`
	TenantID     string          `bun:"tenant_id,notnull"`
	SupplierID   string          `bun:"supplier_id"`
	SupplierName string          `bun:"supplier_name"`
	Total        decimal.Decimal `bun:"total,notnull"`
	Status       string          `bun:"status,notnull,default:'pending'"`
	CreatedAt    time.Time       `bun:"created_at,notnull,default:current_timestamp"`
}

// SalesStats is an aggregate over the sales and sale_payments tables, not a
// table of its own.
type SalesStats struct {
	Count           int
	Revenue         decimal.Decimal
	ByPaymentMethod map[string]decimal.Decimal
}

type TopProduct struct {
	ProductName string          `bun:"product_name"`
	UnitsSold   int             `bun:"units_sold"`
	Revenue     decimal.Decimal `bun:"revenue"`
}
