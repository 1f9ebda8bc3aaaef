package contract

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/backend/store"
)

// BusinessContext is the per-request snapshot of one tenant's business state
// that grounds the model's answers. It is rebuilt on every query and never
// cached; a stale snapshot would make the assistant lie about stock and sales.
type BusinessContext struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	TenantPlan string `json:"tenant_plan"`
	Currency   string `json:"currency"`

	ProductCount   int              `json:"product_count"`
	Products       []store.Product  `json:"products,omitempty"`
	Categories     []store.Category `json:"categories,omitempty"`
	LowStock       []store.Product  `json:"low_stock,omitempty"`
	NegativeStock  []store.Product  `json:"negative_stock,omitempty"`
	StockValuation decimal.Decimal  `json:"stock_valuation"`

	WarehouseCount  int                    `json:"warehouse_count"`
	Warehouses      []store.Warehouse      `json:"warehouses,omitempty"`
	WarehouseStocks []store.WarehouseStock `json:"warehouse_stocks,omitempty"`

	SalesCount       int                `json:"sales_count"`
	SalesRevenue     decimal.Decimal    `json:"sales_revenue"`
	PaymentBreakdown map[string]float64 `json:"payment_breakdown,omitempty"` // method -> percent of revenue
	RecentSales      []store.Sale       `json:"recent_sales,omitempty"`
	TopProducts      []store.TopProduct `json:"top_products,omitempty"`

	PurchaseCount   int              `json:"purchase_count"`
	RecentPurchases []store.Purchase `json:"recent_purchases,omitempty"`

	SupplierCount int              `json:"supplier_count"`
	Suppliers     []store.Supplier `json:"suppliers,omitempty"`

	EmployeeCount         int             `json:"employee_count"`
	EmployeesByDepartment map[string]int  `json:"employees_by_department,omitempty"`
	AverageSalary         decimal.Decimal `json:"average_salary"`

	UserCount int `json:"user_count"`

	AppointmentCount     int                 `json:"appointment_count"`
	AppointmentsByStatus map[string]int      `json:"appointments_by_status,omitempty"`
	AppointmentsByDay    map[string]int      `json:"appointments_by_day,omitempty"`
	Appointments         []store.Appointment `json:"appointments,omitempty"`
}

// ToolInvocation is the model's proposed call: a tool name plus the raw JSON
// argument string. Untrusted until it survives the tool package's parsers.
type ToolInvocation struct {
	Name    string `json:"name"`
	RawArgs string `json:"raw_args"`
}

// ModelOutcome is what one dispatch round trip produced: either assistant free
// text, or exactly one proposed tool invocation.
type ModelOutcome struct {
	Text     string          `json:"text,omitempty"`
	ToolCall *ToolInvocation `json:"tool_call,omitempty"`
}

func (o ModelOutcome) IsToolCall() bool {
	return o.ToolCall != nil
}

// ToolResult is the tagged outcome of one executor run. Result holds the
// created entity plus derived display values on success; Error holds a
// user-facing reason on failure. Exactly one of the two is set.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r ToolResult) Failed() bool {
	return r.Error != ""
}
