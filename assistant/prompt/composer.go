package prompt

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	contractx "github.com/puntoventa/backend/assistant/contract"
)

//go:embed template/persona.txt
var personaRaw string

// Compose renders the system prompt for one request: the fixed persona plus
// the live business snapshot. It is regenerated on every query so the model
// always sees current stock and sales figures.
func Compose(bc *contractx.BusinessContext) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(personaRaw))
	b.WriteString("\n\n## Estado actual del negocio\n")

	writeTenant(&b, bc)
	writeInventory(&b, bc)
	writeSales(&b, bc)
	writePurchases(&b, bc)
	writeSuppliers(&b, bc)
	writeTeam(&b, bc)
	writeAppointments(&b, bc)

	return b.String()
}

func writeTenant(b *strings.Builder, bc *contractx.BusinessContext) {
	name := bc.TenantName
	if name == "" {
		name = "negocio sin nombre"
	}
	fmt.Fprintf(b, "\nNegocio: %s", name)
	if bc.TenantPlan != "" {
		fmt.Fprintf(b, " (plan %s)", bc.TenantPlan)
	}
	if bc.Currency != "" {
		fmt.Fprintf(b, ", moneda %s", bc.Currency)
	}
	b.WriteString(".\n")
}

func writeInventory(b *strings.Builder, bc *contractx.BusinessContext) {
	fmt.Fprintf(b, "\n### Inventario\nProductos registrados: %d. Almacenes: %d.\n", bc.ProductCount, bc.WarehouseCount)
	if !bc.StockValuation.IsZero() {
		fmt.Fprintf(b, "Valor del inventario a costo: %s.\n", bc.StockValuation.StringFixed(2))
	}
	if len(bc.LowStock) > 0 {
		names := make([]string, 0, len(bc.LowStock))
		for _, p := range bc.LowStock {
			names = append(names, fmt.Sprintf("%s (%d/%d)", p.Name, p.Stock, p.MinStock))
		}
		fmt.Fprintf(b, "Productos con stock bajo: %s.\n", strings.Join(names, ", "))
	}
	if len(bc.WarehouseStocks) > 0 {
		names := make(map[string]string, len(bc.Warehouses))
		for _, w := range bc.Warehouses {
			names[w.ID] = w.Name
		}
		totals := make(map[string]int)
		for _, ws := range bc.WarehouseStocks {
			label := names[ws.WarehouseID]
			if label == "" {
				label = ws.WarehouseID
			}
			totals[label] += ws.Quantity
		}
		labels := make([]string, 0, len(totals))
		for label := range totals {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		parts := make([]string, 0, len(labels))
		for _, label := range labels {
			parts = append(parts, fmt.Sprintf("%s: %d unidades", label, totals[label]))
		}
		fmt.Fprintf(b, "Existencias por almacén: %s.\n", strings.Join(parts, ", "))
	}
	if len(bc.NegativeStock) > 0 {
		names := make([]string, 0, len(bc.NegativeStock))
		for _, p := range bc.NegativeStock {
			names = append(names, fmt.Sprintf("%s (%d)", p.Name, p.Stock))
		}
		fmt.Fprintf(b, "Productos con stock negativo: %s.\n", strings.Join(names, ", "))
	}
	if len(bc.Categories) > 0 {
		names := make([]string, 0, len(bc.Categories))
		for _, c := range bc.Categories {
			names = append(names, c.Name)
		}
		fmt.Fprintf(b, "Categorías: %s.\n", strings.Join(names, ", "))
	}
	if len(bc.Products) > 0 {
		b.WriteString("Catálogo (nombre | SKU | precio | stock):\n")
		for _, p := range bc.Products {
			fmt.Fprintf(b, "- %s | %s | %s | %d\n", p.Name, p.SKU, p.Price.StringFixed(2), p.Stock)
		}
	}
}

func writeSales(b *strings.Builder, bc *contractx.BusinessContext) {
	fmt.Fprintf(b, "\n### Ventas\nVentas totales: %d por %s.\n", bc.SalesCount, bc.SalesRevenue.StringFixed(2))
	if len(bc.PaymentBreakdown) > 0 {
		methods := make([]string, 0, len(bc.PaymentBreakdown))
		for method := range bc.PaymentBreakdown {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		parts := make([]string, 0, len(methods))
		for _, method := range methods {
			parts = append(parts, fmt.Sprintf("%s %.1f%%", method, bc.PaymentBreakdown[method]))
		}
		fmt.Fprintf(b, "Pagos por método: %s.\n", strings.Join(parts, ", "))
	}
	if len(bc.TopProducts) > 0 {
		b.WriteString("Más vendidos:\n")
		for _, tp := range bc.TopProducts {
			fmt.Fprintf(b, "- %s: %d unidades (%s)\n", tp.ProductName, tp.UnitsSold, tp.Revenue.StringFixed(2))
		}
	}
}

func writePurchases(b *strings.Builder, bc *contractx.BusinessContext) {
	if bc.PurchaseCount == 0 {
		return
	}
	fmt.Fprintf(b, "\n### Compras\nCompras recientes: %d.\n", bc.PurchaseCount)
}

func writeSuppliers(b *strings.Builder, bc *contractx.BusinessContext) {
	fmt.Fprintf(b, "\n### Proveedores\nProveedores registrados: %d.\n", bc.SupplierCount)
	if len(bc.Suppliers) > 0 {
		names := make([]string, 0, len(bc.Suppliers))
		for _, s := range bc.Suppliers {
			names = append(names, s.Name)
		}
		fmt.Fprintf(b, "Nombres: %s.\n", strings.Join(names, ", "))
	}
}

func writeTeam(b *strings.Builder, bc *contractx.BusinessContext) {
	fmt.Fprintf(b, "\n### Equipo\nEmpleados: %d. Usuarios del sistema: %d.\n", bc.EmployeeCount, bc.UserCount)
	if len(bc.EmployeesByDepartment) > 0 {
		depts := make([]string, 0, len(bc.EmployeesByDepartment))
		for dept := range bc.EmployeesByDepartment {
			depts = append(depts, dept)
		}
		sort.Strings(depts)
		parts := make([]string, 0, len(depts))
		for _, dept := range depts {
			parts = append(parts, fmt.Sprintf("%s: %d", dept, bc.EmployeesByDepartment[dept]))
		}
		fmt.Fprintf(b, "Por departamento: %s.\n", strings.Join(parts, ", "))
	}
	if !bc.AverageSalary.IsZero() {
		fmt.Fprintf(b, "Salario promedio (activos): %s.\n", bc.AverageSalary.StringFixed(2))
	}
}

func writeAppointments(b *strings.Builder, bc *contractx.BusinessContext) {
	fmt.Fprintf(b, "\n### Citas\nCitas registradas: %d.\n", bc.AppointmentCount)
	if len(bc.AppointmentsByStatus) > 0 {
		statuses := make([]string, 0, len(bc.AppointmentsByStatus))
		for status := range bc.AppointmentsByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		parts := make([]string, 0, len(statuses))
		for _, status := range statuses {
			parts = append(parts, fmt.Sprintf("%s: %d", status, bc.AppointmentsByStatus[status]))
		}
		fmt.Fprintf(b, "Por estado: %s.\n", strings.Join(parts, ", "))
	}
	if len(bc.AppointmentsByDay) > 0 {
		days := make([]string, 0, len(bc.AppointmentsByDay))
		for day := range bc.AppointmentsByDay {
			days = append(days, day)
		}
		sort.Strings(days)
		parts := make([]string, 0, len(days))
		for _, day := range days {
			parts = append(parts, fmt.Sprintf("%s: %d", day, bc.AppointmentsByDay[day]))
		}
		fmt.Fprintf(b, "Por día: %s.\n", strings.Join(parts, ", "))
	}
}
