package render

import (
	"fmt"
	"strings"

	"github.com/puntoventa/backend/assistant/contract"
	"github.com/puntoventa/backend/assistant/executor"
)

// Apology is the fixed reply for any model or transport failure. Technical
// detail stays in the logs.
const Apology = "Lo siento, en este momento no puedo atender tu solicitud. Intenta de nuevo en unos minutos."

// Render turns an execution result into the final user-facing string. Pure
// formatting: every displayed value was computed by the executor.
func Render(result contract.ToolResult) string {
	if result.Failed() {
		return fmt.Sprintf("No pude completar la operación: %s.", strings.TrimSuffix(result.Error, "."))
	}

	switch r := result.Result.(type) {
	case executor.SupplierCreated:
		return renderSupplier(r)
	case executor.AppointmentCreated:
		return renderAppointment(r)
	case executor.ProductCreated:
		return renderProduct(r)
	case executor.SaleCreated:
		return renderSale(r)
	default:
		return "Operación realizada."
	}
}

func renderSupplier(r executor.SupplierCreated) string {
	s := r.Supplier
	msg := fmt.Sprintf("Proveedor registrado: %s", s.Name)
	var contact []string
	if s.Phone != "" {
		contact = append(contact, "tel "+s.Phone)
	}
	if s.Email != "" {
		contact = append(contact, s.Email)
	}
	if len(contact) > 0 {
		msg += " (" + strings.Join(contact, ", ") + ")"
	}
	return msg + "."
}

func renderAppointment(r executor.AppointmentCreated) string {
	a := r.Appointment
	return fmt.Sprintf("Cita agendada: %s el %s a las %s con %s (%s).",
		a.Subject, a.Date.UTC().Format("2006-01-02"), a.Time, a.CustomerName, a.CustomerPhone)
}

func renderProduct(r executor.ProductCreated) string {
	p := r.Product
	msg := fmt.Sprintf("Producto creado: %s con SKU %s a %s", p.Name, p.SKU, p.Price.StringFixed(2))
	if r.Margin.Valid {
		msg += fmt.Sprintf(" (margen %s%%)", r.Margin.Decimal.StringFixed(2))
	}
	return msg + "."
}

func renderSale(r executor.SaleCreated) string {
	msg := fmt.Sprintf("Venta registrada por %s", r.Total.StringFixed(2))
	if r.Sale.Ticket != "" {
		msg += fmt.Sprintf(" (ticket %s)", r.Sale.Ticket)
	}
	msg += fmt.Sprintf(", %d artículo(s)", len(r.Sale.Items))
	if r.Sale.CashReceived.Valid {
		msg += fmt.Sprintf(". Cambio: %s", r.Change.StringFixed(2))
	}
	return msg + "."
}
