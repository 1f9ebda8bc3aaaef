package tool

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	contractx "github.com/puntoventa/backend/assistant/contract"
)

// The model emits untyped JSON. Each Parse*Args function is the single
// parse-don't-validate boundary between that output and the executors:
// whatever survives it is well-formed and trimmed.

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type SupplierArgs struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func ParseSupplierArgs(raw string) (SupplierArgs, error) {
	var args SupplierArgs
	if err := decode(raw, &args); err != nil {
		return SupplierArgs{}, err
	}

	args.Name = strings.TrimSpace(args.Name)
	args.Email = strings.TrimSpace(args.Email)
	args.Phone = strings.TrimSpace(args.Phone)
	args.Address = strings.TrimSpace(args.Address)

	if args.Name == "" {
		return SupplierArgs{}, fmt.Errorf("%w: el nombre del proveedor es obligatorio", contractx.ErrValidation)
	}
	return args, nil
}

type AppointmentArgs struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Subject       string `json:"subject"`
	Date          string `json:"appointmentDate"`
	Time          string `json:"appointmentTime"`
}

func ParseAppointmentArgs(raw string) (AppointmentArgs, error) {
	var args AppointmentArgs
	if err := decode(raw, &args); err != nil {
		return AppointmentArgs{}, err
	}

	args.CustomerName = strings.TrimSpace(args.CustomerName)
	args.CustomerPhone = strings.TrimSpace(args.CustomerPhone)
	args.Subject = strings.TrimSpace(args.Subject)
	args.Date = strings.TrimSpace(args.Date)
	args.Time = strings.TrimSpace(args.Time)

	switch {
	case args.CustomerName == "":
		return AppointmentArgs{}, fmt.Errorf("%w: el nombre del cliente es obligatorio", contractx.ErrValidation)
	case args.CustomerPhone == "":
		return AppointmentArgs{}, fmt.Errorf("%w: el teléfono del cliente es obligatorio", contractx.ErrValidation)
	case args.Subject == "":
		return AppointmentArgs{}, fmt.Errorf("%w: el asunto de la cita es obligatorio", contractx.ErrValidation)
	case args.Date == "":
		return AppointmentArgs{}, fmt.Errorf("%w: la fecha de la cita es obligatoria", contractx.ErrValidation)
	case args.Time == "":
		return AppointmentArgs{}, fmt.Errorf("%w: la hora de la cita es obligatoria", contractx.ErrValidation)
	}

	if !datePattern.MatchString(args.Date) {
		return AppointmentArgs{}, fmt.Errorf("%w: la fecha debe tener formato YYYY-MM-DD, recibí %q", contractx.ErrValidation, args.Date)
	}
	if !timePattern.MatchString(args.Time) {
		return AppointmentArgs{}, fmt.Errorf("%w: la hora debe tener formato HH:MM de 24 horas, recibí %q", contractx.ErrValidation, args.Time)
	}
	return args, nil
}

type ProductArgs struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Cost     *float64 `json:"cost,omitempty"`
	SKU      string   `json:"sku,omitempty"`
	Category string   `json:"category,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	MinStock *int     `json:"minStock,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

func ParseProductArgs(raw string) (ProductArgs, error) {
	var args ProductArgs
	if err := decode(raw, &args); err != nil {
		return ProductArgs{}, err
	}

	args.Name = strings.TrimSpace(args.Name)
	args.SKU = strings.TrimSpace(args.SKU)
	args.Category = strings.TrimSpace(args.Category)
	args.Unit = strings.TrimSpace(args.Unit)

	if args.Name == "" {
		return ProductArgs{}, fmt.Errorf("%w: el nombre del producto es obligatorio", contractx.ErrValidation)
	}
	if args.Price == nil {
		return ProductArgs{}, fmt.Errorf("%w: el precio del producto es obligatorio", contractx.ErrValidation)
	}
	if *args.Price <= 0 {
		return ProductArgs{}, fmt.Errorf("%w: el precio debe ser mayor que cero", contractx.ErrValidation)
	}
	if args.Cost != nil && *args.Cost < 0 {
		return ProductArgs{}, fmt.Errorf("%w: el costo no puede ser negativo", contractx.ErrValidation)
	}
	if args.Stock != nil && *args.Stock < 0 {
		return ProductArgs{}, fmt.Errorf("%w: el stock inicial no puede ser negativo", contractx.ErrValidation)
	}
	if args.MinStock != nil && *args.MinStock < 0 {
		return ProductArgs{}, fmt.Errorf("%w: el stock mínimo no puede ser negativo", contractx.ErrValidation)
	}
	return args, nil
}

type SaleItemArgs struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type SalePaymentArgs struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

type SaleArgs struct {
	Items        []SaleItemArgs    `json:"items"`
	Payments     []SalePaymentArgs `json:"payments"`
	Ticket       string            `json:"ticket,omitempty"`
	CashReceived *float64          `json:"cashReceived,omitempty"`
}

func ParseSaleArgs(raw string) (SaleArgs, error) {
	var args SaleArgs
	if err := decode(raw, &args); err != nil {
		return SaleArgs{}, err
	}

	if len(args.Items) == 0 {
		return SaleArgs{}, fmt.Errorf("%w: la venta necesita al menos un artículo", contractx.ErrValidation)
	}
	for i := range args.Items {
		args.Items[i].ProductName = strings.TrimSpace(args.Items[i].ProductName)
		if args.Items[i].ProductName == "" {
			return SaleArgs{}, fmt.Errorf("%w: el artículo %d no tiene nombre de producto", contractx.ErrValidation, i+1)
		}
		if args.Items[i].Quantity <= 0 {
			return SaleArgs{}, fmt.Errorf("%w: la cantidad de %q debe ser mayor que cero", contractx.ErrValidation, args.Items[i].ProductName)
		}
	}

	if len(args.Payments) == 0 {
		return SaleArgs{}, fmt.Errorf("%w: la venta necesita al menos un método de pago", contractx.ErrValidation)
	}
	for i := range args.Payments {
		method := strings.ToLower(strings.TrimSpace(args.Payments[i].Method))
		args.Payments[i].Method = method
		if !validPaymentMethod(method) {
			return SaleArgs{}, fmt.Errorf("%w: método de pago %q no reconocido (acepto %s)", contractx.ErrValidation, method, strings.Join(PaymentMethods, ", "))
		}
		if args.Payments[i].Amount <= 0 {
			return SaleArgs{}, fmt.Errorf("%w: el monto del pago %d debe ser mayor que cero", contractx.ErrValidation, i+1)
		}
	}

	args.Ticket = strings.TrimSpace(args.Ticket)
	if args.CashReceived != nil && *args.CashReceived < 0 {
		return SaleArgs{}, fmt.Errorf("%w: el efectivo recibido no puede ser negativo", contractx.ErrValidation)
	}
	return args, nil
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func decode(raw string, into any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("%w: argumentos de la herramienta mal formados: %v", contractx.ErrValidation, err)
	}
	return nil
}
