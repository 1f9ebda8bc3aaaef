package tool

import (
	"errors"
	"strings"
	"testing"

	contractx "github.com/puntoventa/backend/assistant/contract"
)

func TestParseSupplierArgs(t *testing.T) {
	t.Parallel()

	args, err := ParseSupplierArgs(`{"name":"  Distribuidora Norte ","phone":"5551112222"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Name != "Distribuidora Norte" {
		t.Fatalf("name not trimmed: %q", args.Name)
	}
	if args.Phone != "5551112222" {
		t.Fatalf("unexpected phone: %q", args.Phone)
	}

	if _, err := ParseSupplierArgs(`{"email":"x@y.mx"}`); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	if _, err := ParseSupplierArgs(`{"name":"   "}`); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := ParseSupplierArgs(`{not json`); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected validation error for malformed json, got %v", err)
	}
}

func TestParseAppointmentArgsMissingFields(t *testing.T) {
	t.Parallel()

	full := map[string]string{
		"customerName":    "Ana",
		"customerPhone":   "5551234567",
		"subject":         "Consulta",
		"appointmentDate": "2025-03-10",
		"appointmentTime": "09:30",
	}

	for drop := range full {
		var sb strings.Builder
		sb.WriteString("{")
		first := true
		for k, v := range full {
			if k == drop {
				continue
			}
			if !first {
				sb.WriteString(",")
			}
			first = false
			sb.WriteString(`"` + k + `":"` + v + `"`)
		}
		sb.WriteString("}")

		if _, err := ParseAppointmentArgs(sb.String()); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("dropping %s: expected validation error, got %v", drop, err)
		}
	}
}

func TestParseAppointmentArgsFormats(t *testing.T) {
	t.Parallel()

	build := func(date, hour string) string {
		return `{"customerName":"Ana","customerPhone":"5551234567","subject":"Consulta","appointmentDate":"` + date +
			`","appointmentTime":"` + hour + `"}`
	}

	args, err := ParseAppointmentArgs(build("2025-03-10", "09:30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Date != "2025-03-10" || args.Time != "09:30" {
		t.Fatalf("unexpected parsed values: %+v", args)
	}

	badDates := []string{"10-03-2025", "2025/03/10", "2025-3-10", "mañana", "20250310"}
	for _, d := range badDates {
		if _, err := ParseAppointmentArgs(build(d, "09:30")); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("date %q: expected validation error, got %v", d, err)
		}
	}

	badTimes := []string{"9:30", "25:00", "12:60", "09.30", "9h30", "09:30pm"}
	for _, h := range badTimes {
		if _, err := ParseAppointmentArgs(build("2025-03-10", h)); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("time %q: expected validation error, got %v", h, err)
		}
	}
}

func TestParseProductArgs(t *testing.T) {
	t.Parallel()

	args, err := ParseProductArgs(`{"name":"Café","price":30.0,"cost":18.5,"category":"bebidas"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Name != "Café" || *args.Price != 30.0 || *args.Cost != 18.5 {
		t.Fatalf("unexpected args: %+v", args)
	}

	cases := map[string]string{
		"missing name":   `{"price":30}`,
		"missing price":  `{"name":"Café"}`,
		"zero price":     `{"name":"Café","price":0}`,
		"negative price": `{"name":"Café","price":-1}`,
		"negative cost":  `{"name":"Café","price":30,"cost":-5}`,
		"negative stock": `{"name":"Café","price":30,"stock":-2}`,
	}
	for label, raw := range cases {
		if _, err := ParseProductArgs(raw); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", label, err)
		}
	}
}

func TestParseSaleArgs(t *testing.T) {
	t.Parallel()

	args, err := ParseSaleArgs(`{"items":[{"productName":"Café","quantity":2}],"payments":[{"method":"CASH","amount":60}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args.Payments[0].Method != "cash" {
		t.Fatalf("method not normalized: %q", args.Payments[0].Method)
	}

	cases := map[string]string{
		"no items":       `{"items":[],"payments":[{"method":"cash","amount":60}]}`,
		"no payments":    `{"items":[{"productName":"Café","quantity":2}],"payments":[]}`,
		"zero quantity":  `{"items":[{"productName":"Café","quantity":0}],"payments":[{"method":"cash","amount":60}]}`,
		"blank product":  `{"items":[{"productName":" ","quantity":1}],"payments":[{"method":"cash","amount":60}]}`,
		"bad method":     `{"items":[{"productName":"Café","quantity":1}],"payments":[{"method":"bitcoin","amount":60}]}`,
		"zero amount":    `{"items":[{"productName":"Café","quantity":1}],"payments":[{"method":"cash","amount":0}]}`,
		"negative cash":  `{"items":[{"productName":"Café","quantity":1}],"payments":[{"method":"cash","amount":60}],"cashReceived":-1}`,
		"malformed json": `{"items":`,
	}
	for label, raw := range cases {
		if _, err := ParseSaleArgs(raw); !errors.Is(err, contractx.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", label, err)
		}
	}
}

func TestCatalogNamesAndMethods(t *testing.T) {
	t.Parallel()

	defs := Catalog()
	if len(defs) != 4 {
		t.Fatalf("expected 4 tools, got %d", len(defs))
	}
	want := []string{ToolCreateSupplier, ToolCreateAppointment, ToolCreateProduct, ToolCreateSale}
	for i, name := range want {
		if defs[i].Function.Name != name {
			t.Fatalf("tool %d: expected %s, got %s", i, name, defs[i].Function.Name)
		}
	}

	for _, m := range []string{"cash", "card", "transfer", "credit", "voucher", "gift_card"} {
		if !validPaymentMethod(m) {
			t.Fatalf("method %s should be valid", m)
		}
	}
	if validPaymentMethod("check") {
		t.Fatal("method check should be invalid")
	}
}
