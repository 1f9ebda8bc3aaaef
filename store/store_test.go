package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateSaleRejectsEmptySale(t *testing.T) {
	t.Parallel()

	s := NewWithDB(nil)
	err := s.CreateSale(context.Background(), &Sale{TenantID: "tenant-1"})
	if !errors.Is(err, ErrEmptySale) {
		t.Fatalf("expected ErrEmptySale, got %v", err)
	}
}

func TestStampSalePropagatesIdentity(t *testing.T) {
	t.Parallel()

	sale := &Sale{
		TenantID: "tenant-1",
		Total:    decimal.NewFromInt(60),
		Items: []*SaleItem{
			{ProductID: "p1", ProductName: "Café", Quantity: 2, UnitPrice: decimal.NewFromInt(30), Subtotal: decimal.NewFromInt(60)},
			{ProductID: "p2", ProductName: "Pan", Quantity: 1, UnitPrice: decimal.NewFromFloat(12.5), Subtotal: decimal.NewFromFloat(12.5)},
		},
		Payments: []*SalePayment{
			{Method: "cash", Amount: decimal.NewFromInt(60)},
		},
	}

	stampSale(sale)

	if sale.ID == "" {
		t.Fatal("sale must get an ID")
	}
	seen := map[string]bool{sale.ID: true}
	for i, item := range sale.Items {
		if item.ID == "" {
			t.Fatalf("item %d must get an ID", i)
		}
		if seen[item.ID] {
			t.Fatalf("item %d reuses ID %q", i, item.ID)
		}
		seen[item.ID] = true
		if item.SaleID != sale.ID {
			t.Fatalf("item %d not linked to sale: %q", i, item.SaleID)
		}
		if item.TenantID != "tenant-1" {
			t.Fatalf("item %d not tenant scoped: %q", i, item.TenantID)
		}
	}
	for i, payment := range sale.Payments {
		if payment.ID == "" {
			t.Fatalf("payment %d must get an ID", i)
		}
		if payment.SaleID != sale.ID {
			t.Fatalf("payment %d not linked to sale: %q", i, payment.SaleID)
		}
		if payment.TenantID != "tenant-1" {
			t.Fatalf("payment %d not tenant scoped: %q", i, payment.TenantID)
		}
	}
}

func TestStampSaleKeepsExistingIDs(t *testing.T) {
	t.Parallel()

	sale := &Sale{
		ID:       "sale-1",
		TenantID: "tenant-1",
		Items:    []*SaleItem{{ID: "item-1", ProductID: "p1"}},
	}

	stampSale(sale)

	if sale.ID != "sale-1" {
		t.Fatalf("preset sale ID must survive, got %q", sale.ID)
	}
	if sale.Items[0].ID != "item-1" {
		t.Fatalf("preset item ID must survive, got %q", sale.Items[0].ID)
	}
	if sale.Items[0].SaleID != "sale-1" {
		t.Fatalf("item must still be linked, got %q", sale.Items[0].SaleID)
	}
}
