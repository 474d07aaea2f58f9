package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
)

func TestBuildQuoteAgentDelivery(t *testing.T) {
	lines := []Line{
		{
			ProductID:   uuid.New(),
			ProductName: "Masala Dosa",
			UnitPrice:   decimal.NewFromInt(80),
			Quantity:    2,
		},
		{
			ProductID:   uuid.New(),
			ProductName: "Filter Coffee",
			UnitPrice:   decimal.NewFromInt(50),
			Quantity:    1,
		},
	}

	quote, err := BuildQuote(lines, enums.DeliveryTypeAgent, false)
	if err != nil {
		t.Fatalf("expected quote, got %v", err)
	}
	if !quote.Subtotal.Equal(decimal.NewFromInt(210)) {
		t.Fatalf("expected subtotal 210, got %s", quote.Subtotal)
	}
	if !quote.Tax.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("expected tax 10.5, got %s", quote.Tax)
	}
	if !quote.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected delivery fee 30, got %s", quote.DeliveryFee)
	}
	if !quote.GrandTotal.Equal(decimal.RequireFromString("250.5")) {
		t.Fatalf("expected grand total 250.5, got %s", quote.GrandTotal)
	}
	if quote.ItemCount() != 3 {
		t.Fatalf("expected 3 items, got %d", quote.ItemCount())
	}
	if len(quote.Lines) != 2 {
		t.Fatalf("expected 2 quoted lines, got %d", len(quote.Lines))
	}
	if !quote.Lines[0].LineTotal.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected first line total 160, got %s", quote.Lines[0].LineTotal)
	}
}

func TestBuildQuoteShopDeliveryFree(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("120.50"), Quantity: 1},
	}

	quote, err := BuildQuote(lines, enums.DeliveryTypeShop, true)
	if err != nil {
		t.Fatalf("expected quote, got %v", err)
	}
	if !quote.DeliveryFee.IsZero() {
		t.Fatalf("expected zero delivery fee, got %s", quote.DeliveryFee)
	}
	if !quote.Tax.Equal(decimal.RequireFromString("6.02")) {
		t.Fatalf("expected tax 6.02, got %s", quote.Tax)
	}
	if !quote.GrandTotal.Equal(decimal.RequireFromString("126.52")) {
		t.Fatalf("expected grand total 126.52, got %s", quote.GrandTotal)
	}
}

func TestBuildQuoteShopDeliveryUnavailable(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(40), Quantity: 1},
	}

	_, err := BuildQuote(lines, enums.DeliveryTypeShop, false)
	if err == nil {
		t.Fatal("expected error for vendor without own delivery")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDeliveryUnavailable {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBuildQuoteEmptyLines(t *testing.T) {
	_, err := BuildQuote(nil, enums.DeliveryTypeAgent, false)
	if err == nil {
		t.Fatal("expected error for empty lines")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBuildQuoteRejectsNonPositiveQuantity(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 0},
	}

	_, err := BuildQuote(lines, enums.DeliveryTypeAgent, false)
	if err == nil {
		t.Fatal("expected error for zero quantity")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBuildQuoteUnknownDeliveryType(t *testing.T) {
	lines := []Line{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}

	_, err := BuildQuote(lines, enums.DeliveryType("drone_delivery"), true)
	if err == nil {
		t.Fatal("expected error for unknown delivery type")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBuildQuoteTaxRoundsToEven(t *testing.T) {
	// 10.50 * 0.05 = 0.525 lands exactly between cents and rounds to the
	// even neighbour.
	lines := []Line{
		{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("10.50"), Quantity: 1},
	}

	quote, err := BuildQuote(lines, enums.DeliveryTypeAgent, false)
	if err != nil {
		t.Fatalf("expected quote, got %v", err)
	}
	if !quote.Tax.Equal(decimal.RequireFromString("0.52")) {
		t.Fatalf("expected tax 0.52, got %s", quote.Tax)
	}
}
