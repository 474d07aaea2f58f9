package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
	pkgerrors "github.com/quickwishapp/quickwish-backend/pkg/errors"
)

var (
	// TaxRate is the flat rate applied to every order subtotal.
	TaxRate = decimal.NewFromFloat(0.05)

	// AgentDeliveryFee is the flat remuneration charged when a delivery
	// agent carries the order. It also funds the linked delivery wish.
	AgentDeliveryFee = decimal.NewFromInt(30)
)

// Line describes one cart line to be priced. UnitPrice is the effective
// price, with any product discount already applied.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	ImageURL    *string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// QuotedLine pairs a line with its extended total.
type QuotedLine struct {
	Line
	LineTotal decimal.Decimal
}

// Quote is the full money breakdown for a cart at a given delivery type.
type Quote struct {
	Lines       []QuotedLine
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// ItemCount returns the total number of units across all quoted lines.
func (q *Quote) ItemCount() int {
	count := 0
	for _, line := range q.Lines {
		count += line.Quantity
	}
	return count
}

// BuildQuote prices the provided lines and resolves the delivery fee for the
// requested delivery type against the vendor's capabilities.
func BuildQuote(lines []Line, deliveryType enums.DeliveryType, vendorHasOwnDelivery bool) (*Quote, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no purchasable items")
	}

	fee, err := DeliveryFee(deliveryType, vendorHasOwnDelivery)
	if err != nil {
		return nil, err
	}

	quoted := make([]QuotedLine, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity for product %s must be positive", line.ProductID))
		}
		total := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		quoted = append(quoted, QuotedLine{Line: line, LineTotal: total})
		subtotal = subtotal.Add(total)
	}

	tax := subtotal.Mul(TaxRate).RoundBank(2)
	return &Quote{
		Lines:       quoted,
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(tax).Add(fee),
	}, nil
}

// DeliveryFee resolves the fee for a delivery type. Shop delivery is free but
// only offered by vendors who run their own fleet; agent delivery charges the
// flat agent fee.
func DeliveryFee(deliveryType enums.DeliveryType, vendorHasOwnDelivery bool) (decimal.Decimal, error) {
	switch deliveryType {
	case enums.DeliveryTypeShop:
		if !vendorHasOwnDelivery {
			return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeDeliveryUnavailable, "vendor does not deliver its own orders")
		}
		return decimal.Zero, nil
	case enums.DeliveryTypeAgent:
		return AgentDeliveryFee, nil
	default:
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown delivery type %q", deliveryType))
	}
}
