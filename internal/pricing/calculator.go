// Package pricing computes checkout totals for a POS cart.
//
// All amounts are integer currency units (rupiah). Intermediate values are
// carried as exact decimals and only the final aggregate is rounded half-up,
// so a cart with many percentage-discounted lines does not drift.
package pricing

import "github.com/shopspring/decimal"

// DefaultCustomerDiscountPercent is the loyalty discount for registered customers.
const DefaultCustomerDiscountPercent = 10

var hundred = decimal.NewFromInt(100)

// Line is one product line of a cart.
type Line struct {
	ProductID            uint
	Quantity             int
	UnitPrice            int64
	PerItemDiscount      int64   // per unit, clamped to [0, UnitPrice]
	EventDiscountPercent float64 // 0 when no event is active for the product
}

type Cart struct {
	Lines                []Line
	IsRegisteredCustomer bool
	Adjustment           int64
}

type LineTotals struct {
	ProductID     uint
	Subtotal      int64
	EventDiscount decimal.Decimal
	ItemDiscount  int64
	Net           decimal.Decimal
}

// NetRounded is the line total as stored on a sale item.
func (l LineTotals) NetRounded() int64 {
	return l.Net.Round(0).IntPart()
}

type Totals struct {
	Lines            []LineTotals
	Subtotal         int64
	EventDiscount    int64
	ItemDiscount     int64
	CustomerDiscount int64
	// Discount is everything taken off the subtotal, so that
	// Subtotal - Discount + Adjustment == NetTotal holds exactly.
	Discount   int64
	Adjustment int64
	NetTotal   int64
}

type Calculator struct {
	customerDiscountPercent decimal.Decimal
}

func NewCalculator(customerDiscountPercent int64) Calculator {
	return Calculator{customerDiscountPercent: decimal.NewFromInt(customerDiscountPercent)}
}

// Calculate never fails; quantity and amount validation belongs to the caller.
func (c Calculator) Calculate(cart Cart) Totals {
	totals := Totals{
		Lines:      make([]LineTotals, 0, len(cart.Lines)),
		Adjustment: cart.Adjustment,
	}

	sumNet := decimal.Zero
	sumEvent := decimal.Zero
	for _, line := range cart.Lines {
		lt := computeLine(line)
		totals.Lines = append(totals.Lines, lt)
		totals.Subtotal += lt.Subtotal
		totals.ItemDiscount += lt.ItemDiscount
		sumEvent = sumEvent.Add(lt.EventDiscount)
		sumNet = sumNet.Add(lt.Net)
	}
	totals.EventDiscount = sumEvent.Round(0).IntPart()

	// Customer discount is taken from the pre-discount subtotal, independent of
	// the event and per-item discounts.
	if cart.IsRegisteredCustomer {
		totals.CustomerDiscount = decimal.NewFromInt(totals.Subtotal).
			Mul(c.customerDiscountPercent).
			Div(hundred).
			Round(0).
			IntPart()
	}

	net := sumNet.
		Sub(decimal.NewFromInt(totals.CustomerDiscount)).
		Add(decimal.NewFromInt(cart.Adjustment))
	totals.NetTotal = net.Round(0).IntPart()
	totals.Discount = totals.Subtotal + cart.Adjustment - totals.NetTotal

	return totals
}

func computeLine(line Line) LineTotals {
	qty := decimal.NewFromInt(int64(line.Quantity))
	price := decimal.NewFromInt(line.UnitPrice)
	subtotal := price.Mul(qty)

	eventDiscount := decimal.Zero
	if line.EventDiscountPercent > 0 {
		eventDiscount = decimal.NewFromFloat(line.EventDiscountPercent).
			Div(hundred).
			Mul(subtotal)
	}

	perItem := line.PerItemDiscount
	if perItem < 0 {
		perItem = 0
	}
	if perItem > line.UnitPrice {
		perItem = line.UnitPrice
	}
	itemDiscount := perItem * int64(line.Quantity)

	return LineTotals{
		ProductID:     line.ProductID,
		Subtotal:      subtotal.IntPart(),
		EventDiscount: eventDiscount,
		ItemDiscount:  itemDiscount,
		Net:           subtotal.Sub(eventDiscount).Sub(decimal.NewFromInt(itemDiscount)),
	}
}

// Change is what the cashier hands back. It is floored at zero; rejecting an
// insufficient payment is the caller's job.
func Change(tendered, netTotal int64) int64 {
	if tendered < netTotal {
		return 0
	}
	return tendered - netTotal
}
