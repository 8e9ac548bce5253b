package pricing

import (
	"math/rand"
	"testing"
)

func TestCalculateWalkInCart(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines: []Line{{ProductID: 1, Quantity: 2, UnitPrice: 10000}},
	})

	if totals.Subtotal != 20000 {
		t.Fatalf("expected subtotal 20000, got %d", totals.Subtotal)
	}
	if totals.CustomerDiscount != 0 {
		t.Fatalf("expected no customer discount, got %d", totals.CustomerDiscount)
	}
	if totals.NetTotal != 20000 {
		t.Fatalf("expected net total 20000, got %d", totals.NetTotal)
	}
	if totals.Discount != 0 {
		t.Fatalf("expected aggregate discount 0, got %d", totals.Discount)
	}
}

func TestCalculateRegisteredCustomer(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines:                []Line{{ProductID: 1, Quantity: 2, UnitPrice: 10000}},
		IsRegisteredCustomer: true,
	})

	if totals.CustomerDiscount != 2000 {
		t.Fatalf("expected customer discount 2000, got %d", totals.CustomerDiscount)
	}
	if totals.NetTotal != 18000 {
		t.Fatalf("expected net total 18000, got %d", totals.NetTotal)
	}
	if totals.Discount != 2000 {
		t.Fatalf("expected aggregate discount 2000, got %d", totals.Discount)
	}
}

func TestCalculateEventDiscount(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines: []Line{{ProductID: 1, Quantity: 1, UnitPrice: 10000, EventDiscountPercent: 20}},
	})

	if got := totals.Lines[0].EventDiscount.IntPart(); got != 2000 {
		t.Fatalf("expected line event discount 2000, got %d", got)
	}
	if totals.NetTotal != 8000 {
		t.Fatalf("expected net total 8000, got %d", totals.NetTotal)
	}
}

func TestEventAndCustomerDiscountsAreNotCompounded(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines:                []Line{{ProductID: 1, Quantity: 1, UnitPrice: 10000, EventDiscountPercent: 20}},
		IsRegisteredCustomer: true,
	})

	// 10% of the 10000 subtotal, not of the 8000 left after the event.
	if totals.CustomerDiscount != 1000 {
		t.Fatalf("expected customer discount 1000, got %d", totals.CustomerDiscount)
	}
	if totals.NetTotal != 7000 {
		t.Fatalf("expected net total 7000, got %d", totals.NetTotal)
	}
}

func TestRoundingAppliesToAggregateOnly(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines: []Line{
			{ProductID: 1, Quantity: 1, UnitPrice: 1001, EventDiscountPercent: 50},
			{ProductID: 2, Quantity: 1, UnitPrice: 1001, EventDiscountPercent: 50},
		},
	})

	// Each line nets 500.5; rounding per line would give 1002.
	if totals.NetTotal != 1001 {
		t.Fatalf("expected net total 1001, got %d", totals.NetTotal)
	}
	if got := totals.Lines[0].NetRounded(); got != 501 {
		t.Fatalf("expected stored line total 501, got %d", got)
	}
}

func TestPerItemDiscountAndAdjustment(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	totals := calc.Calculate(Cart{
		Lines: []Line{
			{ProductID: 1, Quantity: 3, UnitPrice: 5000, PerItemDiscount: 500},
			{ProductID: 2, Quantity: 1, UnitPrice: 2000, PerItemDiscount: 9999},
		},
		Adjustment: -500,
	})

	// 15000 - 1500 + (2000 - 2000 clamped) - 500
	if totals.ItemDiscount != 3500 {
		t.Fatalf("expected item discount 3500, got %d", totals.ItemDiscount)
	}
	if totals.NetTotal != 13000 {
		t.Fatalf("expected net total 13000, got %d", totals.NetTotal)
	}
	if totals.Subtotal-totals.Discount+totals.Adjustment != totals.NetTotal {
		t.Fatalf("header identity broken: %+v", totals)
	}
}

func TestNetTotalIdentity(t *testing.T) {
	calc := NewCalculator(DefaultCustomerDiscountPercent)
	rng := rand.New(rand.NewSource(42))
	percents := []float64{0, 5, 10, 20, 25, 50}

	for i := 0; i < 500; i++ {
		var cart Cart
		var sumSub, sumEvent, sumItem int64
		for n := rng.Intn(5) + 1; n > 0; n-- {
			price := int64(rng.Intn(500)+1) * 100
			qty := rng.Intn(10) + 1
			item := int64(rng.Intn(10)) * 10
			pct := percents[rng.Intn(len(percents))]
			cart.Lines = append(cart.Lines, Line{
				Quantity:             qty,
				UnitPrice:            price,
				PerItemDiscount:      item,
				EventDiscountPercent: pct,
			})
			sumSub += price * int64(qty)
			sumEvent += int64(pct) * price * int64(qty) / 100
			sumItem += item * int64(qty)
		}
		cart.IsRegisteredCustomer = rng.Intn(2) == 0
		cart.Adjustment = int64(rng.Intn(2001) - 1000)

		var customer int64
		if cart.IsRegisteredCustomer {
			customer = (sumSub*10 + 50) / 100
		}
		want := sumSub - sumEvent - sumItem - customer + cart.Adjustment

		got := calc.Calculate(cart)
		if got.NetTotal != want {
			t.Fatalf("case %d: expected net total %d, got %d (%+v)", i, want, got.NetTotal, cart)
		}
		if got.CustomerDiscount != customer {
			t.Fatalf("case %d: expected customer discount %d, got %d", i, customer, got.CustomerDiscount)
		}
	}
}

func TestChange(t *testing.T) {
	if got := Change(25000, 20000); got != 5000 {
		t.Fatalf("expected change 5000, got %d", got)
	}
	if got := Change(15000, 20000); got != 0 {
		t.Fatalf("expected change floored at 0, got %d", got)
	}
}
