package invoice

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ComputeTotals prices the line items and folds them into invoice totals.
//
// Each line amount and line tax is rounded to 2 dp before it is summed, so the
// invoice carries exactly the sum of its printed lines. Within a state the
// line tax is split into CGST and SGST with SGST taking the remainder, so the
// pair always equals the IGST an inter-state invoice would carry. TDS is
// withheld on the discounted subtotal. BalanceDue never goes below zero.
func ComputeTotals(items []LineItem, fromState, toState string, discount Discount, tdsRate, amountPaid decimal.Decimal) (Totals, []LineItem) {
	interState := fromState != toState

	t := Totals{
		IsInterState: interState,
		SubTotal:     decimal.Zero,
		CGSTAmount:   decimal.Zero,
		SGSTAmount:   decimal.Zero,
		IGSTAmount:   decimal.Zero,
		TDSRate:      tdsRate,
		AmountPaid:   amountPaid.Round(2),
	}

	priced := make([]LineItem, len(items))
	for i, it := range items {
		it.Position = i + 1
		it.Amount = it.Quantity.Mul(it.Rate).Round(2)
		tax := it.Amount.Mul(it.GSTRate).Div(hundred).Round(2)

		it.CGSTAmount, it.SGSTAmount, it.IGSTAmount = decimal.Zero, decimal.Zero, decimal.Zero
		if interState {
			it.IGSTAmount = tax
		} else {
			it.CGSTAmount = tax.Div(two).Round(2)
			it.SGSTAmount = tax.Sub(it.CGSTAmount)
		}

		t.SubTotal = t.SubTotal.Add(it.Amount)
		t.CGSTAmount = t.CGSTAmount.Add(it.CGSTAmount)
		t.SGSTAmount = t.SGSTAmount.Add(it.SGSTAmount)
		t.IGSTAmount = t.IGSTAmount.Add(it.IGSTAmount)
		priced[i] = it
	}
	subTotal := t.SubTotal

	t.DiscountAmount = discountAmount(subTotal, discount)

	t.TotalTax = t.CGSTAmount.Add(t.SGSTAmount).Add(t.IGSTAmount)

	taxable := subTotal.Sub(t.DiscountAmount)
	t.TDSAmount = taxable.Mul(tdsRate).Div(hundred).Round(2)
	t.TotalAmount = taxable.Add(t.TotalTax).Sub(t.TDSAmount)

	t.BalanceDue = t.TotalAmount.Sub(t.AmountPaid)
	if t.BalanceDue.IsNegative() {
		t.BalanceDue = decimal.Zero
	}
	return t, priced
}

func discountAmount(subTotal decimal.Decimal, d Discount) decimal.Decimal {
	amount := d.Amount
	if amount.IsZero() && d.Percent.IsPositive() {
		amount = subTotal.Mul(d.Percent).Div(hundred)
	}
	amount = amount.Round(2)
	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subTotal) {
		return subTotal
	}
	return amount
}
