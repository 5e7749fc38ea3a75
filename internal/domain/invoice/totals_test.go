package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: want %s, got %s", msg, want, got)
}

func sampleItems() []LineItem {
	return []LineItem{
		{Description: "Robotics kit", Quantity: d("2"), Rate: d("500"), GSTRate: d("18")},
		{Description: "Workshop", Quantity: d("1"), Rate: d("1000"), GSTRate: d("18")},
	}
}

func TestComputeTotals_SameState(t *testing.T) {
	totals, items := ComputeTotals(sampleItems(), "29", "29", Discount{}, decimal.Zero, decimal.Zero)

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 2, items[1].Position)
	assertDec(t, "1000", items[0].Amount, "line amount")
	assertDec(t, "90", items[0].CGSTAmount, "line cgst")
	assertDec(t, "90", items[0].SGSTAmount, "line sgst")
	assertDec(t, "0", items[0].IGSTAmount, "line igst")

	assert.False(t, totals.IsInterState)
	assertDec(t, "2000", totals.SubTotal, "subtotal")
	assertDec(t, "180", totals.CGSTAmount, "cgst")
	assertDec(t, "180", totals.SGSTAmount, "sgst")
	assertDec(t, "0", totals.IGSTAmount, "igst")
	assertDec(t, "2360", totals.TotalAmount, "total")
	assertDec(t, "2360", totals.BalanceDue, "balance")
	assert.Equal(t, PaymentUnpaid, totals.PaymentStatus())
}

func TestComputeTotals_InterState(t *testing.T) {
	totals, items := ComputeTotals(sampleItems(), "29", "27", Discount{}, decimal.Zero, decimal.Zero)

	assert.True(t, totals.IsInterState)
	assertDec(t, "180", items[0].IGSTAmount, "line igst")
	assertDec(t, "0", items[0].CGSTAmount, "line cgst")
	assertDec(t, "360", totals.IGSTAmount, "igst")
	assertDec(t, "0", totals.CGSTAmount, "cgst")
	assertDec(t, "0", totals.SGSTAmount, "sgst")
	assertDec(t, "2360", totals.TotalAmount, "total")
}

func TestComputeTotals_DiscountAndTDS(t *testing.T) {
	totals, _ := ComputeTotals(sampleItems(), "29", "29", Discount{Percent: d("10")}, d("2"), decimal.Zero)

	assertDec(t, "200", totals.DiscountAmount, "discount")
	// 2% of 1800
	assertDec(t, "36", totals.TDSAmount, "tds")
	// 2000 - 200 + 360 - 36
	assertDec(t, "2124", totals.TotalAmount, "total")
}

func TestComputeTotals_FlatDiscountWinsAndIsCapped(t *testing.T) {
	totals, _ := ComputeTotals(sampleItems(), "29", "29", Discount{Percent: d("50"), Amount: d("150")}, decimal.Zero, decimal.Zero)
	assertDec(t, "150", totals.DiscountAmount, "flat discount")

	totals, _ = ComputeTotals(sampleItems(), "29", "29", Discount{Amount: d("5000")}, decimal.Zero, decimal.Zero)
	assertDec(t, "2000", totals.DiscountAmount, "capped discount")
	assertDec(t, "360", totals.TotalAmount, "only tax remains")
}

func TestComputeTotals_Payments(t *testing.T) {
	partial, _ := ComputeTotals(sampleItems(), "29", "29", Discount{}, decimal.Zero, d("1000"))
	assertDec(t, "1360", partial.BalanceDue, "partial balance")
	assert.Equal(t, PaymentPartiallyPaid, partial.PaymentStatus())

	over, _ := ComputeTotals(sampleItems(), "29", "29", Discount{}, decimal.Zero, d("5000"))
	assertDec(t, "0", over.BalanceDue, "balance floored")
	assert.Equal(t, PaymentPaid, over.PaymentStatus())
	assert.True(t, over.TotalAmount.Sub(over.BalanceDue).GreaterThanOrEqual(decimal.Zero))
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	totals, items := ComputeTotals(nil, "29", "29", Discount{}, decimal.Zero, decimal.Zero)
	assert.Empty(t, items)
	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
	assert.True(t, totals.BalanceDue.IsZero())
}

// Within a state CGST + SGST always equals the IGST the same items would
// carry across states, even when the half-split does not round evenly.
func TestComputeTotals_TaxSplitIsExclusive(t *testing.T) {
	items := []LineItem{
		{Description: "a", Quantity: d("3"), Rate: d("33.33"), GSTRate: d("18")},
		{Description: "b", Quantity: d("1"), Rate: d("0.05"), GSTRate: d("18")},
		{Description: "c", Quantity: d("7"), Rate: d("12.345"), GSTRate: d("18")},
		{Description: "d", Quantity: d("0.5"), Rate: d("99.99"), GSTRate: d("18")},
	}

	intra, intraItems := ComputeTotals(items, "19", "19", Discount{}, decimal.Zero, decimal.Zero)
	inter, _ := ComputeTotals(items, "19", "07", Discount{}, decimal.Zero, decimal.Zero)

	assert.True(t, intra.IGSTAmount.IsZero())
	assert.True(t, inter.CGSTAmount.IsZero())
	assert.True(t, inter.SGSTAmount.IsZero())
	assert.True(t, intra.CGSTAmount.Add(intra.SGSTAmount).Equal(inter.IGSTAmount),
		"cgst %s + sgst %s != igst %s", intra.CGSTAmount, intra.SGSTAmount, inter.IGSTAmount)

	lineTax := decimal.Zero
	for _, it := range intraItems {
		lineTax = lineTax.Add(it.CGSTAmount).Add(it.SGSTAmount)
	}
	assert.True(t, intra.TotalTax.Equal(lineTax), "total tax %s != line tax %s", intra.TotalTax, lineTax)
	assertDec(t, "42.57", intra.TotalTax, "total tax")
}

func TestComputeTotals_SubTotalIsSumOfRoundedLines(t *testing.T) {
	items := []LineItem{
		{Description: "a", Quantity: d("1"), Rate: d("0.333"), GSTRate: d("18")},
		{Description: "b", Quantity: d("1"), Rate: d("0.333"), GSTRate: d("18")},
		{Description: "c", Quantity: d("1"), Rate: d("0.333"), GSTRate: d("18")},
	}

	totals, priced := ComputeTotals(items, "29", "29", Discount{}, decimal.Zero, decimal.Zero)

	sum, cgst, sgst := decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range priced {
		assertDec(t, "0.33", it.Amount, "line amount")
		assertDec(t, "0.03", it.CGSTAmount, "line cgst")
		assertDec(t, "0.03", it.SGSTAmount, "line sgst")
		sum = sum.Add(it.Amount)
		cgst = cgst.Add(it.CGSTAmount)
		sgst = sgst.Add(it.SGSTAmount)
	}
	assert.True(t, totals.SubTotal.Equal(sum), "subtotal %s != sum of lines %s", totals.SubTotal, sum)
	assert.True(t, totals.CGSTAmount.Equal(cgst))
	assert.True(t, totals.SGSTAmount.Equal(sgst))
	assertDec(t, "0.99", totals.SubTotal, "subtotal")
	assertDec(t, "1.17", totals.TotalAmount, "total")

	// Stored lines re-priced give the same totals.
	again, _ := ComputeTotals(priced, "29", "29", Discount{}, decimal.Zero, decimal.Zero)
	assert.True(t, again.SubTotal.Equal(totals.SubTotal))
	assert.True(t, again.TotalAmount.Equal(totals.TotalAmount))
}

func TestInvoice_Recompute(t *testing.T) {
	inv := Invoice{
		FromStateCode: "29",
		ToStateCode:   "29",
		Items:         sampleItems(),
		Totals:        Totals{AmountPaid: d("2360")},
	}
	inv.Recompute()

	assertDec(t, "2360", inv.Totals.TotalAmount, "total")
	assertDec(t, "0", inv.Totals.BalanceDue, "balance")
	assert.Equal(t, PaymentPaid, inv.PaymentStatus)
}

func TestCreateInvoiceRequest_Validate(t *testing.T) {
	valid := func() CreateInvoiceRequest {
		gstin := "29abcde1234f1z5"
		return CreateInvoiceRequest{
			PreviewRequest: PreviewRequest{
				FromStateCode: "29",
				ToStateCode:   "29",
				Items:         []LineItemInput{{Description: "Kit", Quantity: d("1"), Rate: d("100")}},
			},
			CustomerName:  " Greenfield School ",
			CustomerGSTIN: &gstin,
			IssueDate:     "2024-04-01",
		}
	}

	req := valid()
	require.NoError(t, req.Validate())
	assert.Equal(t, "Greenfield School", req.CustomerName)
	assert.Equal(t, "29ABCDE1234F1Z5", *req.CustomerGSTIN)

	inv := req.ToEntity("company-1", "user-1", d("18"))
	assert.Equal(t, StatusDraft, inv.Status)
	assertDec(t, "18", inv.Items[0].GSTRate, "default gst rate")
	assert.Equal(t, "2024-04-01", inv.IssueDate.String())

	mismatch := valid()
	mismatch.ToStateCode = "27"
	assert.Error(t, mismatch.Validate())

	bad := valid()
	bad.Items = []LineItemInput{{Description: "", Quantity: d("0"), Rate: d("-1")}}
	bad.FromStateCode = "00"
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].quantity")
	assert.Contains(t, err.Error(), "from_state_code")
}
