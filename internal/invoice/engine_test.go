package invoice

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func newRowWith(e *Engine, selling, unit, cost string) *Row {
	row := e.AddRow()
	row.SellingPrice = Cell(selling)
	row.Unit = Cell(unit)
	row.Cost = Cell(cost)
	return row
}

func TestColumnOrderDrivesComputation(t *testing.T) {
	// add 10 flat, then subtract 10% of the running price:
	// (100 + 10) - 11 = 99
	e := New()
	newRowWith(e, "100", "1", "0")
	e.AddColumn("Delivery", OpAdd, false)
	e.AddColumn("Discount", OpSubtract, true)
	e.UpdateCell("row-1", "delivery", "10")
	e.UpdateCell("row-1", "discount", "10")

	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 99) {
		t.Fatalf("add-then-subtract: got %v, want 99", got)
	}

	// reversed order: (100 - 10) + 10 = 100
	e2 := New()
	newRowWith(e2, "100", "1", "0")
	e2.AddColumn("Discount", OpSubtract, true)
	e2.AddColumn("Delivery", OpAdd, false)
	e2.UpdateCell("row-1", "discount", "10")
	e2.UpdateCell("row-1", "delivery", "10")

	if got := e2.ModifiedSellingPrice(e2.Rows()[0]); !almostEqual(got, 100) {
		t.Fatalf("subtract-then-add: got %v, want 100", got)
	}
}

func TestPercentageAppliesToRunningPrice(t *testing.T) {
	e := New()
	newRowWith(e, "200", "1", "0")
	e.AddColumn("Markup", OpAdd, true)
	e.UpdateCell("row-1", "markup", "50")

	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 300) {
		t.Fatalf("50%% of 200: got %v, want 300", got)
	}

	// stacked percentages compound: 100 +10% = 110, +10% = 121
	e2 := New()
	newRowWith(e2, "100", "1", "0")
	e2.AddColumn("First", OpAdd, true)
	e2.AddColumn("Second", OpAdd, true)
	e2.UpdateCell("row-1", "first", "10")
	e2.UpdateCell("row-1", "second", "10")

	if got := e2.ModifiedSellingPrice(e2.Rows()[0]); !almostEqual(got, 121) {
		t.Fatalf("compounded percentages: got %v, want 121", got)
	}
}

func TestBlankCellIsSkippedNotZero(t *testing.T) {
	e := New()
	newRowWith(e, "80", "1", "0")
	e.AddColumn("Service Charge", OpAdd, false)
	e.AddColumn("Discount", OpSubtract, false)
	e.UpdateCell("row-1", "discount", "5")
	// service_charge stays blank

	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 75) {
		t.Fatalf("blank column applied: got %v, want 75", got)
	}
}

func TestMalformedNumbersCoerceToDefaults(t *testing.T) {
	e := New()
	newRowWith(e, "not-a-number", "x", "oops")
	e.AddColumn("Fee", OpAdd, false)
	e.UpdateCell("row-1", "fee", "garbage")

	row := e.Rows()[0]
	if got := e.ModifiedSellingPrice(row); !almostEqual(got, 0) {
		t.Fatalf("malformed price: got %v, want 0", got)
	}
	// profit = (0 - 0) * 1
	if got := e.Profit(row); !almostEqual(got, 0) {
		t.Fatalf("malformed everything: got %v, want 0", got)
	}
}

func TestProfitDefaultsUnitToOne(t *testing.T) {
	e := New()
	newRowWith(e, "50", "", "30")

	if got := e.Profit(e.Rows()[0]); !almostEqual(got, 20) {
		t.Fatalf("blank unit: got %v, want 20", got)
	}

	// explicit zero quantity behaves like one as well
	e2 := New()
	newRowWith(e2, "50", "0", "30")
	if got := e2.Profit(e2.Rows()[0]); !almostEqual(got, 20) {
		t.Fatalf("zero unit: got %v, want 20", got)
	}
}

func TestTotalsAggregation(t *testing.T) {
	e := New()
	newRowWith(e, "100", "2", "60")
	newRowWith(e, "50", "1", "20")

	got := e.Totals()
	if !almostEqual(got.Subtotal, 250) {
		t.Errorf("subtotal: got %v, want 250", got.Subtotal)
	}
	if !almostEqual(got.Tax, 12.5) {
		t.Errorf("tax: got %v, want 12.5", got.Tax)
	}
	if !almostEqual(got.Total, 262.5) {
		t.Errorf("total: got %v, want 262.5", got.Total)
	}
	if !almostEqual(got.TotalProfit, 110) {
		t.Errorf("total profit: got %v, want 110", got.TotalProfit)
	}
}

func TestTotalsAreIdempotent(t *testing.T) {
	e := New()
	newRowWith(e, "100", "3", "40")
	e.AddColumn("Discount", OpSubtract, true)
	e.UpdateCell("row-1", "discount", "10")

	first := e.Totals()
	second := e.Totals()
	if first != second {
		t.Fatalf("totals changed between reads: %+v vs %+v", first, second)
	}
}

func TestRemoveColumnClearsRowData(t *testing.T) {
	e := New()
	newRowWith(e, "100", "1", "0")
	e.AddColumn("Fee", OpAdd, false)
	e.UpdateCell("row-1", "fee", "25")

	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 125) {
		t.Fatalf("before removal: got %v, want 125", got)
	}

	e.RemoveColumn("fee")
	row := e.Rows()[0]
	if _, ok := row.Custom["fee"]; ok {
		t.Fatalf("row still carries removed column key")
	}
	if got := e.ModifiedSellingPrice(row); !almostEqual(got, 100) {
		t.Fatalf("after removal: got %v, want 100", got)
	}

	// re-adding under a different name starts from a clean slate
	if _, ok := e.AddColumn("Handling Fee", OpAdd, false); !ok {
		t.Fatalf("re-add failed")
	}
	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 100) {
		t.Fatalf("stale value survived re-add: got %v, want 100", got)
	}
}

func TestAddColumnValidation(t *testing.T) {
	e := New()
	newRowWith(e, "10", "1", "5")

	if _, ok := e.AddColumn("   ", OpAdd, false); ok {
		t.Errorf("whitespace-only name accepted")
	}
	if _, ok := e.AddColumn("Fee", Operation("multiply"), false); ok {
		t.Errorf("unknown operation accepted")
	}
	if _, ok := e.AddColumn("Cost", OpAdd, false); ok {
		t.Errorf("collision with built-in id accepted")
	}

	col, ok := e.AddColumn("Late Fee", OpAdd, false)
	if !ok {
		t.Fatalf("valid column rejected")
	}
	if col.ID != "late_fee" {
		t.Errorf("slug: got %q, want %q", col.ID, "late_fee")
	}
	if _, ok := e.AddColumn("late  FEE", OpSubtract, false); ok {
		t.Errorf("duplicate slug accepted")
	}

	// every row was backfilled with a blank cell
	for _, row := range e.Rows() {
		if _, present := row.Custom["late_fee"]; !present {
			t.Errorf("row %s missing backfilled key", row.ID)
		}
	}
}

func TestRemovalOfUnknownIDsIsNoOp(t *testing.T) {
	e := New()
	newRowWith(e, "10", "1", "5")

	e.RemoveColumn("does_not_exist")
	e.RemoveColumn(ColSellingPrice) // built-ins are not removable
	e.RemoveRow("row-99")

	if len(e.Columns()) != 4 {
		t.Fatalf("column count changed: %d", len(e.Columns()))
	}
	if len(e.Rows()) != 1 {
		t.Fatalf("row count changed: %d", len(e.Rows()))
	}
}

func TestSeedMapsSaleItems(t *testing.T) {
	e := New()
	e.Seed([]SeedItem{
		{Product: "Click Fan", Quantity: 2, UnitPrice: 3000, CostPrice: 2500},
		{Product: "Light Bulb", Quantity: 3, UnitPrice: 600, CostPrice: 400},
	})

	rows := e.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].Product != "Click Fan" || rows[0].SellingPrice != "3000" {
		t.Errorf("first row mapped badly: %+v", rows[0])
	}

	got := e.Totals()
	if !almostEqual(got.Subtotal, 2*3000+3*600) {
		t.Errorf("seeded subtotal: got %v, want %v", got.Subtotal, 7800.0)
	}
	if !almostEqual(got.TotalProfit, 2*500+3*200) {
		t.Errorf("seeded profit: got %v, want %v", got.TotalProfit, 1600.0)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	e := New()
	newRowWith(e, "100", "2", "70")
	e.AddColumn("Discount", OpSubtract, true)
	e.UpdateCell("row-1", "discount", "10")

	restored := Restore(e.Columns(), e.Rows())
	if got, want := restored.Totals(), e.Totals(); got != want {
		t.Fatalf("round trip changed totals: %+v vs %+v", got, want)
	}
}

func TestRestoreDropsInvalidColumns(t *testing.T) {
	cols := []Column{
		{ID: "sellingPrice", Name: "Selling Price", Operation: OpAdd}, // built-in id
		{ID: "fee", Name: "Fee", Operation: Operation("bogus")},
		{ID: "discount", Name: "Discount", Operation: OpSubtract},
		{ID: "discount", Name: "Dup", Operation: OpAdd},
	}
	rows := []Row{{
		ID:           "row-1",
		SellingPrice: "100",
		Custom:       map[string]Cell{"discount": "25", "fee": "5"},
	}}

	e := Restore(cols, rows)
	custom := 0
	for _, col := range e.Columns() {
		if !col.BuiltIn {
			custom++
		}
	}
	if custom != 1 {
		t.Fatalf("surviving custom columns: got %d, want 1", custom)
	}
	if got := e.ModifiedSellingPrice(e.Rows()[0]); !almostEqual(got, 75) {
		t.Fatalf("restored derivation: got %v, want 75", got)
	}
}
