// Package invoice implements the customizable invoice line-item model: a set
// of columns (four built-ins plus user-defined surcharge/discount fields), a
// set of rows, and the derivation of per-row modified selling price, per-row
// profit, and document totals. The package is pure state + arithmetic; it has
// no knowledge of storage, HTTP, or the session that owns it.
package invoice

import (
	"regexp"
	"strconv"
	"strings"
)

// TaxRate is the fixed document tax applied to the subtotal.
const TaxRate = 0.05

// Operation says how a custom column modifies the running selling price.
type Operation string

const (
	OpNone     Operation = ""
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

// Kind is the display type of a column.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
)

// Built-in column ids. These are always present and never carry an operation.
const (
	ColProduct      = "product"
	ColUnit         = "unit"
	ColSellingPrice = "sellingPrice"
	ColCost         = "cost"
)

// Column describes one attribute displayed per row. Operation and Percentage
// are only meaningful on non-built-in columns.
type Column struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	BuiltIn    bool      `json:"is_built_in"`
	Operation  Operation `json:"operation,omitempty"`
	Percentage bool      `json:"is_percentage,omitempty"`
}

// Cell is a raw user-entered value: numeric-or-blank. Values are stored
// verbatim; coercion to a number happens only at derivation time.
type Cell string

// Blank reports whether the cell holds no value. A blank cell is skipped
// entirely during price derivation, which is different from holding zero.
func (c Cell) Blank() bool {
	return c == ""
}

// NumberOr coerces the cell to a number, falling back to def for blank or
// malformed input. Every numeric read in this package funnels through here so
// the permissive-parsing contract lives in one place.
func (c Cell) NumberOr(def float64) float64 {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return def
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return n
}

// Row is one line item. Custom holds one entry per user-defined column,
// keyed by column id.
type Row struct {
	ID           string          `json:"id"`
	Product      Cell            `json:"product"`
	Unit         Cell            `json:"unit"`
	SellingPrice Cell            `json:"selling_price"`
	Cost         Cell            `json:"cost"`
	Custom       map[string]Cell `json:"custom,omitempty"`
}

// Totals are the document-level aggregates. TotalProfit is accumulated
// independently of Subtotal, not derived from it.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	TotalProfit float64 `json:"total_profit"`
}

// SeedItem is one sale line used to hydrate an engine from a fetched sale.
type SeedItem struct {
	Product   string
	Quantity  float64
	UnitPrice float64
	CostPrice float64
}

// Engine owns the ordered column list and the rows of one invoice draft.
// Column order is insertion order and is semantically significant: percentage
// columns apply to the running price, so reordering changes results.
type Engine struct {
	columns []Column
	rows    []Row
	nextRow int
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// New returns an engine with the four built-in columns and no rows.
func New() *Engine {
	return &Engine{
		columns: []Column{
			{ID: ColProduct, Name: "Product", Kind: KindText, BuiltIn: true},
			{ID: ColUnit, Name: "Unit", Kind: KindNumber, BuiltIn: true},
			{ID: ColSellingPrice, Name: "Selling Price", Kind: KindNumber, BuiltIn: true},
			{ID: ColCost, Name: "Cost", Kind: KindNumber, BuiltIn: true},
		},
	}
}

// Restore rebuilds an engine from a previously exported column/row set, e.g.
// one round-tripped through an API client. Built-in columns are re-pinned in
// canonical order regardless of input; custom columns keep their given order.
// Custom columns with an unknown operation or a duplicate id are dropped, and
// every surviving row is normalized to carry exactly the surviving custom keys.
func Restore(columns []Column, rows []Row) *Engine {
	e := New()
	for _, col := range columns {
		if isBuiltInID(col.ID) {
			continue
		}
		if col.Operation != OpAdd && col.Operation != OpSubtract {
			continue
		}
		if e.findColumn(col.ID) != nil {
			continue
		}
		col.BuiltIn = false
		col.Kind = KindNumber
		e.columns = append(e.columns, col)
	}
	for _, row := range rows {
		r := Row{
			ID:           row.ID,
			Product:      row.Product,
			Unit:         row.Unit,
			SellingPrice: row.SellingPrice,
			Cost:         row.Cost,
			Custom:       make(map[string]Cell),
		}
		if r.ID == "" {
			e.nextRow++
			r.ID = "row-" + strconv.Itoa(e.nextRow)
		}
		for _, col := range e.columns {
			if col.BuiltIn {
				continue
			}
			r.Custom[col.ID] = row.Custom[col.ID]
		}
		e.rows = append(e.rows, r)
	}
	return e
}

// Seed appends one row per sale item, mapping product name, quantity, unit
// price and cost price onto the built-in cells.
func (e *Engine) Seed(items []SeedItem) {
	for _, item := range items {
		row := e.AddRow()
		row.Product = Cell(item.Product)
		row.Unit = Cell(formatNumber(item.Quantity))
		row.SellingPrice = Cell(formatNumber(item.UnitPrice))
		row.Cost = Cell(formatNumber(item.CostPrice))
	}
}

// AddColumn appends a user-defined column and backfills every existing row
// with a blank cell for it. The id is derived from the name: lowercased, with
// whitespace runs collapsed to underscores. Invalid input never raises an
// error: an empty name, an operation outside add/subtract, or an id collision
// (including with a built-in) makes the call a no-op and returns false.
func (e *Engine) AddColumn(name string, op Operation, percentage bool) (Column, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Column{}, false
	}
	if op != OpAdd && op != OpSubtract {
		return Column{}, false
	}
	id := whitespaceRun.ReplaceAllString(strings.ToLower(name), "_")
	if e.findColumn(id) != nil || isBuiltInID(id) {
		return Column{}, false
	}

	col := Column{
		ID:         id,
		Name:       name,
		Kind:       KindNumber,
		Operation:  op,
		Percentage: percentage,
	}
	e.columns = append(e.columns, col)
	for i := range e.rows {
		if e.rows[i].Custom == nil {
			e.rows[i].Custom = make(map[string]Cell)
		}
		e.rows[i].Custom[id] = ""
	}
	return col, true
}

// RemoveColumn deletes a custom column and strips its key from every row.
// Built-in and unknown ids are a no-op.
func (e *Engine) RemoveColumn(id string) {
	for i, col := range e.columns {
		if col.ID != id {
			continue
		}
		if col.BuiltIn {
			return
		}
		e.columns = append(e.columns[:i], e.columns[i+1:]...)
		for j := range e.rows {
			delete(e.rows[j].Custom, id)
		}
		return
	}
}

// AddRow appends an empty row carrying a blank cell for every custom column
// and returns a pointer to it. Row ids come from a monotonic counter and are
// stable across edits.
func (e *Engine) AddRow() *Row {
	e.nextRow++
	row := Row{
		ID:     "row-" + strconv.Itoa(e.nextRow),
		Custom: make(map[string]Cell),
	}
	for _, col := range e.columns {
		if !col.BuiltIn {
			row.Custom[col.ID] = ""
		}
	}
	e.rows = append(e.rows, row)
	return &e.rows[len(e.rows)-1]
}

// RemoveRow deletes the row with the given id; unknown ids are a no-op.
func (e *Engine) RemoveRow(id string) {
	for i, row := range e.rows {
		if row.ID == id {
			e.rows = append(e.rows[:i], e.rows[i+1:]...)
			return
		}
	}
}

// UpdateCell stores the raw value for a row/column pair. No coercion happens
// here; blank and malformed values are resolved at derivation time. Unknown
// row or column ids are a no-op.
func (e *Engine) UpdateCell(rowID, columnID string, value string) {
	row := e.findRow(rowID)
	if row == nil {
		return
	}
	switch columnID {
	case ColProduct:
		row.Product = Cell(value)
	case ColUnit:
		row.Unit = Cell(value)
	case ColSellingPrice:
		row.SellingPrice = Cell(value)
	case ColCost:
		row.Cost = Cell(value)
	default:
		col := e.findColumn(columnID)
		if col == nil || col.BuiltIn {
			return
		}
		if row.Custom == nil {
			row.Custom = make(map[string]Cell)
		}
		row.Custom[columnID] = Cell(value)
	}
}

// ModifiedSellingPrice derives a row's selling price by folding every custom
// column over the base price in column order. Percentage columns apply to the
// running price, not the base, so earlier columns change the basis of later
// ones. Blank cells are skipped entirely; malformed cells coerce to zero.
func (e *Engine) ModifiedSellingPrice(row Row) float64 {
	price := row.SellingPrice.NumberOr(0)
	for _, col := range e.columns {
		if col.Operation == OpNone {
			continue
		}
		cell, ok := row.Custom[col.ID]
		if !ok || cell.Blank() {
			continue
		}
		value := cell.NumberOr(0)
		delta := value
		if col.Percentage {
			delta = price * value / 100
		}
		if col.Operation == OpAdd {
			price += delta
		} else {
			price -= delta
		}
	}
	return price
}

// Profit is (modified selling price - cost) * unit. The unit defaults to 1
// when blank or malformed (an unfilled quantity still sells one), while cost
// defaults to 0. Full precision is kept; rounding is a display concern.
func (e *Engine) Profit(row Row) float64 {
	unit := row.Unit.NumberOr(1)
	if unit == 0 {
		unit = 1
	}
	return (e.ModifiedSellingPrice(row) - row.Cost.NumberOr(0)) * unit
}

// Totals recomputes the document aggregates from scratch. Subtotal and total
// profit are accumulated in separate passes on purpose: total profit is the
// sum of per-row profits, not total minus total cost.
func (e *Engine) Totals() Totals {
	var t Totals
	for _, row := range e.rows {
		unit := row.Unit.NumberOr(1)
		if unit == 0 {
			unit = 1
		}
		t.Subtotal += e.ModifiedSellingPrice(row) * unit
	}
	t.Tax = t.Subtotal * TaxRate
	t.Total = t.Subtotal + t.Tax
	for _, row := range e.rows {
		t.TotalProfit += e.Profit(row)
	}
	return t
}

// Columns returns the column list in derivation order.
func (e *Engine) Columns() []Column {
	out := make([]Column, len(e.columns))
	copy(out, e.columns)
	return out
}

// Rows returns a copy of the current rows.
func (e *Engine) Rows() []Row {
	out := make([]Row, len(e.rows))
	for i, row := range e.rows {
		out[i] = row
		out[i].Custom = make(map[string]Cell, len(row.Custom))
		for k, v := range row.Custom {
			out[i].Custom[k] = v
		}
	}
	return out
}

func (e *Engine) findColumn(id string) *Column {
	for i := range e.columns {
		if e.columns[i].ID == id {
			return &e.columns[i]
		}
	}
	return nil
}

func (e *Engine) findRow(id string) *Row {
	for i := range e.rows {
		if e.rows[i].ID == id {
			return &e.rows[i]
		}
	}
	return nil
}

func isBuiltInID(id string) bool {
	switch id {
	case ColProduct, ColUnit, ColSellingPrice, ColCost:
		return true
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
