package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Vikash02022000/FinSight/internal/columns"
	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/pkg/contracts/domain"
)

// Engine derives INR counter-trades for a resolved trade table.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a mirroring engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "mirror_engine"))}
}

// Result is the outcome of one mirroring pass. Warnings describe every
// degradation the pass survived; a Result with warnings is still a success.
type Result struct {
	Table    domain.Table
	Warnings []domain.Warning
	Mirrored int
}

// Mirror transforms the table. Original rows always survive unchanged (bar
// ordering); every non-INR row additionally yields one mirrored row. The
// mapping must bind all required roles; Resolve guarantees that, but the
// engine re-checks so it cannot index a column that is not there.
func (e *Engine) Mirror(ctx context.Context, table domain.Table, mapping columns.Mapping) (*Result, error) {
	idx, err := bindIndexes(table, mapping)
	if err != nil {
		return nil, err
	}

	var nonINR []int
	for i, row := range table.Rows {
		if !isINRQuoted(row[idx.market]) {
			nonINR = append(nonINR, i)
		}
	}

	if len(nonINR) == 0 {
		e.logger.InfoContext(ctx, "no non-INR rows found, nothing to mirror",
			slog.Int("rows", table.RowCount()))
		return &Result{
			Table: table,
			Warnings: []domain.Warning{domain.NewWarning(domain.NoteNoMirroringNeeded,
				"no non-INR rows found, nothing to mirror; output equals input")},
		}, nil
	}

	conv := newConverter(idx.price, idx.total, idx.rate)
	mirrored := make([][]string, 0, len(nonINR))
	for _, i := range nonINR {
		row := table.CloneRow(i)
		quote := ExtractQuote(row[idx.market])
		row[idx.market] = quote + "INR"
		row[idx.tradeType] = domain.ParseTradeSide(row[idx.tradeType]).Flip().String()
		conv.convertRow(row)
		mirrored = append(mirrored, row)
	}

	var warnings []domain.Warning
	switch {
	case !conv.enabled():
		warnings = append(warnings, domain.NewWarning(domain.WarnConversionDegraded,
			"no USD-INR rate column found; mirrored price/total are left as unconverted originals and may need manual correction"))
	case conv.degraded:
		warnings = append(warnings, domain.NewWarning(domain.WarnConversionDegraded,
			"some price/total/rate cells were not numeric; affected mirrored values are left empty"))
	}

	combined := make([][]string, 0, len(table.Rows)+len(mirrored))
	combined = append(combined, table.Rows...)
	combined = append(combined, mirrored...)

	if sorted := sortByDate(combined, idx.date); !sorted {
		warnings = append(warnings, domain.NewWarning(domain.WarnDateSortSkipped,
			"not every date cell parsed; output keeps concatenation order (originals before mirrors)"))
	}

	e.logger.InfoContext(ctx, "mirroring complete",
		slog.Int("rows_in", table.RowCount()),
		slog.Int("rows_mirrored", len(mirrored)),
		slog.Int("warnings", len(warnings)))

	return &Result{
		Table:    domain.Table{Headers: table.Headers, Rows: combined},
		Warnings: warnings,
		Mirrored: len(mirrored),
	}, nil
}

// roleIndexes holds resolved column positions. rate is -1 when the optional
// USD-INR role is unbound.
type roleIndexes struct {
	market    int
	date      int
	tradeType int
	quantity  int
	price     int
	total     int
	rate      int
}

func bindIndexes(table domain.Table, mapping columns.Mapping) (roleIndexes, error) {
	required := map[columns.Role]*int{}
	idx := roleIndexes{rate: -1}
	required[columns.RoleMarket] = &idx.market
	required[columns.RoleDate] = &idx.date
	required[columns.RoleTradeType] = &idx.tradeType
	required[columns.RoleQuantity] = &idx.quantity
	required[columns.RolePrice] = &idx.price
	required[columns.RoleTotal] = &idx.total

	for _, role := range columns.RequiredRoles {
		col, ok := mapping.Column(role)
		if !ok {
			return idx, apperrors.NewValidationError(fmt.Sprintf("role %q is not bound to any column", role))
		}
		pos := table.ColumnIndex(col)
		if pos < 0 {
			return idx, apperrors.NewValidationError(fmt.Sprintf("column %q (role %q) is not present in the table", col, role))
		}
		*required[role] = pos
	}

	if col, ok := mapping.Column(columns.RoleUSDINR); ok {
		idx.rate = table.ColumnIndex(col)
	}
	return idx, nil
}

// sortByDate sorts rows ascending by their parsed date. The sort only
// happens when every row parses; a partial sort would interleave parsed and
// unparsed rows arbitrarily, so the whole step is skipped instead.
func sortByDate(rows [][]string, dateIdx int) bool {
	type datedRow struct {
		t   time.Time
		row []string
	}
	dated := make([]datedRow, len(rows))
	for i, row := range rows {
		t, ok := parseDate(row[dateIdx])
		if !ok {
			return false
		}
		dated[i] = datedRow{t: t, row: row}
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].t.Before(dated[j].t) })
	for i := range dated {
		rows[i] = dated[i].row
	}
	return true
}
