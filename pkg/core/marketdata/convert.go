package marketdata

import (
	"strings"
	"time"
	"unicode"

	"finboard/pkg/core/finance"
)

// statement fields that are bookkeeping, not line items.
var skipKeys = map[string]bool{
	"maxAge":  true,
	"endDate": true,
}

// statementsToTable converts one module's period array (most recent first)
// into a labeled table: columns are the period end dates, rows are the union
// of line-item keys in first-appearance order, cells keep the raw values for
// the sanitizer to deal with downstream.
func statementsToTable(periods []orderedBlock) *finance.Statement {
	if len(periods) == 0 {
		return &finance.Statement{}
	}

	columns := make([]string, len(periods))
	for i := range periods {
		columns[i] = periodLabel(&periods[i])
	}

	var keys []string
	seen := map[string]bool{}
	for i := range periods {
		for _, it := range periods[i].Items {
			if skipKeys[it.Key] || seen[it.Key] {
				continue
			}
			seen[it.Key] = true
			keys = append(keys, it.Key)
		}
	}
	if len(keys) == 0 {
		return &finance.Statement{}
	}

	index := make([]string, len(keys))
	for i, k := range keys {
		index[i] = humanizeKey(k)
	}

	st := finance.NewStatement(index, columns)
	for i, k := range keys {
		for j := range periods {
			if v, ok := periods[j].get(k); ok {
				st.Cells[i][j] = v.val
			} else {
				st.Cells[i][j] = finance.Absent()
			}
		}
	}
	return st
}

// periodLabel prefers the provider's formatted end date, falling back to the
// raw epoch value.
func periodLabel(period *orderedBlock) string {
	end, ok := period.get("endDate")
	if !ok {
		return ""
	}
	if end.fmtStr != "" {
		return end.fmtStr
	}
	if f, ok := finance.CleanScalar(end.val); ok {
		return time.Unix(int64(f), 0).UTC().Format("2006-01-02")
	}
	return ""
}

// infoToTable flattens the assetProfile and price blocks into a single-column
// key/value table, keeping document order. Nested objects (officer lists and
// the like) are not line items and are skipped at decode time already.
func infoToTable(blocks ...*orderedBlock) *finance.Statement {
	var index []string
	var cells []finance.Value
	seen := map[string]bool{}

	for _, b := range blocks {
		if b == nil {
			continue
		}
		for _, it := range b.Items {
			if seen[it.Key] {
				continue
			}
			seen[it.Key] = true
			index = append(index, it.Key)
			cells = append(cells, it.Val.val)
		}
	}
	if len(index) == 0 {
		return &finance.Statement{}
	}

	st := finance.NewStatement(index, []string{"value"})
	for i, v := range cells {
		st.Cells[i][0] = v
	}
	return st
}

// humanizeKey turns the provider's camelCase line-item keys into display
// labels: "totalRevenue" -> "Total Revenue", "netIncomeApplicableToCommonShares"
// -> "Net Income Applicable To Common Shares".
func humanizeKey(key string) string {
	if key == "" {
		return key
	}

	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
