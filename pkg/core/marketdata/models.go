package marketdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"finboard/pkg/core/finance"
)

// chartResponse is the shape of the v8 chart endpoint. Close prices arrive as
// a nullable array aligned with the timestamp array.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// quoteSummaryResponse is the shape of the v10 quoteSummary endpoint.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

// The three statement modules share a payload shape but differ in the JSON
// key their period array lives under.
type quoteSummaryResult struct {
	IncomeStatementHistory   *incomeHistory   `json:"incomeStatementHistory"`
	BalanceSheetHistory      *balanceHistory  `json:"balanceSheetHistory"`
	CashflowStatementHistory *cashflowHistory `json:"cashflowStatementHistory"`
	AssetProfile             *orderedBlock    `json:"assetProfile"`
	Price                    *orderedBlock    `json:"price"`
}

type incomeHistory struct {
	Statements []orderedBlock `json:"incomeStatementHistory"`
}

type balanceHistory struct {
	Statements []orderedBlock `json:"balanceSheetStatements"`
}

type cashflowHistory struct {
	Statements []orderedBlock `json:"cashflowStatements"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider api error %s: %s", e.Code, e.Description)
}

// lineItem is one key/value pair of a statement period, in document order.
type lineItem struct {
	Key string
	Val fieldValue
}

// orderedBlock is a JSON object decoded with its key order preserved. A plain
// map would randomize row order between requests, and statement output must
// be deterministic.
type orderedBlock struct {
	Items []lineItem
}

func (b *orderedBlock) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var v fieldValue
		if err := dec.Decode(&v); err != nil {
			return err
		}
		b.Items = append(b.Items, lineItem{Key: key, Val: v})
	}

	_, err = dec.Token() // closing brace
	return err
}

func (b *orderedBlock) get(key string) (fieldValue, bool) {
	if b == nil {
		return fieldValue{}, false
	}
	for _, it := range b.Items {
		if it.Key == key {
			return it.Val, true
		}
	}
	return fieldValue{}, false
}

// fieldValue is a single provider value in any of the shapes the API emits:
// a bare scalar, a {"raw": ..., "fmt": ...} wrapper, an empty object for
// missing data, or an array of any of those.
type fieldValue struct {
	val    finance.Value
	fmtStr string // the "fmt" rendering when the payload was a raw/fmt wrapper
}

func (f *fieldValue) UnmarshalJSON(data []byte) error {
	f.val = finance.Absent()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		var obj struct {
			Raw json.RawMessage `json:"raw"`
			Fmt string          `json:"fmt"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil // unrecognized object shape counts as missing
		}
		f.fmtStr = obj.Fmt
		if len(obj.Raw) > 0 {
			f.val = scalarValue(obj.Raw)
		}
	case '[':
		var items []fieldValue
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		vals := make([]finance.Value, len(items))
		for i, it := range items {
			vals[i] = it.val
		}
		f.val = finance.List(vals...)
	default:
		f.val = scalarValue(trimmed)
	}
	return nil
}

// scalarValue maps a raw JSON scalar onto the domain variant.
func scalarValue(raw json.RawMessage) finance.Value {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return finance.Absent()
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return finance.Absent()
		}
		return finance.Text(s)
	}
	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		return finance.Text(string(trimmed))
	}
	if n, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
		return finance.Number(n)
	}
	return finance.Absent()
}
