package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/foliogate/internal/taxonomy"
)

var (
	ErrFileRequired   = errors.New("portfolio file required")
	ErrFileTooLarge   = errors.New("portfolio file too large")
	ErrWrongFileType  = errors.New("portfolio file has wrong type")
	ErrEmptyFile      = errors.New("portfolio file is empty")
	ErrMissingHeaders = errors.New("portfolio file is missing headers")
)

const (
	headerSymbol        = "symbol"
	headerQuantity      = "quantity"
	headerCostBasis     = "cost_basis"
	headerTradeDate     = "trade_date"
	headerEquityBalance = "equity_balance"
)

var requiredHeaders = []string{
	headerSymbol,
	headerQuantity,
	headerCostBasis,
	headerTradeDate,
	headerEquityBalance,
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,12}$`)

const maxQuantityMagnitude = 1e9
const tradeDateLayout = "2006-01-02"

// PositionRow is one validated candidate row from an uploaded portfolio file.
type PositionRow struct {
	Symbol        string
	Quantity      float64
	CostBasis     float64
	TradeDate     time.Time
	EquityBalance float64
}

// RowError pins one taxonomy code to the data line (1-based, excluding the
// header) and field it was found on.
type RowError struct {
	Line  int           `json:"line"`
	Field string        `json:"field"`
	Code  taxonomy.Code `json:"code"`
}

// IngestPolicy performs the structural and per-row validation of an uploaded
// portfolio file. It is pure: committing the surviving rows is the store's
// job.
type IngestPolicy struct {
	maxBytes int64
}

func NewIngestPolicy(maxBytes int64) *IngestPolicy {
	return &IngestPolicy{maxBytes: maxBytes}
}

// Parse applies the structural gates in order (size, type, emptiness,
// headers); any structural failure is terminal and no row validation runs.
// Once the structure holds, every row is validated independently and all row
// errors are collected. Rows are returned only when the error list is empty.
func (policy *IngestPolicy) Parse(fileName string, data []byte) ([]PositionRow, []RowError, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if policy.maxBytes > 0 && int64(len(data)) > policy.maxBytes {
		return nil, nil, ErrFileTooLarge
	}
	if strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) != ".csv" {
		return nil, nil, ErrWrongFileType
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if err != nil {
		return nil, nil, ErrEmptyFile
	}

	columns, ok := resolveHeaderColumns(headerRecord)
	if !ok {
		return nil, nil, ErrMissingHeaders
	}

	rows := make([]PositionRow, 0)
	rowErrors := make([]RowError, 0)
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			// A field-count mismatch still yields the record; either way
			// the row is rejected rather than silently truncated.
			rowErrors = append(rowErrors, RowError{Line: line, Field: "", Code: taxonomy.CodeMalformedRow})
			if !errors.Is(err, csv.ErrFieldCount) {
				break
			}
			continue
		}

		row, errorsForRow := validatePositionRow(line, record, columns)
		if len(errorsForRow) > 0 {
			rowErrors = append(rowErrors, errorsForRow...)
			continue
		}
		rows = append(rows, row)
	}

	if line == 0 {
		return nil, nil, ErrEmptyFile
	}
	if len(rowErrors) > 0 {
		return nil, rowErrors, nil
	}
	return rows, nil, nil
}

// resolveHeaderColumns maps each required header to its column index,
// case-insensitively and independent of order. Extra columns are tolerated
// in the header; data rows must still match the declared width.
func resolveHeaderColumns(headerRecord []string) (map[string]int, bool) {
	columns := make(map[string]int, len(headerRecord))
	for index, rawName := range headerRecord {
		name := strings.ToLower(strings.TrimSpace(rawName))
		if name == "" {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = index
		}
	}
	for _, required := range requiredHeaders {
		if _, present := columns[required]; !present {
			return nil, false
		}
	}
	return columns, true
}

func validatePositionRow(line int, record []string, columns map[string]int) (PositionRow, []RowError) {
	rowErrors := make([]RowError, 0)
	fieldValue := func(header string) string {
		return strings.TrimSpace(record[columns[header]])
	}

	row := PositionRow{}

	symbol := fieldValue(headerSymbol)
	switch {
	case symbol == "":
		rowErrors = append(rowErrors, RowError{line, headerSymbol, taxonomy.CodeSymbolRequired})
	case !symbolPattern.MatchString(symbol):
		rowErrors = append(rowErrors, RowError{line, headerSymbol, taxonomy.CodeSymbolInvalid})
	default:
		row.Symbol = symbol
	}

	if quantity, rowError := parseRowNumber(line, fieldValue(headerQuantity), headerQuantity,
		taxonomy.CodeQuantityRequired, taxonomy.CodeQuantityInvalid, validQuantity); rowError != nil {
		rowErrors = append(rowErrors, *rowError)
	} else {
		row.Quantity = quantity
	}

	if costBasis, rowError := parseRowNumber(line, fieldValue(headerCostBasis), headerCostBasis,
		taxonomy.CodeCostBasisRequired, taxonomy.CodeCostBasisInvalid, validCostBasis); rowError != nil {
		rowErrors = append(rowErrors, *rowError)
	} else {
		row.CostBasis = costBasis
	}

	tradeDateValue := fieldValue(headerTradeDate)
	if tradeDateValue == "" {
		rowErrors = append(rowErrors, RowError{line, headerTradeDate, taxonomy.CodeTradeDateRequired})
	} else if tradeDate, err := time.Parse(tradeDateLayout, tradeDateValue); err != nil {
		rowErrors = append(rowErrors, RowError{line, headerTradeDate, taxonomy.CodeTradeDateInvalid})
	} else {
		row.TradeDate = tradeDate
	}

	if equityBalance, rowError := parseRowNumber(line, fieldValue(headerEquityBalance), headerEquityBalance,
		taxonomy.CodeEquityBalanceRequired, taxonomy.CodeEquityBalanceInvalid, validEquityBalance); rowError != nil {
		rowErrors = append(rowErrors, *rowError)
	} else {
		row.EquityBalance = equityBalance
	}

	return row, rowErrors
}

func parseRowNumber(line int, value string, field string, requiredCode taxonomy.Code, invalidCode taxonomy.Code, valid func(float64) bool) (float64, *RowError) {
	if value == "" {
		return 0, &RowError{Line: line, Field: field, Code: requiredCode}
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) || !valid(number) {
		return 0, &RowError{Line: line, Field: field, Code: invalidCode}
	}
	return number, nil
}

func validQuantity(value float64) bool {
	return value != 0 && math.Abs(value) <= maxQuantityMagnitude
}

func validCostBasis(value float64) bool {
	return value > 0
}

func validEquityBalance(value float64) bool {
	return value >= 0
}
