// Package csvio reads transaction records from, and writes account rows to,
// comma-separated text.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits kept on input and printed on output
const AmountPlaces = 4

// ErrBadHeader is returned when the header row lacks a required column
var ErrBadHeader = errors.New("input header must contain type, client and tx columns")

// RowError describes a malformed row. The reader stays usable after returning one.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader yields TransactionRecords from a header-led CSV stream, one row at a time
type Reader struct {
	r       *csv.Reader
	columns map[string]int
}

// NewReader wraps src. The header is read on the first call to Read.
func NewReader(src io.Reader) *Reader {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // dispute rows may omit the trailing amount column
	r.TrimLeadingSpace = true
	r.ReuseRecord = true
	return &Reader{r: r}
}

// Read returns the next record, io.EOF at the end of input, a *RowError for a row
// that should be skipped, or any other error when the stream itself failed.
func (rd *Reader) Read() (models.TransactionRecord, error) {
	if rd.columns == nil {
		if err := rd.readHeader(); err != nil {
			return models.TransactionRecord{}, err
		}
	}

	fields, err := rd.r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return models.TransactionRecord{}, &RowError{Line: parseErr.Line, Err: parseErr.Err}
		}
		return models.TransactionRecord{}, err
	}

	line, _ := rd.r.FieldPos(0)
	rec, err := rd.parse(fields)
	if err != nil {
		return models.TransactionRecord{}, &RowError{Line: line, Err: err}
	}
	return rec, nil
}

func (rd *Reader) readHeader() error {
	header, err := rd.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty input", ErrBadHeader)
		}
		return err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("%w: missing %q", ErrBadHeader, required)
		}
	}
	rd.columns = columns
	return nil
}

func (rd *Reader) field(fields []string, name string) string {
	i, ok := rd.columns[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func (rd *Reader) parse(fields []string) (models.TransactionRecord, error) {
	txType, err := models.ParseTransactionType(rd.field(fields, "type"))
	if err != nil {
		return models.TransactionRecord{}, err
	}

	client, err := strconv.ParseUint(rd.field(fields, "client"), 10, 16)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("invalid client: %w", err)
	}

	tx, err := strconv.ParseUint(rd.field(fields, "tx"), 10, 32)
	if err != nil {
		return models.TransactionRecord{}, fmt.Errorf("invalid tx: %w", err)
	}

	return models.TransactionRecord{
		Type:     txType,
		ClientID: uint16(client),
		TxID:     uint32(tx),
		Amount:   parseAmount(rd.field(fields, "amount")),
	}, nil
}

// parseAmount treats blank and unparseable values alike as absent
func parseAmount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d.Round(AmountPlaces))
}
