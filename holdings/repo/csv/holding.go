package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/holdings"
)

var requiredColumns = []string{"symbol", "purchase_price", "quantity"}

// HoldingRepo reads holdings from a CSV file with a header line. Columns are
// matched by name: symbol, name, exchange, sector, purchase_price, quantity.
type HoldingRepo struct {
	Path string
}

func (r HoldingRepo) GetHoldings() ([]entities.Holding, error) {
	content, err := readCsvFile(r.Path)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, holdings.ErrEmpty
	}

	columns := make(map[string]int)
	for i, name := range content[0].fields {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(line []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(line) {
			return ""
		}
		return strings.TrimSpace(line[i])
	}

	hs := make([]entities.Holding, 0, len(content)-1)
	for _, rec := range content[1:] {
		line, lineNo := rec.fields, rec.line

		price, err := decimal.NewFromString(field(line, "purchase_price"))
		if err != nil {
			return nil, fmt.Errorf("line %d: parse purchase_price: %w", lineNo, err)
		}
		qty, err := strconv.ParseInt(field(line, "quantity"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse quantity: %w", lineNo, err)
		}

		hs = append(hs, entities.Holding{
			Symbol:        field(line, "symbol"),
			Name:          field(line, "name"),
			Exchange:      field(line, "exchange"),
			Sector:        field(line, "sector"),
			PurchasePrice: price,
			Quantity:      qty,
		})
	}

	if err := holdings.Validate(hs); err != nil {
		return nil, err
	}
	return hs, nil
}

// record is a CSV record with the line it starts on. Blank lines and quoted
// fields spanning lines make that differ from the record index.
type record struct {
	line   int
	fields []string
}

func readCsvFile(filePath string) ([]record, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1

	var records []record
	for {
		fields, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := csvReader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}

	return records, nil
}
