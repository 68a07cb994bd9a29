// Package amazon reads Amazon seller report files.
package amazon

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

// Column headers of the GET_FBA_ESTIMATED_FBA_FEES_TXT_DATA report.
const (
	columnSKU         = "sku"
	columnASIN        = "asin"
	columnStore       = "amazon-store"
	columnName        = "product-name"
	columnPrice       = "your-price"
	columnReferralFee = "estimated-referral-fee-per-unit"
	columnClosingFee  = "estimated-variable-closing-fee"
	columnHandlingFee = "estimated-order-handling-fee-per-order"
)

// FeeReportFile reads fee estimates from a tab separated Amazon fee
// estimate report on disk.
type FeeReportFile struct {
	path string
}

// NewFeeReportFile creates a FeeReportFile for a report at path
func NewFeeReportFile(path string) *FeeReportFile {
	return &FeeReportFile{path: path}
}

// Fees parses the report and returns one fee estimate per row
func (f *FeeReportFile) Fees(ctx context.Context) ([]fba.FeeEstimate, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fee report: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse fee report: %w", err)
	}
	if len(rows) == 0 {
		return nil, shared.NewDomainError("MALFORMED_INPUT", "Fee report has no header row")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range []string{
		columnSKU, columnASIN, columnStore, columnName,
		columnPrice, columnReferralFee, columnClosingFee, columnHandlingFee,
	} {
		if _, ok := columns[required]; !ok {
			return nil, shared.NewDomainError(
				"MALFORMED_INPUT", fmt.Sprintf("Fee report is missing column %q", required))
		}
	}

	fees := make([]fba.FeeEstimate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fee, err := parseFeeRow(columns, row)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

func parseFeeRow(columns map[string]int, row []string) (fba.FeeEstimate, error) {
	field := func(name string) string {
		return row[columns[name]]
	}

	sellingPrice, err := parsePence(field(columnPrice))
	if err != nil {
		return fba.FeeEstimate{}, err
	}
	referralFee, err := parsePence(field(columnReferralFee))
	if err != nil {
		return fba.FeeEstimate{}, err
	}
	closingFee, err := parsePence(field(columnClosingFee))
	if err != nil {
		return fba.FeeEstimate{}, err
	}
	handlingFee, err := parsePence(field(columnHandlingFee))
	if err != nil {
		return fba.FeeEstimate{}, err
	}

	return fba.FeeEstimate{
		ChannelSKU:   field(columnSKU),
		ASIN:         field(columnASIN),
		CountryISO:   field(columnStore),
		ListingName:  field(columnName),
		SellingPrice: sellingPrice,
		ReferralFee:  referralFee,
		ClosingFee:   closingFee,
		HandlingFee:  handlingFee,
	}, nil
}

// parsePence converts a report money value to pence. Amazon writes "--"
// for fees that do not apply.
func parsePence(value string) (int64, error) {
	if value == "" || value == "--" {
		return 0, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, shared.NewDomainError(
			"MALFORMED_INPUT", fmt.Sprintf("Invalid money value %q in fee report", value))
	}
	return amount.Mul(decimal.NewFromInt(100)).IntPart(), nil
}
