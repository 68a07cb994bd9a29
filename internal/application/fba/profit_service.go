package fba

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stcadmin/backend/internal/domain/fba"
	"github.com/stcadmin/backend/internal/domain/shared"
)

// FeeEstimateSource supplies the rows of an Amazon fee estimate report
type FeeEstimateSource interface {
	Fees(ctx context.Context) ([]fba.FeeEstimate, error)
}

// ProfitService recomputes per-product profit snapshots from Amazon fee
// estimate reports
type ProfitService struct {
	orderRepo  fba.OrderRepository
	regionRepo fba.RegionRepository
	profitRepo fba.ProfitRepository
	logger     *zap.Logger
}

// NewProfitService creates a new ProfitService
func NewProfitService(
	orderRepo fba.OrderRepository,
	regionRepo fba.RegionRepository,
	profitRepo fba.ProfitRepository,
	logger *zap.Logger,
) *ProfitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitService{
		orderRepo:  orderRepo,
		regionRepo: regionRepo,
		profitRepo: profitRepo,
		logger:     logger,
	}
}

// UpdateProfit rebuilds the profit snapshots for an import date from a
// fee estimate report. Fee rows whose product has never been fulfilled
// are skipped. Re-runs for the same date replace the previous import.
func (s *ProfitService) UpdateProfit(ctx context.Context, importDate time.Time, source FeeEstimateSource) (int, error) {
	fees, err := source.Fees(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read fee estimates: %w", err)
	}

	snapshots := make([]fba.ProfitSnapshot, 0, len(fees))
	for _, fee := range fees {
		order, err := s.orderRepo.LatestFulfilledByASIN(ctx, fee.ASIN)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Debug("No fulfilled order for fee estimate",
					zap.String("asin", fee.ASIN),
					zap.String("channel_sku", fee.ChannelSKU))
				continue
			}
			return 0, fmt.Errorf("failed to look up order for ASIN %s: %w", fee.ASIN, err)
		}

		region, err := s.regionRepo.FindByCountry(ctx, fee.CountryISO)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("No region for fee estimate country",
					zap.String("country", fee.CountryISO),
					zap.String("channel_sku", fee.ChannelSKU))
				continue
			}
			return 0, fmt.Errorf("failed to look up region %s: %w", fee.CountryISO, err)
		}

		snapshot, err := fba.NewProfitSnapshot(importDate, fee, order, region)
		if err != nil {
			s.logger.Warn("Skipping fee estimate",
				zap.String("channel_sku", fee.ChannelSKU),
				zap.Error(err))
			continue
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := s.profitRepo.ReplaceImport(ctx, importDate, snapshots); err != nil {
		return 0, fmt.Errorf("failed to store profit snapshots: %w", err)
	}

	s.logger.Info("Updated FBA profit",
		zap.Time("import_date", importDate),
		zap.Int("fee_rows", len(fees)),
		zap.Int("snapshots", len(snapshots)))
	return len(snapshots), nil
}

// LatestImport reports when profit figures were last recomputed
func (s *ProfitService) LatestImport(ctx context.Context) (time.Time, error) {
	return s.profitRepo.LatestImportDate(ctx)
}
