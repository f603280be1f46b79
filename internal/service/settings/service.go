package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/events"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
	bus *events.Bus
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			// No row yet: everything at defaults, penalty disabled.
			return settings.SettingsResponse{
				CompanyID:             companyID,
				OvertimeRatePerMinute: decimal.Zero.StringFixed(2),
			}, nil
		}
		return settings.SettingsResponse{}, err
	}

	return toResponse(current), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.SettingsResponse{}, err
		}
		current = settings.CompanySettings{
			CompanyID:             companyID,
			OvertimeRatePerMinute: decimal.Zero,
		}
	}

	if req.WeeklyAbsentThreshold != nil {
		current.WeeklyAbsentThreshold = req.WeeklyAbsentThreshold
	}
	if req.DisablePenalty {
		current.WeeklyAbsentThreshold = nil
	}
	if req.OvertimeRatePerMinute != nil {
		rate, err := decimal.NewFromString(*req.OvertimeRatePerMinute)
		if err != nil {
			return settings.SettingsResponse{}, fmt.Errorf("failed to parse overtime rate: %w", err)
		}
		current.OvertimeRatePerMinute = rate
	}
	if req.SundayBonusEnabled != nil {
		current.SundayBonusEnabled = *req.SundayBonusEnabled
	}

	saved, err := s.SettingsRepository.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	s.bus.Publish(events.Event{
		Type:      events.TypeSettingsChanged,
		CompanyID: companyID,
	})

	return toResponse(saved), nil
}

// WeeklyAbsentThreshold implements settings.SettingsService.
//
// Returns nil on any read failure: the reconciliation board degrades to plain
// rendering rather than refusing to load when the rules engine is down.
func (s *SettingsServiceImpl) WeeklyAbsentThreshold(ctx context.Context, companyID string) *int {
	current, err := s.SettingsRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil
	}
	return current.WeeklyAbsentThreshold
}

func toResponse(s settings.CompanySettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		CompanyID:             s.CompanyID,
		WeeklyAbsentThreshold: s.WeeklyAbsentThreshold,
		OvertimeRatePerMinute: s.OvertimeRatePerMinute.StringFixed(2),
		SundayBonusEnabled:    s.SundayBonusEnabled,
		UpdatedAt:             s.UpdatedAt.Format(time.RFC3339),
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func NewSettingsService(repo settings.SettingsRepository, bus *events.Bus) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: repo,
		bus:                bus,
	}
}
