package advisory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"farmadvisor-backend/internal/advisory/engine"
	"farmadvisor-backend/internal/shared/metrics"
	"farmadvisor-backend/internal/shared/telemetry"
	"farmadvisor-backend/internal/users"
)

const (
	defaultHistoryLimit = 20
	analyticsWindow     = 500
	riskTrendPoints     = 7
)

// ProfileSource supplies the caller's farm details for input defaulting.
// *users.Service satisfies it.
type ProfileSource interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

type Service struct {
	Repo     Repo
	Ref      *engine.ReferenceData
	Profiles ProfileSource
}

// Create evaluates the input and persists the resulting advisory. A missing
// soil type is defaulted from the caller's farm profile when one exists.
func (s *Service) Create(ctx context.Context, userID string, in engine.Input) (Advisory, error) {
	if s == nil || s.Repo == nil {
		return Advisory{}, errors.New("advisory service not configured")
	}

	if in.SoilType == "" && s.Profiles != nil {
		if user, err := s.Profiles.GetByID(ctx, userID); err == nil {
			in.SoilType = user.Farm.SoilType
		}
	}

	start := time.Now()
	result, err := engine.Evaluate(in, s.Ref)
	if err != nil {
		metrics.IncAdvisoryRejected()
		return Advisory{}, err
	}
	metrics.ObserveAdvisoryDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.IncAdvisoryCreated()
	metrics.ObserveRiskScore(float64(result.RiskScore))
	if !result.Compatibility.Compatible {
		metrics.IncAdvisoryIncompatible()
	}

	adv := Advisory{
		ID:              uuid.NewString(),
		UserID:          userID,
		Input:           result.Input,
		Compatibility:   result.Compatibility,
		Quantity:        result.Quantity,
		RiskScore:       result.RiskScore,
		OverallStatus:   result.OverallStatus,
		Recommendations: result.Recommendations,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, adv); err != nil {
		// The evaluation succeeded; surface the verdict even if history
		// persistence fails.
		telemetry.Error("advisory.persist_failed", map[string]any{
			"advisory_id": adv.ID,
			"user_id":     userID,
			"error":       err.Error(),
		})
	}
	return adv, nil
}

// List returns the caller's advisories newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Advisory, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("advisory service not configured")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes one advisory owned by the caller.
func (s *Service) Delete(ctx context.Context, userID, advisoryID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("advisory service not configured")
	}
	return s.Repo.Delete(ctx, userID, advisoryID)
}

// Analytics aggregates the caller's recent history: totals, compatibility
// rate, average risk, distributions, and a short risk time series.
func (s *Service) Analytics(ctx context.Context, userID string) (Analytics, error) {
	if s == nil || s.Repo == nil {
		return Analytics{}, errors.New("advisory service not configured")
	}
	history, err := s.Repo.ListByUser(ctx, userID, analyticsWindow, 0)
	if err != nil {
		return Analytics{}, err
	}

	out := Analytics{
		CropDistribution:       make(map[string]int),
		FertilizerDistribution: make(map[string]int),
		RiskTrend:              []RiskPoint{},
	}
	if len(history) == 0 {
		return out, nil
	}

	compatible := 0
	riskSum := 0
	for _, adv := range history {
		if adv.Compatibility.Compatible {
			compatible++
		}
		riskSum += adv.RiskScore
		if adv.Input.CropType != "" {
			out.CropDistribution[adv.Input.CropType]++
		}
		out.FertilizerDistribution[adv.Input.FertilizerName]++
	}

	out.TotalAdvisories = len(history)
	out.CompatibilityRate = round1(float64(compatible) / float64(len(history)) * 100)
	out.AverageRisk = round1(float64(riskSum) / float64(len(history)))

	// history is newest-first; the trend reads oldest-first.
	n := len(history)
	if n > riskTrendPoints {
		n = riskTrendPoints
	}
	for i := n - 1; i >= 0; i-- {
		out.RiskTrend = append(out.RiskTrend, RiskPoint{
			Timestamp: history[i].CreatedAt,
			RiskScore: history[i].RiskScore,
		})
	}
	return out, nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
