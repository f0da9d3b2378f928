package advisory

import (
	"time"

	"farmadvisor-backend/internal/advisory/engine"
)

// Advisory is one persisted evaluation: the normalized input together with
// the engine's verdicts.
type Advisory struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"userId"`
	Input           engine.Input           `json:"input"`
	Compatibility   engine.Compatibility   `json:"compatibility"`
	Quantity        engine.QuantityVerdict `json:"quantity"`
	RiskScore       int                    `json:"riskScore"`
	OverallStatus   string                 `json:"overallStatus"`
	Recommendations []string               `json:"recommendations"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// Analytics aggregates a user's advisory history.
type Analytics struct {
	TotalAdvisories        int            `json:"totalAdvisories"`
	CompatibilityRate      float64        `json:"compatibilityRate"`
	AverageRisk            float64        `json:"averageRisk"`
	CropDistribution       map[string]int `json:"cropDistribution"`
	FertilizerDistribution map[string]int `json:"fertilizerDistribution"`
	RiskTrend              []RiskPoint    `json:"riskTrend"`
}

// RiskPoint is one entry of the risk time series, oldest first.
type RiskPoint struct {
	Timestamp time.Time `json:"timestamp"`
	RiskScore int       `json:"riskScore"`
}
