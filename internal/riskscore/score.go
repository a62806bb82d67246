// Package riskscore turns the engine's compliance flags into the 0-100
// employee score shown on the monitoring dashboard. The per-factor weight
// table and the band thresholds are operator configuration, stored in the
// settings table, never hardcoded.
package riskscore

import (
	"github.com/google/uuid"

	"puantaj-backend/internal/timesheet"
)

const (
	// SettingKey holds the weight table JSON in the settings store.
	SettingKey = "risk_score_weights"

	// WindowDays is the trailing violation window.
	WindowDays = 7
)

const (
	StatusNormal   = "normal"
	StatusWatch    = "watch"
	StatusCritical = "critical"
)

// WeightFactor weights one flag code. Impact is capped at Max so a single
// runaway factor cannot saturate the whole score by itself.
type WeightFactor struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
	Max    int    `json:"max"`
}

type Bands struct {
	Watch    int `json:"watch"`
	Critical int `json:"critical"`
}

type WeightConfig struct {
	Factors []WeightFactor `json:"factors"`
	Bands   Bands          `json:"bands"`
}

// DefaultWeights is the fallback when no operator table is stored.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Factors: []WeightFactor{
			{Code: string(timesheet.FlagDailyMaxExceeded), Label: "Daily maximum exceeded", Weight: 25, Max: 50},
			{Code: string(timesheet.FlagMinBreakNotMet), Label: "Minimum break not met", Weight: 10, Max: 30},
			{Code: string(timesheet.FlagNightWorkExceeded), Label: "Night work limit exceeded", Weight: 20, Max: 40},
			{Code: string(timesheet.FlagAnnualOvertimeCapExceeded), Label: "Annual overtime cap exceeded", Weight: 40, Max: 40},
			{Code: string(timesheet.FlagMissingOut), Label: "Missing check-out", Weight: 5, Max: 20},
			{Code: string(timesheet.FlagMissingIn), Label: "Missing check-in", Weight: 5, Max: 20},
		},
		Bands: Bands{Watch: 40, Critical: 70},
	}
}

// Factor is one scored line of the result, kept label-compatible with the
// dashboard contract: a label, the raw count and the weighted impact.
type Factor struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Value       int    `json:"value"`
	ImpactScore int    `json:"impactScore"`
}

type Result struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	Factors    []Factor  `json:"factors"`
	WindowDays int       `json:"windowDays"`
}

// Score combines flag counts with the weight table into a banded 0-100
// score. Factors with a zero count are reported with zero impact so the
// dashboard can render the full table.
func (w WeightConfig) Score(counts map[timesheet.Flag]int) (int, string, []Factor) {
	total := 0
	factors := make([]Factor, 0, len(w.Factors))
	for _, wf := range w.Factors {
		count := counts[timesheet.Flag(wf.Code)]
		impact := count * wf.Weight
		if wf.Max > 0 && impact > wf.Max {
			impact = wf.Max
		}
		total += impact
		factors = append(factors, Factor{
			Code:        wf.Code,
			Label:       wf.Label,
			Value:       count,
			ImpactScore: impact,
		})
	}
	if total > 100 {
		total = 100
	}
	return total, w.band(total), factors
}

func (w WeightConfig) band(score int) string {
	switch {
	case w.Bands.Critical > 0 && score >= w.Bands.Critical:
		return StatusCritical
	case w.Bands.Watch > 0 && score >= w.Bands.Watch:
		return StatusWatch
	default:
		return StatusNormal
	}
}

// CountFlags tallies flags across resolved days, counting only codes the
// registry marks as violations plus the missing-half warnings the weight
// table knows about.
func CountFlags(days []timesheet.Day, cfg WeightConfig) map[timesheet.Flag]int {
	known := map[timesheet.Flag]bool{}
	for _, f := range cfg.Factors {
		known[timesheet.Flag(f.Code)] = true
	}

	counts := map[timesheet.Flag]int{}
	for _, day := range days {
		for _, flag := range day.Flags {
			if known[flag] {
				counts[flag]++
			}
		}
	}
	return counts
}
