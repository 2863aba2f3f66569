// Package pareto runs the solver under K weight profiles concurrently
// and ranks the resulting schedules by a composite quality score.
package pareto

import "github.com/varsity-sched/engine/internal/domain"

// Profile is one named weight vector from the fixed roster.
type Profile struct {
	Name    string
	Weights map[string]float64
}

// Roster is the fixed set of weight profiles a multi-schedule request
// can draw from: satisfaction-focus, workload-focus, utilization-focus,
// NEP-focus, balanced.
var Roster = []Profile{
	{
		Name: "satisfaction-focus",
		Weights: map[string]float64{
			domain.WeightSatisfaction:      0.55,
			domain.WeightWorkload:          0.1,
			domain.WeightUtilization:       0.1,
			domain.WeightElectivePref:      0.25,
			domain.WeightNEP:               0.0,
			domain.WeightInterdisciplinary: 0.0,
		},
	},
	{
		Name: "workload-focus",
		Weights: map[string]float64{
			domain.WeightSatisfaction:      0.15,
			domain.WeightWorkload:          0.55,
			domain.WeightUtilization:       0.15,
			domain.WeightElectivePref:      0.15,
			domain.WeightNEP:               0.0,
			domain.WeightInterdisciplinary: 0.0,
		},
	},
	{
		Name: "utilization-focus",
		Weights: map[string]float64{
			domain.WeightSatisfaction:      0.15,
			domain.WeightWorkload:          0.15,
			domain.WeightUtilization:       0.55,
			domain.WeightElectivePref:      0.15,
			domain.WeightNEP:               0.0,
			domain.WeightInterdisciplinary: 0.0,
		},
	},
	{
		Name: "NEP-focus",
		Weights: map[string]float64{
			domain.WeightSatisfaction:      0.15,
			domain.WeightWorkload:          0.1,
			domain.WeightUtilization:       0.1,
			domain.WeightElectivePref:      0.15,
			domain.WeightNEP:               0.4,
			domain.WeightInterdisciplinary: 0.1,
		},
	},
	{
		Name: "balanced",
		Weights: map[string]float64{
			domain.WeightSatisfaction:      0.25,
			domain.WeightWorkload:          0.25,
			domain.WeightUtilization:       0.25,
			domain.WeightElectivePref:      0.15,
			domain.WeightNEP:               0.05,
			domain.WeightInterdisciplinary: 0.05,
		},
	},
}

// SelectProfiles picks the first k profiles from Roster, in roster order,
// clamped to the roster's length.
func SelectProfiles(k int) []Profile {
	if k <= 0 {
		k = 1
	}
	if k > len(Roster) {
		k = len(Roster)
	}
	return Roster[:k]
}

// withProfile returns a copy of cfg with its weights replaced by p.
func withProfile(cfg domain.OptimizationConfig, p Profile) domain.OptimizationConfig {
	out := cfg
	out.Weights = make(map[string]float64, len(p.Weights))
	for k, v := range p.Weights {
		out.Weights[k] = v
	}
	return out
}
