package solveengine

import "github.com/varsity-sched/engine/internal/domain"

// Status is the outcome of one solve invocation, matching the CP-SAT
// style contract: solve(model, time_budget) -> {status, objective, values}.
type Status string

const (
	Optimal    Status = "OPTIMAL"
	Feasible   Status = "FEASIBLE"
	Infeasible Status = "INFEASIBLE"
	Unknown    Status = "UNKNOWN"
)

// Result is the solve engine's output for one invocation: the status, the
// achieved objective value, and the assignment set itself.
type Result struct {
	Status      Status
	Objective   float64
	Assignments []domain.Assignment
	Violations  int
}
