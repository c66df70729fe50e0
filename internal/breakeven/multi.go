package breakeven

import (
	"errors"
	"fmt"
)

// SolveEach answers the same break-even question once per assumption: for each
// target it solves the value that reaches the requested LP IRR under default
// bounds. Assumptions that cannot reach the IRR inside their bounds are
// collected as unreachable rather than failing the run, so a single solvable
// lever still produces a report.
func (s *Solver) SolveEach(req Request, targets []Target) (*MultiResult, error) {
	if len(targets) == 0 {
		targets = AllTargets()
	}

	multi := &MultiResult{TargetLPIRRPct: req.TargetLPIRRPct}
	for _, target := range targets {
		single := req
		single.Target = target
		single.Bounds = Bounds{}

		result, err := s.Solve(single)
		if err != nil {
			var solveErr *BreakEvenError
			if errors.As(err, &solveErr) && solveErr.Operation == "bracket" {
				multi.Unreachable = append(multi.Unreachable, UnreachableTarget{
					Target: target,
					Reason: solveErr.Message,
				})
				continue
			}
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_each",
			Message: fmt.Sprintf("no assumption reaches an LP IRR of %s%% within default bounds",
				req.TargetLPIRRPct.StringFixed(2)),
		}
	}

	for i := range multi.Results {
		result := &multi.Results[i]
		if !result.Success {
			continue
		}
		if multi.EasiestMove == nil ||
			result.MovePct().Abs().LessThan(multi.EasiestMove.MovePct().Abs()) {
			multi.EasiestMove = result
		}
	}

	multi.Recommendations = buildRecommendations(multi)
	return multi, nil
}

// buildRecommendations turns the solved moves into short guidance lines.
func buildRecommendations(multi *MultiResult) []string {
	var recs []string
	if easiest := multi.EasiestMove; easiest != nil {
		recs = append(recs, fmt.Sprintf("%s needs the smallest relative move: %s to %s (%s)",
			easiest.Target,
			formatTargetValue(easiest.Target, easiest.BaseValue),
			formatTargetValue(easiest.Target, easiest.OptimalValue),
			signedPct(easiest.MovePct())))
	}
	for _, blocked := range multi.Unreachable {
		recs = append(recs, fmt.Sprintf("%s alone cannot reach an LP IRR of %s%%",
			blocked.Target, multi.TargetLPIRRPct.StringFixed(2)))
	}
	return recs
}
