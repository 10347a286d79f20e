package validator

import (
	"context"

	"go.uber.org/zap"
)

// Strategy is one stage of the validation chain. A nil result means
// the stage is unavailable or could not decide, and the chain moves on
// to the next stage.
type Strategy interface {
	Name() string
	Validate(ctx context.Context, query string) (*Result, error)
}

// Chain classifies queries through an ordered list of strategies.
// The first non-nil result wins. A pattern-based stage is always
// appended, so the chain is total: it never fails and never returns
// an absent decision.
type Chain struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewChain builds a chain from the given model stages, in priority
// order, followed by the deterministic pattern stage.
func NewChain(log *zap.Logger, stages ...Strategy) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	strategies := make([]Strategy, 0, len(stages)+1)
	strategies = append(strategies, stages...)
	strategies = append(strategies, NewPatternStrategy())
	return &Chain{strategies: strategies, log: log}
}

// Validate classifies a query. Stage failures degrade to the next
// stage; the final pattern stage guarantees a decision.
func (c *Chain) Validate(ctx context.Context, query string) Result {
	for _, s := range c.strategies {
		result, err := s.Validate(ctx, query)
		if err != nil {
			c.log.Warn("validation stage failed, trying next",
				zap.String("stage", s.Name()), zap.Error(err))
			continue
		}
		if result == nil {
			continue
		}
		c.log.Info("query validated",
			zap.String("stage", s.Name()),
			zap.String("category", string(result.Category)),
			zap.Bool("approved", result.Approved))
		return *result
	}

	// Unreachable with the pattern stage appended; kept as the
	// default-deny backstop.
	return Result{
		Approved: false,
		Message:  formatRejection("Your request could not be classified.", CategoryRejectedInappropriate),
		Category: CategoryRejectedInappropriate,
	}
}
