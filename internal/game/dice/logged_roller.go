package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every random decision is logged at
// debug level. Roller is itself a Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the draw.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("random draw", zap.Int("n", n), zap.Int("value", v))
	return v
}

// Chance reports true with probability p and logs the decision.
//
// Postcondition: behaves exactly like Chance(src, p).
func (r *Roller) Chance(reason string, p float64) bool {
	ok := Chance(r.src, p)
	r.logger.Debug("chance",
		zap.String("reason", reason),
		zap.Float64("probability", p),
		zap.Bool("result", ok),
	)
	return ok
}
