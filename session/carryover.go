package session

import (
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/types"
)

// Folder folds prior Q&A into the carryover context threaded through later
// requests, trimming the oldest entries once the token budget is exceeded.
type Folder struct {
	budget int
	enc    *tiktoken.Tiktoken
	logger *zap.Logger
}

// NewFolder creates a folder using the tiktoken encoding for the given
// model. When the encoding cannot be loaded the folder falls back to a
// character-based token estimate.
func NewFolder(model string, budget int, logger *zap.Logger) *Folder {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "carryover"))

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("tokenizer unavailable, falling back to estimate",
			zap.String("model", model), zap.Error(err))
		enc = nil
	}
	return &Folder{budget: budget, enc: enc, logger: logger}
}

// CountTokens returns the token count for text, estimating len/4 when no
// encoder is available.
func (f *Folder) CountTokens(text string) int {
	if f.enc == nil {
		return len(text) / 4
	}
	return len(f.enc.Encode(text, nil, nil))
}

// Fold appends an entry to the turn's carryover and drops the oldest
// entries while the total exceeds the budget. The newest entry is always
// kept, even when it alone exceeds the budget.
func (f *Folder) Fold(turn *types.Turn, entry string) {
	if entry == "" {
		return
	}
	turn.Carryover = append(turn.Carryover, entry)
	if f.budget <= 0 {
		return
	}

	total := 0
	for _, e := range turn.Carryover {
		total += f.CountTokens(e)
	}
	for total > f.budget && len(turn.Carryover) > 1 {
		total -= f.CountTokens(turn.Carryover[0])
		turn.Carryover = turn.Carryover[1:]
	}
	if total > f.budget {
		f.logger.Debug("carryover over budget with a single entry",
			zap.Int("tokens", total), zap.Int("budget", f.budget))
	}
}
