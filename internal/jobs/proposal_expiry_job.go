package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/service"
)

// ProposalExpiryJob sweeps sent proposals past their validity window
// and flips them to expired
type ProposalExpiryJob struct {
	proposals *service.ProposalService
	logger    *zap.Logger
}

func NewProposalExpiryJob(proposals *service.ProposalService, logger *zap.Logger) *ProposalExpiryJob {
	return &ProposalExpiryJob{proposals: proposals, logger: logger}
}

// Run executes one sweep. Used as the scheduler callback.
func (j *ProposalExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := j.proposals.ExpireOverdue(ctx)
	if err != nil {
		j.logger.Error("proposal expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		j.logger.Info("proposal expiry sweep finished", zap.Int64("expired", count))
	}
}
