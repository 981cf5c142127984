package service

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
	"github.com/emretit/paftamobile-sub005/internal/logger"
)

// operationRecorder persists provider call audit records. Write failures are
// logged and swallowed so a broken audit trail never blocks a send.
type operationRecorder struct {
	repo   einvoice.Repository
	logger *logger.Logger
}

// NewOperationRecorder creates a recorder backed by the e-invoice repository
func NewOperationRecorder(repo einvoice.Repository, logger *logger.Logger) nilvera.OperationRecorder {
	return &operationRecorder{repo: repo, logger: logger}
}

func (r *operationRecorder) Record(ctx context.Context, log *einvoice.OperationLog) {
	if err := r.repo.CreateLog(ctx, log); err != nil {
		r.logger.Errorw("failed to write e-invoice operation log",
			"operation", log.Operation,
			"error", err,
		)
	}
}
