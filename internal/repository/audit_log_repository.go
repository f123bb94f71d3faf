package repository

import (
	"context"

	"app/internal/domain/model"
)

type AuditLogFilter struct {
	Actor  string
	Action string
	Limit  int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, f AuditLogFilter) ([]model.AuditLog, error)
}
