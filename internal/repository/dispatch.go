package repository

import (
	"context"

	"gorm.io/gorm"

	"vnechat/sms_dispatch/internal/model"
)

type DispatchRepository interface {
	Create(ctx context.Context, d *model.Dispatch) error
}

type dispatchRepository struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) DispatchRepository {
	return &dispatchRepository{db: db}
}

func (r *dispatchRepository) Create(ctx context.Context, d *model.Dispatch) error {
	return r.db.WithContext(ctx).Create(d).Error
}
