package service

import (
	"context"

	"vnechat/sms_dispatch/internal/model"
)

type DispatchService interface {
	Handle(ctx context.Context, req model.InboundRequest) model.OutboundResponse
	DemoMode() bool
	Stats() map[string]int64
}
