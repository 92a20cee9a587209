package usecase

import (
	"context"
	"time"
)

// HealthTimestampLayout is ISO-8601 in UTC with millisecond precision.
const HealthTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	now func() time.Time
}

func NewHealthUsecase(now func() time.Time) HealthUsecase {
	if now == nil {
		now = time.Now
	}
	return &healthUsecase{now: now}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: u.now().UTC().Format(HealthTimestampLayout),
	}
}
