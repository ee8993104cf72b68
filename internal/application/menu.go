package application

import (
	"context"

	"studentenfutter/internal/domain"
)

type MenuSource interface {
	TodayMenu(ctx context.Context) ([]domain.MenuItem, error)
}
