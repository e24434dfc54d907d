// Package reports хранит отчёты прогонов стресс-теста.
package reports

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=reportsmock go-path-defense/internal/repositories/reports Repository

var (
	ErrNilReport = errors.New("report cannot be nil")
	ErrEmptyID   = errors.New("report ID cannot be empty")
)

// Report — итог одного прогона стресс-теста.
type Report struct {
	ID    string `json:"id"`
	Level string `json:"level"`

	Started time.Time     `json:"started"`
	Wall    time.Duration `json:"wall_ns"`
	SimTime float64       `json:"sim_time"`
	Ticks   uint64        `json:"ticks"`

	TotalSpawned int `json:"total_spawned"`
	PeakActive   int `json:"peak_active"`
	Towers       int `json:"towers"`
	Kills        int `json:"kills"`
	Loops        int `json:"loops"`

	AvgTick time.Duration `json:"avg_tick_ns"`
	MaxTick time.Duration `json:"max_tick_ns"`

	// Finished = false, если прогон отменён до конца бюджета
	Finished bool `json:"finished"`
}

// ListInput — параметры выборки отчётов
type ListInput struct {
	// Limit ограничивает число отчётов; 0: все сохранённые
	Limit int
}

// Repository — хранилище отчётов
type Repository interface {
	// Save сохраняет отчёт; повторный ID заменяет прежний
	Save(ctx context.Context, report *Report) error

	// List возвращает отчёты от новых к старым
	List(ctx context.Context, input ListInput) ([]*Report, error)
}

func validate(report *Report) error {
	if report == nil {
		return ErrNilReport
	}
	if report.ID == "" {
		return ErrEmptyID
	}
	return nil
}
