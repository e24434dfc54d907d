package reports

import (
	"context"
	"sort"
	"sync"
)

type inMemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*Report
	maxList int
}

// NewInMemory создаёт репозиторий, хранящий отчёты в памяти процесса.
// maxList = 0 хранит все отчёты.
func NewInMemory(maxList int) Repository {
	return &inMemoryRepository{
		reports: make(map[string]*Report),
		maxList: maxList,
	}
}

// inMemoryRepository реализует Repository
var _ Repository = (*inMemoryRepository)(nil)

func (r *inMemoryRepository) Save(_ context.Context, report *Report) error {
	if err := validate(report); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *report
	r.reports[report.ID] = &stored
	if r.maxList > 0 && len(r.reports) > r.maxList {
		sorted := r.sortedLocked()
		for _, old := range sorted[r.maxList:] {
			delete(r.reports, old.ID)
		}
	}
	return nil
}

func (r *inMemoryRepository) List(_ context.Context, input ListInput) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedLocked()
	if input.Limit > 0 && len(sorted) > input.Limit {
		sorted = sorted[:input.Limit]
	}
	out := make([]*Report, len(sorted))
	for i, rep := range sorted {
		c := *rep
		out[i] = &c
	}
	return out, nil
}

// sortedLocked возвращает отчёты от новых к старым; при равенстве порядок по ID.
func (r *inMemoryRepository) sortedLocked() []*Report {
	out := make([]*Report, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Started.Equal(out[j].Started) {
			return out[i].Started.After(out[j].Started)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
