package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/globalsolutions/website/backend/internal/careers"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]careers.Job
	apps []careers.Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]careers.Job)}
}

func (m *MemoryRepo) ListJobs(_ context.Context, activeOnly bool) ([]careers.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]careers.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		if activeOnly && !j.Active {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) GetJob(_ context.Context, id string) (*careers.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, careers.ErrNotFound
	}
	j = cloneJob(j)
	return &j, nil
}

func (m *MemoryRepo) CreateJob(_ context.Context, j *careers.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = cloneJob(*j)
	return nil
}

func (m *MemoryRepo) UpdateJob(_ context.Context, j *careers.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.jobs[j.ID]
	if !ok {
		return careers.ErrNotFound
	}
	upd := cloneJob(*j)
	upd.CreatedAt = old.CreatedAt
	m.jobs[j.ID] = upd
	return nil
}

func (m *MemoryRepo) DeleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return careers.ErrNotFound
	}
	delete(m.jobs, id)
	kept := m.apps[:0]
	for _, a := range m.apps {
		if a.JobID != id {
			kept = append(kept, a)
		}
	}
	m.apps = kept
	return nil
}

func (m *MemoryRepo) CreateApplication(_ context.Context, a *careers.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[a.JobID]; !ok {
		return careers.ErrNotFound
	}
	m.apps = append(m.apps, *a)
	return nil
}

func (m *MemoryRepo) ListApplications(_ context.Context, jobID string) ([]careers.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []careers.Application{}
	for i := len(m.apps) - 1; i >= 0; i-- {
		if jobID == "" || m.apps[i].JobID == jobID {
			out = append(out, m.apps[i])
		}
	}
	return out, nil
}

func cloneJob(j careers.Job) careers.Job {
	j.Requirements = append([]string(nil), j.Requirements...)
	return j
}
