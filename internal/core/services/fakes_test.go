package services_test

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/records_management_app/internal/apperrors"
	"github.com/SscSPs/records_management_app/internal/core/domain"
	"github.com/SscSPs/records_management_app/internal/core/policy"
	portsrepo "github.com/SscSPs/records_management_app/internal/core/ports/repositories"
)

type scopeKey struct{ regionID, categoryID int64 }

// memStore is an in-memory stand-in for the pgsql repositories. A mutex per scope
// plays the part of the advisory lock around serial allocation.
type memStore struct {
	mu         sync.Mutex
	scopeLocks map[scopeKey]*sync.Mutex
	regions    []domain.Region
	categories []domain.Category
	records    map[int64]domain.Record
	nextID     int64

	// conflicts makes the next N CreateRecord calls fail as a concurrent writer would.
	conflicts   int
	createCalls int
}

var (
	_ portsrepo.ScopeRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.RecordRepositoryFacade = (*memStore)(nil)
	_ portsrepo.AggregationRepository  = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		scopeLocks: make(map[scopeKey]*sync.Mutex),
		regions: []domain.Region{
			{ID: 1, Code: 1, Name: "Adrar"},
			{ID: 16, Code: 16, Name: "Alger"},
			{ID: 31, Code: 31, Name: "Oran"},
		},
		categories: []domain.Category{
			{ID: 1, Name: "Medical", DisplayName: "Frais médicaux"},
			{ID: 2, Name: "Surgery", DisplayName: "Chirurgie"},
			{ID: 3, Name: "Optics", DisplayName: "Optique"},
		},
		records: make(map[int64]domain.Record),
	}
}

func (m *memStore) scopeLock(regionID, categoryID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scopeKey{regionID, categoryID}
	l, ok := m.scopeLocks[key]
	if !ok {
		l = &sync.Mutex{}
		m.scopeLocks[key] = l
	}
	return l
}

func (m *memStore) FindRegionByCode(_ context.Context, code int) (*domain.Region, error) {
	for _, r := range m.regions {
		if r.Code == code {
			r := r
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListRegions(context.Context) ([]domain.Region, error) {
	return append([]domain.Region(nil), m.regions...), nil
}

func (m *memStore) FindCategoryByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) FindCategoryByNameFold(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListCategories(context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), m.categories...), nil
}

func (m *memStore) CreateRecord(ctx context.Context, record domain.Record) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock := m.scopeLock(record.RegionID, record.CategoryID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	m.createCalls++
	if m.conflicts > 0 {
		m.conflicts--
		m.mu.Unlock()
		return nil, apperrors.NewAppError(409, "serial taken", apperrors.ErrTransactionConflict)
	}
	var maxSerial int64
	for _, r := range m.records {
		if r.RegionID == record.RegionID && r.CategoryID == record.CategoryID && r.Serial > maxSerial {
			maxSerial = r.Serial
		}
	}
	m.mu.Unlock()

	// Let other writers run between reading the max and inserting.
	runtime.Gosched()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	record.ID = m.nextID
	record.Serial = maxSerial + 1
	m.records[record.ID] = record
	return &record, nil
}

func (m *memStore) FindRecordByID(_ context.Context, recordID int64, filter policy.VisibilityFilter) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[recordID]
	if !ok || !filter.Matches(r) {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (m *memStore) ListRecords(_ context.Context, scope domain.Scope, filter policy.VisibilityFilter, query domain.RecordQuery) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Record{}
	for _, r := range m.records {
		if r.RegionID != scope.RegionID() || r.CategoryID != scope.CategoryID() {
			continue
		}
		if !filter.Matches(r) || !query.Status.Admits(r.Status) {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(r.PostalAccount), strings.ToLower(query.Search)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TreatmentDate.Equal(out[j].TreatmentDate) {
			return out[i].TreatmentDate.After(out[j].TreatmentDate)
		}
		return out[i].Serial > out[j].Serial
	})
	return out, nil
}

func (m *memStore) UpdateRecord(_ context.Context, recordID int64, mutate portsrepo.RecordMutator) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.records[recordID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	next, err := mutate(stored)
	if err != nil {
		return nil, err
	}
	next.ID, next.RegionID, next.CategoryID = stored.ID, stored.RegionID, stored.CategoryID
	next.OwnerID, next.Serial, next.CreatedAt = stored.OwnerID, stored.Serial, stored.CreatedAt
	m.records[recordID] = next
	return &next, nil
}

func (m *memStore) DeleteRecord(_ context.Context, recordID int64, authorize portsrepo.RecordAuthorizer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.records[recordID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := authorize(stored); err != nil {
		return err
	}
	delete(m.records, recordID)
	return nil
}

func (m *memStore) CountByCategory(_ context.Context, regionID int64, filter policy.VisibilityFilter) ([]domain.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CategoryCount, 0, len(m.categories))
	for _, c := range m.categories {
		count := domain.CategoryCount{CategoryID: c.ID, Name: c.Name, DisplayName: c.DisplayName}
		for _, r := range m.records {
			if r.RegionID == regionID && r.CategoryID == c.ID && filter.Matches(r) {
				count.Count++
			}
		}
		out = append(out, count)
	}
	return out, nil
}

func (m *memStore) CountByRegion(_ context.Context, filter policy.VisibilityFilter) ([]domain.RegionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RegionCount, 0, len(m.regions))
	for _, reg := range m.regions {
		count := domain.RegionCount{RegionID: reg.ID, RegionCode: reg.Code, RegionName: reg.Name}
		for _, r := range m.records {
			if r.RegionID == reg.ID && filter.Matches(r) {
				count.Count++
			}
		}
		out = append(out, count)
	}
	return out, nil
}
