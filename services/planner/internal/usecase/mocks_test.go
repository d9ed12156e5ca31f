package usecase

import (
	"context"
	"io"
	"sync"

	"some-planner/services/planner/internal/entity"

	"github.com/stretchr/testify/mock"
)

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Shop, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByID(ctx context.Context, id int64) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Shop), args.Error(1)
}

func (m *MockShopRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShopRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, filter entity.PostFilter) ([]*entity.PostSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PostSummary), args.Error(1)
}

func (m *MockPostRepository) GetDetail(ctx context.Context, id int64) (*entity.PostDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostDetail), args.Error(1)
}

func (m *MockPostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, media *entity.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id int64) (*entity.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Media), args.Error(1)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// spyStorage records calls and keeps saved bytes in memory.
type spyStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	saves    []string
	deletes  []string
	saveErr  error
	deleteFn func(name string) error
}

func newSpyStorage() *spyStorage {
	return &spyStorage{files: make(map[string][]byte)}
}

func (s *spyStorage) Save(_ context.Context, name string, r io.Reader, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, name)
	if s.saveErr != nil {
		return s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.files[name] = data
	return nil
}

func (s *spyStorage) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, name)
	if s.deleteFn != nil {
		if err := s.deleteFn(name); err != nil {
			return err
		}
	}
	delete(s.files, name)
	return nil
}

type spyPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *spyPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return p.err
}
