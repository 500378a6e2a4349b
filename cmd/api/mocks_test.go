package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/internal/store"

	"go.uber.org/zap"
)

// Mock stores with overridable function fields. Unset functions answer
// empty results so handlers under test only need the pieces they touch.

type mockUsersStore struct {
	getByIDFn       func(context.Context, int64) (*store.User, error)
	getByUsernameFn func(context.Context, string) (*store.User, error)
	createFn        func(context.Context, *store.User) error
}

func (m *mockUsersStore) GetByID(ctx context.Context, id int64) (*store.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUsersStore) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, store.ErrNotFound
}

func (m *mockUsersStore) Create(ctx context.Context, user *store.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

type mockTokensStore struct {
	createFn  func(context.Context, int64) (string, error)
	getUserFn func(context.Context, string) (*store.User, error)
}

func (m *mockTokensStore) Create(ctx context.Context, userID int64) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID)
	}
	return "test-token", nil
}

func (m *mockTokensStore) GetUser(ctx context.Context, token string) (*store.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, token)
	}
	switch token {
	case "staff-token":
		return &store.User{ID: 1, Username: "admin", IsStaff: true}, nil
	case "user-token":
		return &store.User{ID: 2, Username: "bob", IsStaff: false}, nil
	default:
		return nil, store.ErrNotFound
	}
}

type mockCategoriesStore struct {
	listFn    func(context.Context, int, int) ([]store.Category, int, error)
	createFn  func(context.Context, *store.Category) error
	getByIDFn func(context.Context, int64) (*store.Category, error)
	updateFn  func(context.Context, *store.Category) error
	deleteFn  func(context.Context, int64) error
}

func (m *mockCategoriesStore) List(ctx context.Context, limit, offset int) ([]store.Category, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return []store.Category{}, 0, nil
}

func (m *mockCategoriesStore) Create(ctx context.Context, c *store.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	c.ID = 1
	return nil
}

func (m *mockCategoriesStore) GetByID(ctx context.Context, id int64) (*store.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCategoriesStore) Update(ctx context.Context, c *store.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

func (m *mockCategoriesStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTagsStore struct {
	listFn    func(context.Context, int, int) ([]store.Tag, int, error)
	createFn  func(context.Context, *store.Tag) error
	getByIDFn func(context.Context, int64) (*store.Tag, error)
	updateFn  func(context.Context, *store.Tag) error
	deleteFn  func(context.Context, int64) error
}

func (m *mockTagsStore) List(ctx context.Context, limit, offset int) ([]store.Tag, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return []store.Tag{}, 0, nil
}

func (m *mockTagsStore) Create(ctx context.Context, t *store.Tag) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = 1
	return nil
}

func (m *mockTagsStore) GetByID(ctx context.Context, id int64) (*store.Tag, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockTagsStore) Update(ctx context.Context, t *store.Tag) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTagsStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProductsStore struct {
	listFn            func(context.Context, store.ProductFilter, int, int) ([]store.Product, int, error)
	createFn          func(context.Context, *store.Product) error
	getByIDFn         func(context.Context, int64) (*store.Product, error)
	updateFn          func(context.Context, *store.Product) error
	deleteFn          func(context.Context, int64) error
	createBatchFn     func(context.Context, []*store.Product) error
	searchFn          func(context.Context, string, int, int) ([]store.RankedProduct, int, error)
	topByPriceFn      func(context.Context, int) ([]store.TopProduct, error)
	dashboardTotalsFn func(context.Context) (*store.DashboardTotals, error)
	statsFn           func(context.Context) (*store.ProductStats, error)
}

func (m *mockProductsStore) List(ctx context.Context, f store.ProductFilter, limit, offset int) ([]store.Product, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, limit, offset)
	}
	return []store.Product{}, 0, nil
}

func (m *mockProductsStore) Create(ctx context.Context, p *store.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *mockProductsStore) GetByID(ctx context.Context, id int64) (*store.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProductsStore) Update(ctx context.Context, p *store.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProductsStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProductsStore) CreateBatch(ctx context.Context, products []*store.Product) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, products)
	}
	return nil
}

func (m *mockProductsStore) Search(ctx context.Context, q string, limit, offset int) ([]store.RankedProduct, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q, limit, offset)
	}
	return []store.RankedProduct{}, 0, nil
}

func (m *mockProductsStore) TopByPrice(ctx context.Context, n int) ([]store.TopProduct, error) {
	if m.topByPriceFn != nil {
		return m.topByPriceFn(ctx, n)
	}
	return []store.TopProduct{}, nil
}

func (m *mockProductsStore) DashboardTotals(ctx context.Context) (*store.DashboardTotals, error) {
	if m.dashboardTotalsFn != nil {
		return m.dashboardTotalsFn(ctx)
	}
	return &store.DashboardTotals{}, nil
}

func (m *mockProductsStore) Stats(ctx context.Context) (*store.ProductStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &store.ProductStats{}, nil
}

type mockProductImagesStore struct {
	listFn    func(context.Context, int, int) ([]store.ProductImage, int, error)
	createFn  func(context.Context, *store.ProductImage) error
	getByIDFn func(context.Context, int64) (*store.ProductImage, error)
	updateFn  func(context.Context, *store.ProductImage) error
	deleteFn  func(context.Context, int64) error
}

func (m *mockProductImagesStore) List(ctx context.Context, limit, offset int) ([]store.ProductImage, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return []store.ProductImage{}, 0, nil
}

func (m *mockProductImagesStore) Create(ctx context.Context, img *store.ProductImage) error {
	if m.createFn != nil {
		return m.createFn(ctx, img)
	}
	img.ID = 1
	return nil
}

func (m *mockProductImagesStore) GetByID(ctx context.Context, id int64) (*store.ProductImage, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProductImagesStore) Update(ctx context.Context, img *store.ProductImage) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, img)
	}
	return nil
}

func (m *mockProductImagesStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProfilesStore struct {
	getOrCreateFn func(context.Context, int64) (*store.Profile, error)
	updateFn      func(context.Context, *store.Profile) error
	listFn        func(context.Context, int, int) ([]store.Profile, int, error)
}

func (m *mockProfilesStore) GetOrCreate(ctx context.Context, userID int64) (*store.Profile, error) {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, userID)
	}
	return &store.Profile{ID: 1, UserID: userID}, nil
}

func (m *mockProfilesStore) Update(ctx context.Context, p *store.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProfilesStore) List(ctx context.Context, limit, offset int) ([]store.Profile, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return []store.Profile{}, 0, nil
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		config: config{
			addr: ":0",
			env:  "test",
		},
		store: store.Storage{
			Users:         &mockUsersStore{},
			Tokens:        &mockTokensStore{},
			Categories:    &mockCategoriesStore{},
			Tags:          &mockTagsStore{},
			Products:      &mockProductsStore{},
			ProductImages: &mockProductImagesStore{},
			Profiles:      &mockProfilesStore{},
		},
		logger: zap.NewNop().Sugar(),
	}
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
