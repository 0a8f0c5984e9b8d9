package httpserver

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/cart"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	"storefront/internal/service/profile"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCartService struct {
	lines       []cart.Line
	addErr      error
	removeErr   error
	addCalls    []basketInput
	removeCalls []basketInput
}

func (s *stubCartService) Add(_ context.Context, _ string, productID int64, quantity int, override bool) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.addCalls = append(s.addCalls, basketInput{ID: productID, Count: quantity, Override: override})
	return nil
}

func (s *stubCartService) Remove(_ context.Context, _ string, productID int64, quantity int) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removeCalls = append(s.removeCalls, basketInput{ID: productID, Count: quantity})
	return nil
}

func (s *stubCartService) Items(_ context.Context, _ string) ([]cart.Line, error) {
	return s.lines, nil
}


type stubCatalogService struct {
	page       *catalog.Page
	lastFilter productrepo.CatalogFilter
	products   []domain.Product
	product    *domain.Product
	productErr error
	reviews    []domain.Review
	reviewErr  error
}

func (s *stubCatalogService) Catalog(_ context.Context, f productrepo.CatalogFilter) (*catalog.Page, error) {
	s.lastFilter = f
	if s.page == nil {
		return &catalog.Page{Items: []domain.Product{}, CurrentPage: f.Page, LastPage: 1}, nil
	}
	return s.page, nil
}

func (s *stubCatalogService) Banners(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubCatalogService) Limited(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubCatalogService) Popular(_ context.Context) ([]domain.Product, error) {
	return s.products, nil
}

func (s *stubCatalogService) Sales(_ context.Context, page, limit int) (*catalog.SalesPage, error) {
	return &catalog.SalesPage{Items: []domain.Sale{}, CurrentPage: page, LastPage: 1}, nil
}

func (s *stubCatalogService) Categories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCatalogService) Tags(_ context.Context) ([]domain.Tag, error) { return nil, nil }

func (s *stubCatalogService) Product(_ context.Context, _ int64) (*domain.Product, []domain.Review, error) {
	if s.productErr != nil {
		return nil, nil, s.productErr
	}
	return s.product, s.reviews, nil
}

func (s *stubCatalogService) CreateReview(_ context.Context, r domain.Review) ([]domain.Review, error) {
	if s.reviewErr != nil {
		return nil, s.reviewErr
	}
	return append(s.reviews, r), nil
}

type stubCheckoutService struct {
	order      *domain.Order
	orders     []domain.Order
	createID   int64
	createErr  error
	payErr     error
	confirmErr error
	paidOrders []int64
}

func (s *stubCheckoutService) Create(_ context.Context, _ string, _ int64) (int64, error) {
	return s.createID, s.createErr
}

func (s *stubCheckoutService) Get(_ context.Context, id int64) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, domain.ErrNotFound
	}
	return s.order, nil
}

func (s *stubCheckoutService) ListByProfile(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubCheckoutService) ConfirmDetails(_ context.Context, _ int64, _ checkout.DetailsInput) error {
	return s.confirmErr
}

func (s *stubCheckoutService) Pay(_ context.Context, _ string, orderID int64, _ checkout.PaymentInput) error {
	if s.payErr != nil {
		return s.payErr
	}
	s.paidOrders = append(s.paidOrders, orderID)
	return nil
}

type stubProfileService struct {
	profile   *domain.Profile
	token     string
	verifyErr error
	signInErr error
}

func (s *stubProfileService) SignUp(_ context.Context, _ profile.SignUpInput) (*domain.Profile, string, error) {
	return s.profile, s.token, nil
}

func (s *stubProfileService) SignIn(_ context.Context, _, _ string) (*domain.Profile, string, error) {
	if s.signInErr != nil {
		return nil, "", s.signInErr
	}
	return s.profile, s.token, nil
}

func (s *stubProfileService) VerifyToken(_ context.Context, _ string) (*domain.Profile, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.profile, nil
}

func (s *stubProfileService) Get(_ context.Context, _ int64) (*domain.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileService) Update(_ context.Context, _ int64, _ profile.UpdateInput) (*domain.Profile, error) {
	return s.profile, nil
}

func (s *stubProfileService) ChangePassword(_ context.Context, _ int64, _, _ string) error {
	return nil
}

func (s *stubProfileService) SetAvatar(_ context.Context, _ int64, _, _ string) (*domain.Profile, error) {
	return s.profile, nil
}

func testDeps() (Deps, *stubCartService, *stubCatalogService, *stubCheckoutService, *stubProfileService) {
	cartSvc := &stubCartService{}
	catalogSvc := &stubCatalogService{}
	checkoutSvc := &stubCheckoutService{}
	profileSvc := &stubProfileService{
		profile: &domain.Profile{ID: 7, Username: "alice", FullName: "Alice A."},
		token:   "token",
	}
	deps := Deps{Cart: cartSvc, Catalog: catalogSvc, Checkout: checkoutSvc, Profiles: profileSvc}
	return deps, cartSvc, catalogSvc, checkoutSvc, profileSvc
}
