package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const (
	// Products with stock at or below this count show up on the
	// limited-edition shelf.
	limitedStockCeiling = 12

	// Minimum review count before a product qualifies as popular.
	popularReviewFloor = 2

	bannerCount = 2
)

// Service serves the read side of the storefront: catalog pages,
// banners, sales, categories, tags and product details. The one write
// it owns is review submission.
type Service struct {
	products   productRepo
	sales      saleRepo
	categories categoryRepo
	tags       tagRepo
	reviews    reviewRepo

	intn func(n int) int
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Catalog(ctx context.Context, f productrepo.CatalogFilter) ([]domain.Product, int, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListLimited(ctx context.Context, maxCount int) ([]domain.Product, error)
	ListPopular(ctx context.Context, minReviews int) ([]domain.Product, error)
}

type saleRepo interface {
	List(ctx context.Context, page, limit int) ([]domain.Sale, int, error)
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type tagRepo interface {
	List(ctx context.Context) ([]domain.Tag, error)
}

type reviewRepo interface {
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
}

func New(products productRepo, sales saleRepo, categories categoryRepo, tags tagRepo, reviews reviewRepo) *Service {
	return &Service{
		products:   products,
		sales:      sales,
		categories: categories,
		tags:       tags,
		reviews:    reviews,
		intn:       rand.Intn,
	}
}

// Page is a paginated product slice with 1-based page numbers.
type Page struct {
	Items       []domain.Product
	CurrentPage int
	LastPage    int
}

// Catalog runs a filtered, sorted, paginated catalog query.
func (s *Service) Catalog(ctx context.Context, f productrepo.CatalogFilter) (*Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	items, total, err := s.products.Catalog(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, CurrentPage: f.Page, LastPage: lastPage(total, f.Limit)}, nil
}

func lastPage(total, limit int) int {
	last := (total + limit - 1) / limit
	if last < 1 {
		last = 1
	}
	return last
}

// Banners picks a few random products to rotate on the landing page.
func (s *Service) Banners(ctx context.Context) ([]domain.Product, error) {
	all, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(all) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		all[i], all[j] = all[j], all[i]
	}
	if len(all) > bannerCount {
		all = all[:bannerCount]
	}
	return all, nil
}

// Limited lists products that are nearly sold out.
func (s *Service) Limited(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListLimited(ctx, limitedStockCeiling)
}

// Popular lists the best-reviewed products.
func (s *Service) Popular(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListPopular(ctx, popularReviewFloor)
}

// SalesPage is the paginated discount listing.
type SalesPage struct {
	Items       []domain.Sale
	CurrentPage int
	LastPage    int
}

func (s *Service) Sales(ctx context.Context, page, limit int) (*SalesPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	items, total, err := s.sales.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &SalesPage{Items: items, CurrentPage: page, LastPage: lastPage(total, limit)}, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) Tags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// Product loads a single product with its reviews attached.
func (s *Service) Product(ctx context.Context, id int64) (*domain.Product, []domain.Review, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, reviews, nil
}

// CreateReview validates and stores a product review, returning the
// full refreshed review list for the product.
func (s *Service) CreateReview(ctx context.Context, r domain.Review) ([]domain.Review, error) {
	if r.Rate < 1 || r.Rate > 5 {
		return nil, fmt.Errorf("rate must be between 1 and 5: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Text) == "" {
		return nil, fmt.Errorf("review text is empty: %w", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, r.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, r.ProductID)
}
