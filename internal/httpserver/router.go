package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/service/cart"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	"storefront/internal/service/profile"
)

// CartService is the session cart surface the basket handlers consume.
type CartService interface {
	Add(ctx context.Context, sessionID string, productID int64, quantity int, override bool) error
	Remove(ctx context.Context, sessionID string, productID int64, quantity int) error
	Items(ctx context.Context, sessionID string) ([]cart.Line, error)
}

// CatalogService serves the read side of the store plus review writes.
type CatalogService interface {
	Catalog(ctx context.Context, f productrepo.CatalogFilter) (*catalog.Page, error)
	Banners(ctx context.Context) ([]domain.Product, error)
	Limited(ctx context.Context) ([]domain.Product, error)
	Popular(ctx context.Context) ([]domain.Product, error)
	Sales(ctx context.Context, page, limit int) (*catalog.SalesPage, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Tags(ctx context.Context) ([]domain.Tag, error)
	Product(ctx context.Context, id int64) (*domain.Product, []domain.Review, error)
	CreateReview(ctx context.Context, r domain.Review) ([]domain.Review, error)
}

// CheckoutService drives orders from cart snapshot to payment.
type CheckoutService interface {
	Create(ctx context.Context, sessionID string, profileID int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Order, error)
	ConfirmDetails(ctx context.Context, orderID int64, in checkout.DetailsInput) error
	Pay(ctx context.Context, sessionID string, orderID int64, in checkout.PaymentInput) error
}

// ProfileService covers accounts, tokens and profile edits.
type ProfileService interface {
	SignUp(ctx context.Context, in profile.SignUpInput) (*domain.Profile, string, error)
	SignIn(ctx context.Context, username, password string) (*domain.Profile, string, error)
	VerifyToken(ctx context.Context, token string) (*domain.Profile, error)
	Get(ctx context.Context, id int64) (*domain.Profile, error)
	Update(ctx context.Context, id int64, in profile.UpdateInput) (*domain.Profile, error)
	ChangePassword(ctx context.Context, id int64, current, next string) error
	SetAvatar(ctx context.Context, id int64, src, alt string) (*domain.Profile, error)
}

// Deps carries the services the HTTP layer fronts.
type Deps struct {
	Cart     CartService
	Catalog  CatalogService
	Checkout CheckoutService
	Profiles ProfileService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(sessionMiddleware())

	api.GET("/banners", h.banners)
	api.GET("/catalog", h.catalog)
	api.GET("/products/limited", h.limited)
	api.GET("/products/popular", h.popular)
	api.GET("/sales", h.sales)
	api.GET("/categories", h.categories)
	api.GET("/tags", h.tags)
	api.GET("/product/:id", h.product)

	api.GET("/basket", h.basketGet)
	api.POST("/basket", h.basketAdd)
	api.DELETE("/basket", h.basketRemove)

	api.POST("/sign-up", h.signUp)
	api.POST("/sign-in", h.signIn)
	api.POST("/sign-out", h.signOut)

	authed := api.Group("", authRequired(deps.Profiles))
	authed.POST("/product/:id/reviews", h.createReview)
	authed.GET("/profile", h.profileGet)
	authed.POST("/profile", h.profileUpdate)
	authed.POST("/profile/password", h.profilePassword)
	authed.POST("/profile/avatar", h.profileAvatar)
	authed.GET("/orders", h.ordersList)
	authed.POST("/orders", h.ordersCreate)
	authed.GET("/order/:id", h.orderGet)
	authed.POST("/order/:id", h.orderConfirm)
	authed.POST("/payment/:id", h.orderPay)

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
