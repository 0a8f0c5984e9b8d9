package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer token")
	return req
}

func TestOrdersRequireAuth(t *testing.T) {
	deps, _, _, _, profileSvc := testDeps()
	profileSvc.verifyErr = domain.ErrValidation
	router := buildRouter(logDiscard(), nil, nil, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOrdersCreate(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.createID = 42
	router := buildRouter(logDiscard(), nil, nil, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/orders", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["orderId"].(float64) != 42 {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestOrdersCreateEmptyCart(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.createErr = fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	router := buildRouter(logDiscard(), nil, nil, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/orders", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderGetWithTotals(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{
		ID:        5,
		ProfileID: 7,
		Status:    domain.OrderStatusConfirmed,
		Lines: []domain.OrderLine{
			{ProductID: 1, Quantity: 2, PriceCents: 1999, Product: &domain.Product{ID: 1, Title: "Kettle"}},
			{ProductID: 2, Quantity: 1, PriceCents: 450, Product: &domain.Product{ID: 2, Title: "Mug"}},
		},
	}
	router := buildRouter(logDiscard(), nil, nil, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/order/5", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["totalCost"].(float64) != 4448 {
		t.Fatalf("unexpected totalCost %v", body["totalCost"])
	}
	products := body["products"].([]any)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	first := products[0].(map[string]any)
	if first["count"].(float64) != 2 || first["price"].(float64) != 1999 {
		t.Fatalf("unexpected product %v", first)
	}
}

func TestOrderGetForeignOrderReadsAsMissing(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{ID: 5, ProfileID: 99}
	router := buildRouter(logDiscard(), nil, nil, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/order/5", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderConfirm(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{ID: 5, ProfileID: 7, Status: domain.OrderStatusConfirmed}
	router := buildRouter(logDiscard(), nil, nil, deps)

	body := `{"paymentType": "online", "deliveryType": "free", "city": "Riga", "address": "1 Main St"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/order/5", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrderPay(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{ID: 5, ProfileID: 7, Status: domain.OrderStatusConfirmed}
	router := buildRouter(logDiscard(), nil, nil, deps)

	body := `{"month": "12", "year": "27", "code": "123"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/payment/5", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(checkoutSvc.paidOrders) != 1 || checkoutSvc.paidOrders[0] != 5 {
		t.Fatalf("unexpected paid orders %v", checkoutSvc.paidOrders)
	}
}

func TestOrderPayAlreadyPaid(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{ID: 5, ProfileID: 7, Status: domain.OrderStatusPaid}
	checkoutSvc.payErr = fmt.Errorf("order 5 is not awaiting payment: %w", domain.ErrConflict)
	router := buildRouter(logDiscard(), nil, nil, deps)

	body := `{"month": "12", "year": "27", "code": "123"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/payment/5", body))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrderPayBadCard(t *testing.T) {
	deps, _, _, checkoutSvc, _ := testDeps()
	checkoutSvc.order = &domain.Order{ID: 5, ProfileID: 7, Status: domain.OrderStatusConfirmed}
	checkoutSvc.payErr = fmt.Errorf("bad expiry month %q: %w", "13", domain.ErrValidation)
	router := buildRouter(logDiscard(), nil, nil, deps)

	body := `{"month": "13", "year": "27", "code": "123"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/payment/5", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
