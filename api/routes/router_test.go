package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tijaralink/tijaralink-backend/internal/auth"
	"github.com/tijaralink/tijaralink-backend/internal/contracts"
	"github.com/tijaralink/tijaralink-backend/internal/customs"
	"github.com/tijaralink/tijaralink-backend/internal/orders"
	"github.com/tijaralink/tijaralink-backend/internal/quotes"
	"github.com/tijaralink/tijaralink-backend/internal/reviews"
	"github.com/tijaralink/tijaralink-backend/internal/rfq"
	"github.com/tijaralink/tijaralink-backend/internal/shipments"
	pkgAuth "github.com/tijaralink/tijaralink-backend/pkg/auth"
	"github.com/tijaralink/tijaralink-backend/pkg/config"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	"github.com/tijaralink/tijaralink-backend/pkg/logger"
	pkgredis "github.com/tijaralink/tijaralink-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "minted", TokenType: "Bearer"}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "minted", TokenType: "Bearer"}, nil
}

type stubRfqService struct{}

func (stubRfqService) Create(ctx context.Context, buyerCompanyID uuid.UUID, req rfq.CreateRequest) (*rfq.RfqDTO, error) {
	return &rfq.RfqDTO{ID: uuid.New(), Title: req.Title}, nil
}

func (stubRfqService) List(ctx context.Context, params rfq.ListParams) (*rfq.RfqListDTO, error) {
	return &rfq.RfqListDTO{Rfqs: []rfq.RfqDTO{}}, nil
}

type stubQuoteService struct{}

func (stubQuoteService) Create(ctx context.Context, supplierCompanyID uuid.UUID, req quotes.CreateRequest) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{ID: uuid.New()}, nil
}

func (stubQuoteService) ListByRfq(ctx context.Context, rfqID uuid.UUID) ([]quotes.QuoteDTO, error) {
	return []quotes.QuoteDTO{}, nil
}

func (stubQuoteService) Accept(ctx context.Context, input quotes.AcceptInput) (*quotes.QuoteDTO, error) {
	return &quotes.QuoteDTO{ID: input.QuoteID}, nil
}

type stubOrderService struct {
	listed func(actorCompanyID uuid.UUID, actorRole enums.UserRole)
}

func (s stubOrderService) Create(ctx context.Context, input orders.CreateInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: uuid.New()}, nil
}

func (s stubOrderService) Get(ctx context.Context, input orders.AccessInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{ID: input.OrderID}, nil
}

func (s stubOrderService) List(ctx context.Context, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]orders.OrderDTO, error) {
	if s.listed != nil {
		s.listed(actorCompanyID, actorRole)
	}
	return []orders.OrderDTO{}, nil
}

func (s stubOrderService) ReleaseEscrow(ctx context.Context, input orders.AccessInput) (*orders.EscrowDTO, error) {
	return &orders.EscrowDTO{OrderID: input.OrderID, Released: true}, nil
}

type stubShipmentService struct{}

func (stubShipmentService) Create(ctx context.Context, input shipments.CreateInput) (*shipments.ShipmentDTO, error) {
	return &shipments.ShipmentDTO{ID: uuid.New(), OrderID: input.OrderID}, nil
}

func (stubShipmentService) ListByOrder(ctx context.Context, orderID, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]shipments.ShipmentDTO, error) {
	return []shipments.ShipmentDTO{}, nil
}

func (stubShipmentService) SetStatus(ctx context.Context, input shipments.StatusInput) (*shipments.ShipmentDTO, error) {
	return &shipments.ShipmentDTO{ID: input.ShipmentID}, nil
}

func (stubShipmentService) AttachCustoms(ctx context.Context, input shipments.CustomsInput) (*shipments.CustomsDTO, error) {
	return &shipments.CustomsDTO{ID: uuid.New(), ShipmentID: input.ShipmentID}, nil
}

func (stubShipmentService) SetCustomsStatus(ctx context.Context, input shipments.CustomsStatusInput) (*shipments.CustomsDTO, error) {
	return &shipments.CustomsDTO{ID: input.CustomsID}, nil
}

type stubContractService struct{}

func (stubContractService) CreateForOrder(ctx context.Context, input contracts.CreateInput) (*contracts.ContractDTO, error) {
	return &contracts.ContractDTO{ID: uuid.New(), OrderID: input.OrderID}, nil
}

func (stubContractService) Sign(ctx context.Context, input contracts.SignInput) (*contracts.ContractDTO, error) {
	return &contracts.ContractDTO{ID: input.ContractID}, nil
}

type stubReviewService struct{}

func (stubReviewService) Create(ctx context.Context, input reviews.WriteInput) (*reviews.ReviewDTO, error) {
	return &reviews.ReviewDTO{ID: uuid.New(), OrderID: input.OrderID}, nil
}

func (stubReviewService) Upsert(ctx context.Context, input reviews.WriteInput) (*reviews.ReviewDTO, error) {
	return &reviews.ReviewDTO{ID: uuid.New(), OrderID: input.OrderID}, nil
}

func (stubReviewService) ListBySupplier(ctx context.Context, companyID uuid.UUID) (*reviews.SupplierReviewsDTO, error) {
	return &reviews.SupplierReviewsDTO{Reviews: []reviews.ReviewDTO{}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DBPinger:        stubPinger{},
		Redis:           pkgredis.NewForTesting(newMemoryStore()),
		AuthService:     stubAuthService{},
		RfqService:      stubRfqService{},
		QuoteService:    stubQuoteService{},
		OrderService:    stubOrderService{},
		ShipmentService: stubShipmentService{},
		ContractService: stubContractService{},
		ReviewService:   stubReviewService{},
		CustomsService:  customs.NewService(),
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:    uuid.New(),
		CompanyID: uuid.New(),
		Email:     "user@example.com",
		FullName:  "Test User",
		Role:      role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedRoutesAcceptValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleBuyer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestRfqCreateRequiresBuyerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	body := `{"title":"Cotton fabric, 500 rolls"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rfq", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleSupplier))
	req.Header.Set("Idempotency-Key", uuid.NewString())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for supplier got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/rfq", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleBuyer))
	req.Header.Set("Idempotency-Key", uuid.NewString())
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for buyer got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestOrderCreateRequiresIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	body := fmt.Sprintf(`{"quote_id":%q}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleBuyer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleBuyer))
	req.Header.Set("Idempotency-Key", uuid.NewString())
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 with idempotency key got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestSupplierReviewsIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/"+uuid.NewString()+"/reviews", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without token got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestCustomsEstimateIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"goods_value_minor":1000000,"weight_kg":120,"volume_m3":1.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without token got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data customs.EstimateResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode estimate response: %v", err)
	}
	if envelope.Data.TotalMinor <= 0 {
		t.Fatalf("expected a positive estimate, got %+v", envelope)
	}
}

func TestEscrowReleaseReplaysIdempotentResponse(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	token := buildToken(t, cfg, enums.UserRoleBuyer)
	orderID := uuid.NewString()
	key := uuid.NewString()

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/escrow/release", strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", key)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 on first release got %d body %s", first.Code, first.Body.String())
	}
	second := send()
	if second.Code != first.Code || second.Body.String() != first.Body.String() {
		t.Fatalf("expected replayed response, got %d body %s", second.Code, second.Body.String())
	}
}

type memoryStore struct {
	data map[string]string
	incr map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *memoryStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *memoryStore) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryStore) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *memoryStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *memoryStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}
