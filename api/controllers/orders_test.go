package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tijaralink/tijaralink-backend/api/middleware"
	"github.com/tijaralink/tijaralink-backend/internal/orders"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
)

type stubOrderService struct {
	created *orders.CreateInput
	access  *orders.AccessInput

	order  *orders.OrderDTO
	escrow *orders.EscrowDTO
	err    error
}

func (s *stubOrderService) Create(ctx context.Context, input orders.CreateInput) (*orders.OrderDTO, error) {
	s.created = &input
	return s.order, s.err
}

func (s *stubOrderService) Get(ctx context.Context, input orders.AccessInput) (*orders.OrderDTO, error) {
	s.access = &input
	return s.order, s.err
}

func (s *stubOrderService) List(ctx context.Context, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []orders.OrderDTO{}, nil
}

func (s *stubOrderService) ReleaseEscrow(ctx context.Context, input orders.AccessInput) (*orders.EscrowDTO, error) {
	s.access = &input
	return s.escrow, s.err
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withActor(req *http.Request, companyID uuid.UUID, role enums.UserRole) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), uuid.NewString(), companyID.String(), string(role))
	return req.WithContext(ctx)
}

func TestOrderCreateForwardsActorIdentity(t *testing.T) {
	companyID := uuid.New()
	quoteID := uuid.New()
	svc := &stubOrderService{order: &orders.OrderDTO{ID: uuid.New(), QuoteID: quoteID}}
	handler := OrderCreate(svc, testLogger())

	body := []byte(fmt.Sprintf(`{"quote_id":%q}`, quoteID))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withActor(req, companyID, enums.UserRoleBuyer)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil {
		t.Fatal("expected service called")
	}
	if svc.created.ActorCompanyID != companyID || svc.created.ActorRole != enums.UserRoleBuyer {
		t.Fatalf("unexpected actor input %+v", svc.created)
	}
	if svc.created.Request.QuoteID != quoteID {
		t.Fatalf("unexpected quote id %s", svc.created.Request.QuoteID)
	}
}

func TestOrderDetailRejectsMalformedID(t *testing.T) {
	handler := OrderDetail(&stubOrderService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	req = addRouteParam(req, "orderId", "not-a-uuid")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderDetailMapsForbidden(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this order")}
	handler := OrderDetail(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = addRouteParam(req, "orderId", orderID.String())
	req = withActor(req, uuid.New(), enums.UserRoleBuyer)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if svc.access == nil || svc.access.OrderID != orderID {
		t.Fatalf("expected order id forwarded, got %+v", svc.access)
	}
}

func TestEscrowReleaseMapsStateConflict(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "order is cancelled")}
	handler := EscrowRelease(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/escrow/release", nil)
	req = addRouteParam(req, "orderId", orderID.String())
	req = withActor(req, uuid.New(), enums.UserRoleBuyer)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT got %s", envelope.Error.Code)
	}
}

func TestEscrowReleaseSuccess(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{escrow: &orders.EscrowDTO{OrderID: orderID, Released: true}}
	handler := EscrowRelease(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/escrow/release", nil)
	req = addRouteParam(req, "orderId", orderID.String())
	req = withActor(req, uuid.New(), enums.UserRoleBuyer)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data orders.EscrowDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Released {
		t.Fatalf("expected released escrow got %+v", envelope.Data)
	}
}
