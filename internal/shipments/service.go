package shipments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
)

// CreateInput carries everything needed to book a shipment.
type CreateInput struct {
	OrderID        uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Mode           string
	Tracking       *string
}

// StatusInput identifies a shipment and the transition requested for it.
type StatusInput struct {
	ShipmentID     uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Status         string
}

// CustomsInput carries a customs declaration to attach to a shipment.
type CustomsInput struct {
	ShipmentID     uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Request        CustomsCreateRequest
}

// CustomsStatusInput identifies a declaration and its requested transition.
type CustomsStatusInput struct {
	CustomsID      uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Status         string
}

// Service defines shipment and customs operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*ShipmentDTO, error)
	ListByOrder(ctx context.Context, orderID, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]ShipmentDTO, error)
	SetStatus(ctx context.Context, input StatusInput) (*ShipmentDTO, error)
	AttachCustoms(ctx context.Context, input CustomsInput) (*CustomsDTO, error)
	SetCustomsStatus(ctx context.Context, input CustomsStatusInput) (*CustomsDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a shipments service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ShipmentDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	mode, err := enums.ParseShipmentMode(input.Mode)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipment mode")
	}

	order, err := s.loadOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !canFulfill(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to your company")
	}

	row, err := s.repo.CreateShipment(ctx, &models.Shipment{
		OrderID:  order.ID,
		Mode:     mode,
		Tracking: trimmedOrNil(input.Tracking),
		Status:   enums.ShipmentStatusBooked,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shipment")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID, actorCompanyID uuid.UUID, actorRole enums.UserRole) ([]ShipmentDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canView(order, actorCompanyID, actorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to your company")
	}

	rows, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}
	out := make([]ShipmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) SetStatus(ctx context.Context, input StatusInput) (*ShipmentDTO, error) {
	if input.ShipmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment id required")
	}
	next, err := enums.ParseShipmentStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipment status")
	}

	shipment, err := s.repo.FindShipmentByID(ctx, input.ShipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}

	order, err := s.loadOrder(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	if !canFulfill(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shipment does not belong to your company")
	}

	if shipment.Status == next {
		dto := FromModel(shipment)
		return &dto, nil
	}
	if !shipment.Status.CanTransition(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("shipment cannot move from %s to %s", shipment.Status, next))
	}

	if err := s.repo.UpdateShipmentStatus(ctx, shipment.ID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shipment status")
	}
	shipment.Status = next
	dto := FromModel(shipment)
	return &dto, nil
}

func (s *service) AttachCustoms(ctx context.Context, input CustomsInput) (*CustomsDTO, error) {
	if input.ShipmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment id required")
	}

	status := enums.CustomsStatusDraft
	if input.Request.Status != nil && strings.TrimSpace(*input.Request.Status) != "" {
		parsed, err := enums.ParseCustomsStatus(*input.Request.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customs status")
		}
		status = parsed
	}

	shipment, err := s.repo.FindShipmentByID(ctx, input.ShipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}

	order, err := s.loadOrder(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	if !canFulfill(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shipment does not belong to your company")
	}

	row, err := s.repo.CreateCustoms(ctx, &models.CustomsDecl{
		ShipmentID: shipment.ID,
		Data:       input.Request.Data,
		Status:     status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customs declaration")
	}
	dto := CustomsFromModel(row)
	return &dto, nil
}

func (s *service) SetCustomsStatus(ctx context.Context, input CustomsStatusInput) (*CustomsDTO, error) {
	if input.CustomsID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customs id required")
	}
	next, err := enums.ParseCustomsStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid customs status")
	}

	decl, err := s.repo.FindCustomsByID(ctx, input.CustomsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customs declaration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customs declaration")
	}

	shipment, err := s.repo.FindShipmentByID(ctx, decl.ShipmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	order, err := s.loadOrder(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	if !canFulfill(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "declaration does not belong to your company")
	}

	if decl.Status == next {
		dto := CustomsFromModel(decl)
		return &dto, nil
	}
	if !decl.Status.CanTransition(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("declaration cannot move from %s to %s", decl.Status, next))
	}

	if err := s.repo.UpdateCustomsStatus(ctx, decl.ID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customs status")
	}
	decl.Status = next
	dto := CustomsFromModel(decl)
	return &dto, nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// canFulfill reports whether the actor may book shipments or move statuses
// for the order: the supplier that owns it, an agent, or an admin.
func canFulfill(order *models.Order, companyID uuid.UUID, role enums.UserRole) bool {
	switch role {
	case enums.UserRoleAdmin, enums.UserRoleAgent:
		return true
	case enums.UserRoleSupplier:
		return order.SupplierCompanyID == companyID
	default:
		return false
	}
}

// canView additionally admits the buyer side of the order.
func canView(order *models.Order, companyID uuid.UUID, role enums.UserRole) bool {
	if canFulfill(order, companyID, role) {
		return true
	}
	return order.BuyerCompanyID == companyID
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
