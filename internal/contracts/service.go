package contracts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
)

// DefaultTerms is hashed when the caller supplies no terms of their own.
const DefaultTerms = "Standard TijaraLink Terms"

// CreateInput identifies the order a contract is drawn up for.
type CreateInput struct {
	OrderID        uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Terms          *string
}

// SignInput identifies the contract and the party signing it.
type SignInput struct {
	ContractID     uuid.UUID
	ActorCompanyID uuid.UUID
	ActorRole      enums.UserRole
	Role           string
}

// Service defines contract operations exposed to controllers.
type Service interface {
	CreateForOrder(ctx context.Context, input CreateInput) (*ContractDTO, error)
	Sign(ctx context.Context, input SignInput) (*ContractDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a contracts service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contracts repository required")
	}
	return &service{repo: repo}, nil
}

// CreateForOrder draws up a contract for the order, storing only the sha256
// of the terms. An order's existing contract is returned unchanged, whatever
// terms the caller sent.
func (s *service) CreateForOrder(ctx context.Context, input CreateInput) (*ContractDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrderByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !isParty(order, input.ActorCompanyID, input.ActorRole) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to your company")
	}

	if existing, err := s.repo.FindByOrderID(ctx, order.ID); err == nil {
		dto := FromModel(existing)
		return &dto, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}

	row, err := s.repo.Create(ctx, &models.Contract{
		OrderID: order.ID,
		Hash:    hashTerms(input.Terms),
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			// lost the race to another create; the winner's row is the contract
			existing, findErr := s.repo.FindByOrderID(ctx, order.ID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "reload contract")
			}
			dto := FromModel(existing)
			return &dto, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contract")
	}
	dto := FromModel(row)
	return &dto, nil
}

// Sign records the signing timestamp for one party. Signing twice for the
// same party is a no-op that returns the current state.
func (s *service) Sign(ctx context.Context, input SignInput) (*ContractDTO, error) {
	if input.ContractID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contract id required")
	}
	party, err := enums.ParseContractParty(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be buyer or supplier")
	}

	contract, err := s.repo.FindByID(ctx, input.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}

	order, err := s.repo.FindOrderByID(ctx, contract.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := authorizeSigner(order, party, input.ActorCompanyID, input.ActorRole); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch party {
	case enums.ContractPartyBuyer:
		if contract.BuyerSignedAt == nil {
			if err := s.repo.SetSignedAt(ctx, contract.ID, "buyer_signed_at", now); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign contract")
			}
			contract.BuyerSignedAt = &now
		}
	case enums.ContractPartySupplier:
		if contract.SupplierSignedAt == nil {
			if err := s.repo.SetSignedAt(ctx, contract.ID, "supplier_signed_at", now); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign contract")
			}
			contract.SupplierSignedAt = &now
		}
	}

	dto := FromModel(contract)
	return &dto, nil
}

// authorizeSigner requires the actor to be the company on the signing side.
// Admins may sign for either party.
func authorizeSigner(order *models.Order, party enums.ContractParty, companyID uuid.UUID, role enums.UserRole) error {
	if role == enums.UserRoleAdmin {
		return nil
	}
	switch party {
	case enums.ContractPartyBuyer:
		if role == enums.UserRoleBuyer && order.BuyerCompanyID == companyID {
			return nil
		}
	case enums.ContractPartySupplier:
		if role == enums.UserRoleSupplier && order.SupplierCompanyID == companyID {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "cannot sign for the requested party")
}

func isParty(order *models.Order, companyID uuid.UUID, role enums.UserRole) bool {
	if role == enums.UserRoleAdmin {
		return true
	}
	return order.BuyerCompanyID == companyID || order.SupplierCompanyID == companyID
}

func hashTerms(terms *string) string {
	text := DefaultTerms
	if terms != nil && strings.TrimSpace(*terms) != "" {
		text = *terms
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
