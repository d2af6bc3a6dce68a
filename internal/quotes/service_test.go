package quotes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupQuotesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	rfqs := `
CREATE TABLE IF NOT EXISTS rfqs (
  id TEXT PRIMARY KEY,
  buyer_company_id TEXT NOT NULL,
  title TEXT NOT NULL,
  details TEXT,
  destination_country TEXT,
  status TEXT NOT NULL DEFAULT 'OPEN',
  created_at DATETIME,
  updated_at DATETIME
);`
	quotes := `
CREATE TABLE IF NOT EXISTS quotes (
  id TEXT PRIMARY KEY,
  rfq_id TEXT NOT NULL,
  supplier_company_id TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  price_per_unit_minor INTEGER NOT NULL,
  moq INTEGER,
  lead_time_days INTEGER,
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(rfqs).Error)
	require.NoError(t, db.Exec(quotes).Error)
	return db
}

func newQuotesService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	require.NoError(t, err)
	return svc
}

func seedRfq(t *testing.T, db *gorm.DB, buyer uuid.UUID) *models.Rfq {
	t.Helper()

	row := &models.Rfq{
		ID:             uuid.New(),
		BuyerCompanyID: buyer,
		Title:          "Bulk cotton",
		Status:         enums.RfqStatusOpen,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func seedQuote(t *testing.T, db *gorm.DB, rfqID, supplier uuid.UUID, status enums.QuoteStatus, created time.Time) *models.Quote {
	t.Helper()

	row := &models.Quote{
		ID:                uuid.New(),
		RfqID:             rfqID,
		SupplierCompanyID: supplier,
		Currency:          "USD",
		PricePerUnitMinor: 12500,
		Status:            status,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestServiceCreateNormalizesCurrency(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	rfq := seedRfq(t, db, uuid.New())
	supplier := uuid.New()

	dto, err := svc.Create(context.Background(), supplier, CreateRequest{
		RfqID:             rfq.ID,
		PricePerUnitMinor: 9900,
		Currency:          " eur ",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", dto.Currency)
	assert.Equal(t, enums.QuoteStatusPending, dto.Status)
	assert.Equal(t, supplier, dto.SupplierCompanyID)
}

func TestServiceCreateGuards(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	rfq := seedRfq(t, db, uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		RfqID:             rfq.ID,
		PricePerUnitMinor: 0,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), uuid.New(), CreateRequest{
		RfqID:             uuid.New(),
		PricePerUnitMinor: 100,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceListByRfqNewestFirst(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	rfq := seedRfq(t, db, uuid.New())
	now := time.Now().UTC()
	older := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, now.Add(-time.Hour))
	newer := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, now)
	seedQuote(t, db, uuid.New(), uuid.New(), enums.QuoteStatusPending, now)

	list, err := svc.ListByRfq(context.Background(), rfq.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestServiceAcceptTransitionsPending(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	buyer := uuid.New()
	rfq := seedRfq(t, db, buyer)
	quote := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, time.Now().UTC())

	dto, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        quote.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAccepted, dto.Status)

	var stored models.Quote
	require.NoError(t, db.Where("id = ?", quote.ID).First(&stored).Error)
	assert.Equal(t, enums.QuoteStatusAccepted, stored.Status)
}

func TestServiceAcceptIsIdempotent(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	buyer := uuid.New()
	rfq := seedRfq(t, db, buyer)
	quote := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusAccepted, time.Now().UTC())

	dto, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        quote.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAccepted, dto.Status)
}

func TestServiceAcceptRejectsSiblingsAndClosesRfq(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	buyer := uuid.New()
	rfq := seedRfq(t, db, buyer)
	now := time.Now().UTC()
	winner := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, now.Add(-time.Minute))
	sibling := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, now)

	dto, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        winner.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAccepted, dto.Status)

	var storedSibling models.Quote
	require.NoError(t, db.Where("id = ?", sibling.ID).First(&storedSibling).Error)
	assert.Equal(t, enums.QuoteStatusRejected, storedSibling.Status)

	var storedRfq models.Rfq
	require.NoError(t, db.Where("id = ?", rfq.ID).First(&storedRfq).Error)
	assert.Equal(t, enums.RfqStatusClosed, storedRfq.Status)

	_, err = svc.Accept(context.Background(), AcceptInput{
		QuoteID:        sibling.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	// Re-accepting the winner stays a no-op after the rfq closed.
	dto, err = svc.Accept(context.Background(), AcceptInput{
		QuoteID:        winner.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAccepted, dto.Status)
}

func TestServiceAcceptPendingOnClosedRfqConflicts(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	buyer := uuid.New()
	rfq := seedRfq(t, db, buyer)
	require.NoError(t, db.Model(&models.Rfq{}).Where("id = ?", rfq.ID).Update("status", enums.RfqStatusClosed).Error)
	late := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, time.Now().UTC())

	_, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        late.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	var stored models.Quote
	require.NoError(t, db.Where("id = ?", late.ID).First(&stored).Error)
	assert.Equal(t, enums.QuoteStatusPending, stored.Status)
}

func TestServiceAcceptRejectedConflicts(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	buyer := uuid.New()
	rfq := seedRfq(t, db, buyer)
	quote := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusRejected, time.Now().UTC())

	_, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        quote.ID,
		ActorCompanyID: buyer,
		ActorRole:      enums.UserRoleBuyer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestServiceAcceptForbiddenForOtherBuyer(t *testing.T) {
	db := setupQuotesTestDB(t)
	svc := newQuotesService(t, db)

	rfq := seedRfq(t, db, uuid.New())
	quote := seedQuote(t, db, rfq.ID, uuid.New(), enums.QuoteStatusPending, time.Now().UTC())

	_, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        quote.ID,
		ActorCompanyID: uuid.New(),
		ActorRole:      enums.UserRoleBuyer,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	dto, err := svc.Accept(context.Background(), AcceptInput{
		QuoteID:        quote.ID,
		ActorCompanyID: uuid.New(),
		ActorRole:      enums.UserRoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusAccepted, dto.Status)
}
