package rfq

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

func setupRfqTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, db.Exec(rfqs).Error)
	return db
}

func seedRfq(t *testing.T, db *gorm.DB, buyer uuid.UUID, title string, created time.Time) *models.Rfq {
	t.Helper()

	row := &models.Rfq{
		ID:             uuid.New(),
		BuyerCompanyID: buyer,
		Title:          title,
		Status:         enums.RfqStatusOpen,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestServiceCreateValidatesAndPersists(t *testing.T) {
	db := setupRfqTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	buyer := uuid.New()
	country := "ae"
	details := "  10k units, CIF Aqaba  "
	dto, err := svc.Create(context.Background(), buyer, CreateRequest{
		Title:              "  Bulk olive oil  ",
		Details:            &details,
		DestinationCountry: &country,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bulk olive oil", dto.Title)
	assert.Equal(t, enums.RfqStatusOpen, dto.Status)
	require.NotNil(t, dto.DestinationCountry)
	assert.Equal(t, "AE", *dto.DestinationCountry)

	var stored models.Rfq
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, buyer, stored.BuyerCompanyID)
	require.NotNil(t, stored.Details)
	assert.Equal(t, "10k units, CIF Aqaba", *stored.Details)
}

func TestServiceCreateRejectsBlankTitle(t *testing.T) {
	db := setupRfqTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), CreateRequest{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), uuid.Nil, CreateRequest{Title: "ok"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestServiceListNewestFirst(t *testing.T) {
	db := setupRfqTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	buyer := uuid.New()
	now := time.Now().UTC()
	seedRfq(t, db, buyer, "older", now.Add(-time.Hour))
	seedRfq(t, db, buyer, "newer", now)

	list, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, list.Rfqs, 2)
	assert.Equal(t, "newer", list.Rfqs[0].Title)
	assert.Equal(t, "older", list.Rfqs[1].Title)
	assert.Empty(t, list.NextCursor)
}

func TestServiceListPaginatesWithCursor(t *testing.T) {
	db := setupRfqTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	buyer := uuid.New()
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		seedRfq(t, db, buyer, fmt.Sprintf("rfq-%d", i), now.Add(-time.Duration(i)*time.Hour))
	}

	first, err := svc.List(context.Background(), ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Rfqs, 2)
	assert.Equal(t, "rfq-0", first.Rfqs[0].Title)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(context.Background(), ListParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Rfqs, 1)
	assert.Equal(t, "rfq-2", second.Rfqs[0].Title)
	assert.Empty(t, second.NextCursor)
}

func TestServiceListRejectsMalformedCursor(t *testing.T) {
	db := setupRfqTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), ListParams{Cursor: "not-base64!"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
