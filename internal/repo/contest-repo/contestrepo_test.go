package contestrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/squadhelp/internal/domain"
	"github.com/GlebRadaev/squadhelp/internal/pg"
)

const orderID = "5f0c8c2e-9a43-4a52-9d0f-1c5b1b0f7a11"

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	t.Cleanup(mockDB.Close)

	return repo, mockDB, mockTxManager
}

func contestArgs(c domain.Contest) []any {
	return []any{
		c.OrderID, c.UserID, c.ContestType, c.Title, c.Industry, c.FocusOfWork, c.TargetCustomer,
		c.StyleName, c.NameVenture, c.TypeOfName, c.TypeOfTagline, c.BrandStyle, c.Status, c.Priority, c.Prize, c.CreatedAt,
	}
}

func TestRepository_CreateBatch(t *testing.T) {
	repo, mock, tx := NewMock(t)
	now := time.Now()
	contests := []domain.Contest{
		{OrderID: orderID, UserID: 1, ContestType: "name", Title: "Name me", Status: domain.ContestStatusActive, Priority: 1, Prize: decimal.NewFromInt(33), CreatedAt: now},
		{OrderID: orderID, UserID: 1, ContestType: "logo", Title: "Draw me", Status: domain.ContestStatusPending, Priority: 2, Prize: decimal.NewFromInt(34), CreatedAt: now},
	}
	query := regexp.QuoteMeta(insertContestQuery)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		resultIDs []int
	}{
		{
			name: "All contests saved",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(contestArgs(contests[0])...).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectQuery(query).WithArgs(contestArgs(contests[1])...).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))
			},
			resultIDs: []int{10, 11},
		},
		{
			name: "Second insert fails",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(contestArgs(contests[0])...).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectQuery(query).WithArgs(contestArgs(contests[1])...).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
				tt.mockSetup()
				return fn(ctx)
			})

			result, err := repo.CreateBatch(context.Background(), contests)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, len(tt.resultIDs))
				for i, id := range tt.resultIDs {
					assert.Equal(t, id, result[i].ID)
					assert.Equal(t, contests[i].Priority, result[i].Priority)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	prize := decimal.NewFromInt(50)
	columns := []string{
		"id", "order_id", "user_id", "contest_type", "title", "industry", "focus_of_work", "target_customer",
		"style_name", "name_venture", "type_of_name", "type_of_tagline", "brand_style", "status", "priority", "prize", "created_at",
	}
	query := regexp.QuoteMeta("FROM contests WHERE user_id = $1 ORDER BY created_at DESC, order_id, priority")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Contest
	}{
		{
			name: "Contests found",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(1, orderID, 1, "name", "Name me", "IT", "", "", "", "", "", "", "", domain.ContestStatusActive, 1, prize, now).
					AddRow(2, orderID, 1, "logo", "Draw me", "IT", "", "", "", "", "", "", "", domain.ContestStatusPending, 2, prize, now)
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)
			},
			result: []domain.Contest{
				{ID: 1, OrderID: orderID, UserID: 1, ContestType: "name", Title: "Name me", Industry: "IT", Status: domain.ContestStatusActive, Priority: 1, Prize: prize, CreatedAt: now},
				{ID: 2, OrderID: orderID, UserID: 1, ContestType: "logo", Title: "Draw me", Industry: "IT", Status: domain.ContestStatusPending, Priority: 2, Prize: prize, CreatedAt: now},
			},
		},
		{
			name: "No contests",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(pgxmock.NewRows(columns))
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}
