package loyalty

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	loyaltyRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/loyalty"
	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

// --- Фейки зависимостей ---

type fakeLoyaltyRepo struct {
	created          []*domain.LoyaltyTransaction
	createErr        error
	history          []domain.LoyaltyTransaction
	existsForBooking bool
}

func (f *fakeLoyaltyRepo) Create(_ context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, tx)
	return tx, nil
}

func (f *fakeLoyaltyRepo) GetByClient(_ context.Context, _ int64, _ int) ([]domain.LoyaltyTransaction, error) {
	return f.history, nil
}

func (f *fakeLoyaltyRepo) ExistsForBooking(_ context.Context, _ int64, _ domain.LoyaltyReason) (bool, error) {
	return f.existsForBooking, nil
}

type fakeClientRepo struct {
	client      *domain.Client
	err         error
	updateCalls int
}

func (f *fakeClientRepo) GetByID(_ context.Context, _ int64) (*domain.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func (f *fakeClientRepo) UpdateLoyaltyPoints(_ context.Context, _ int64, delta int) (int, error) {
	f.updateCalls++
	f.client.LoyaltyPoints += delta
	return f.client.LoyaltyPoints, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(balance int) (*Service, *fakeLoyaltyRepo, *fakeClientRepo) {
	lr := &fakeLoyaltyRepo{}
	cr := &fakeClientRepo{
		client: &domain.Client{ID: 3, CompanyID: 7, Name: "Иванов", LoyaltyPoints: balance},
	}
	return NewService(lr, cr, fakeTxManager{}, nopLogger{}), lr, cr
}

// --- Тесты ---

func TestAccrue_Success(t *testing.T) {
	svc, lr, _ := newService(100)

	resp, err := svc.Accrue(context.Background(), &models.AccrueRequest{
		CompanyID: 7, ClientID: 3, Points: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 150, resp.Balance)
	require.Len(t, lr.created, 1)
	assert.Equal(t, 50, lr.created[0].Delta)
	assert.Equal(t, domain.LoyaltyReasonAccrual, lr.created[0].Reason)

	// Без ключа от клиента сервис генерирует uuid сам
	_, err = uuid.Parse(lr.created[0].ID)
	assert.NoError(t, err)
}

func TestAccrue_NonPositivePoints(t *testing.T) {
	svc, lr, _ := newService(100)

	_, err := svc.Accrue(context.Background(), &models.AccrueRequest{
		CompanyID: 7, ClientID: 3, Points: 0,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, lr.created)
}

func TestAccrue_InvalidIdempotencyKey(t *testing.T) {
	svc, _, _ := newService(100)

	_, err := svc.Accrue(context.Background(), &models.AccrueRequest{
		CompanyID: 7, ClientID: 3, Points: 50, IdempotencyKey: "not-a-uuid",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRedeem_Success(t *testing.T) {
	svc, lr, _ := newService(100)

	resp, err := svc.Redeem(context.Background(), &models.RedeemRequest{
		CompanyID: 7, ClientID: 3, Points: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.Balance)
	require.Len(t, lr.created, 1)
	assert.Equal(t, -40, lr.created[0].Delta)
	assert.Equal(t, domain.LoyaltyReasonRedemption, lr.created[0].Reason)
}

func TestRedeem_InsufficientPoints(t *testing.T) {
	svc, lr, cr := newService(30)

	_, err := svc.Redeem(context.Background(), &models.RedeemRequest{
		CompanyID: 7, ClientID: 3, Points: 40,
	})
	require.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Empty(t, lr.created)
	assert.Zero(t, cr.updateCalls)
}

func TestRedeem_DuplicateKey(t *testing.T) {
	svc, lr, cr := newService(100)
	lr.createErr = loyaltyRepo.ErrDuplicateTransaction

	_, err := svc.Redeem(context.Background(), &models.RedeemRequest{
		CompanyID: 7, ClientID: 3, Points: 40,
		IdempotencyKey: uuid.NewString(),
	})
	require.ErrorIs(t, err, ErrDuplicateOperation)

	// Баланс не тронут: повтор операции не списывает второй раз
	assert.Zero(t, cr.updateCalls)
}

func TestApply_AccessDenied(t *testing.T) {
	svc, _, cr := newService(100)
	cr.client.CompanyID = 1000

	_, err := svc.Accrue(context.Background(), &models.AccrueRequest{
		CompanyID: 7, ClientID: 3, Points: 50,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestAccrueForBooking_SkipsWhenAlreadyAccrued(t *testing.T) {
	svc, lr, _ := newService(100)
	lr.existsForBooking = true

	err := svc.AccrueForBooking(context.Background(), 7, 3, 42, 150)
	require.NoError(t, err)
	assert.Empty(t, lr.created)
}

func TestAccrueForBooking_Accrues(t *testing.T) {
	svc, lr, cr := newService(100)

	err := svc.AccrueForBooking(context.Background(), 7, 3, 42, 150)
	require.NoError(t, err)

	require.Len(t, lr.created, 1)
	assert.Equal(t, domain.LoyaltyReasonBooking, lr.created[0].Reason)
	require.NotNil(t, lr.created[0].BookingID)
	assert.Equal(t, int64(42), *lr.created[0].BookingID)
	assert.Equal(t, 250, cr.client.LoyaltyPoints)
}

func TestAccrueForBooking_ZeroPointsNoop(t *testing.T) {
	svc, lr, _ := newService(100)

	err := svc.AccrueForBooking(context.Background(), 7, 3, 42, 0)
	require.NoError(t, err)
	assert.Empty(t, lr.created)
}

func TestAccrueForBooking_ConcurrentDuplicateTolerated(t *testing.T) {
	svc, lr, _ := newService(100)
	lr.createErr = loyaltyRepo.ErrDuplicateTransaction

	// Конкурентный проход успел начислить между проверкой и вставкой
	err := svc.AccrueForBooking(context.Background(), 7, 3, 42, 150)
	require.NoError(t, err)
}

func TestHistory_ReturnsBalanceAndJournal(t *testing.T) {
	svc, lr, _ := newService(60)
	lr.history = []domain.LoyaltyTransaction{
		{ID: uuid.NewString(), ClientID: 3, Delta: 100, Reason: domain.LoyaltyReasonAccrual},
		{ID: uuid.NewString(), ClientID: 3, Delta: -40, Reason: domain.LoyaltyReasonRedemption},
	}

	resp, err := svc.History(context.Background(), 7, 3)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.Balance)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "accrual", resp.Transactions[0].Reason)
	assert.Equal(t, -40, resp.Transactions[1].Delta)
}
