package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avlebedev/carservice-admin/internal/domain"
	clientRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/client"
	loyaltyRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/loyalty"
	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

// Размер истории движений в ответе
const historyLimit = 50

// Service сервис баллов лояльности
// Баланс клиента и журнал движений меняются только вместе, в одной
// сериализуемой транзакции
type Service struct {
	loyaltyRepo LoyaltyRepository
	clientRepo  ClientRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса лояльности
func NewService(
	loyaltyRepo LoyaltyRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		loyaltyRepo: loyaltyRepo,
		clientRepo:  clientRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Accrue начисляет баллы клиенту вручную
func (s *Service) Accrue(ctx context.Context, req *models.AccrueRequest) (*models.BalanceResponse, error) {
	s.logger.Info("Accrue: client=%d, points=%d", req.ClientID, req.Points)

	if req.Points <= 0 {
		s.logger.Warn("Accrue: non-positive points=%d for client=%d", req.Points, req.ClientID)
		return nil, fmt.Errorf("%w: points must be positive", ErrInvalidInput)
	}

	return s.apply(ctx, req.CompanyID, req.ClientID, req.Points,
		domain.LoyaltyReasonAccrual, nil, req.Comment, req.IdempotencyKey)
}

// Redeem списывает баллы клиента
func (s *Service) Redeem(ctx context.Context, req *models.RedeemRequest) (*models.BalanceResponse, error) {
	s.logger.Info("Redeem: client=%d, points=%d", req.ClientID, req.Points)

	if req.Points <= 0 {
		s.logger.Warn("Redeem: non-positive points=%d for client=%d", req.Points, req.ClientID)
		return nil, fmt.Errorf("%w: points must be positive", ErrInvalidInput)
	}

	return s.apply(ctx, req.CompanyID, req.ClientID, -req.Points,
		domain.LoyaltyReasonRedemption, nil, req.Comment, req.IdempotencyKey)
}

// AccrueForBooking начисляет баллы за завершенное бронирование
// Вызывается фоновой задачей; повтор по тому же бронированию не начисляет
func (s *Service) AccrueForBooking(ctx context.Context, companyID, clientID, bookingID int64, points int) error {
	if points <= 0 {
		return nil
	}

	exists, err := s.loyaltyRepo.ExistsForBooking(ctx, bookingID, domain.LoyaltyReasonBooking)
	if err != nil {
		s.logger.Error("AccrueForBooking: failed to check booking=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AccrueForBooking - check failed: %v", ErrInternal, err)
	}
	if exists {
		return nil
	}

	_, err = s.apply(ctx, companyID, clientID, points, domain.LoyaltyReasonBooking, &bookingID, nil, "")
	if errors.Is(err, ErrDuplicateOperation) {
		// Конкурентный запуск успел начислить первым
		return nil
	}
	return err
}

// History возвращает баланс и журнал движений баллов клиента
func (s *Service) History(ctx context.Context, companyID, clientID int64) (*models.HistoryResponse, error) {
	client, err := s.getCompanyClient(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.loyaltyRepo.GetByClient(ctx, clientID, historyLimit)
	if err != nil {
		s.logger.Error("History: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	return &models.HistoryResponse{
		ClientID:     clientID,
		Balance:      client.LoyaltyPoints,
		Transactions: models.FromDomainTransactions(transactions),
	}, nil
}

// apply атомарно записывает движение баллов и меняет баланс клиента
func (s *Service) apply(
	ctx context.Context,
	companyID, clientID int64,
	delta int,
	reason domain.LoyaltyReason,
	bookingID *int64,
	comment *string,
	idempotencyKey string,
) (*models.BalanceResponse, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	} else if _, err := uuid.Parse(idempotencyKey); err != nil {
		return nil, fmt.Errorf("%w: idempotency key must be a uuid", ErrInvalidInput)
	}

	var balance int
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		client, err := s.getCompanyClient(ctx, companyID, clientID)
		if err != nil {
			return err
		}

		if delta < 0 && client.LoyaltyPoints+delta < 0 {
			s.logger.Warn("apply: insufficient points for client=%d: balance=%d, delta=%d",
				clientID, client.LoyaltyPoints, delta)
			return ErrInsufficientPoints
		}

		_, err = s.loyaltyRepo.Create(ctx, &domain.LoyaltyTransaction{
			ID:        idempotencyKey,
			ClientID:  clientID,
			Delta:     delta,
			Reason:    reason,
			BookingID: bookingID,
			Comment:   comment,
		})
		if err != nil {
			if errors.Is(err, loyaltyRepo.ErrDuplicateTransaction) {
				return ErrDuplicateOperation
			}
			return fmt.Errorf("%w: apply - failed to record transaction: %v", ErrInternal, err)
		}

		balance, err = s.clientRepo.UpdateLoyaltyPoints(ctx, clientID, delta)
		if err != nil {
			return fmt.Errorf("%w: apply - failed to update balance: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateOperation) && !errors.Is(err, ErrInsufficientPoints) &&
			!errors.Is(err, ErrClientNotFound) && !errors.Is(err, ErrAccessDenied) {
			s.logger.Error("apply: transaction failed for client=%d: %v", clientID, err)
		}
		return nil, err
	}

	s.logger.Info("apply: client=%d, delta=%d, reason=%s, balance=%d", clientID, delta, reason, balance)
	return &models.BalanceResponse{ClientID: clientID, Balance: balance}, nil
}

func (s *Service) getCompanyClient(ctx context.Context, companyID, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("getCompanyClient: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	if client.CompanyID != companyID {
		s.logger.Warn("getCompanyClient: client id=%d belongs to company=%d, requested by company=%d",
			clientID, client.CompanyID, companyID)
		return nil, ErrAccessDenied
	}

	return client, nil
}
