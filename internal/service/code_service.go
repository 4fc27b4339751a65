package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/ledger"

	"github.com/google/uuid"
)

// CodeSource draws the numeric value of a new redemption code
type CodeSource func() (string, error)

// RandomCode draws uniformly from [CodeMin, CodeMax] using crypto/rand
func RandomCode() (string, error) {
	span := big.NewInt(entity.CodeMax - entity.CodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("draw code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+entity.CodeMin, 10), nil
}

type CodeService interface {
	GenerateCode(ctx context.Context, subscriptionId uuid.UUID) (*entity.RedemptionCode, error)
	GenerateCodeForSubscriber(ctx context.Context, subscriberId uuid.UUID) (*entity.RedemptionCode, error)
	CurrentCode(ctx context.Context, subscriberId uuid.UUID) (*entity.RedemptionCode, error)
}

type codeService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Ledger
	clock      clock.Clock
	ttl        time.Duration
	source     CodeSource
	logger     logger.ILogger
}

type CodeServiceOption func(*codeService)

func WithCodeSource(source CodeSource) CodeServiceOption {
	return func(s *codeService) {
		s.source = source
	}
}

func NewCodeService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	ttl time.Duration,
	logger logger.ILogger,
	opts ...CodeServiceOption,
) CodeService {
	s := &codeService{
		uowFactory: uowFactory,
		ledger:     ledger.New(clk),
		clock:      clk,
		ttl:        ttl,
		source:     RandomCode,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateCode issues a fresh code without consuming credit. Earlier live codes stay valid.
func (s *codeService) GenerateCode(ctx context.Context, subscriptionId uuid.UUID) (*entity.RedemptionCode, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindSubscriptionById(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, uow, sub)
}

func (s *codeService) GenerateCodeForSubscriber(ctx context.Context, subscriberId uuid.UUID) (*entity.RedemptionCode, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := s.ledger.ActiveSubscription(ctx, uow, subscriberId)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, uow, sub)
}

func (s *codeService) issue(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*entity.RedemptionCode, error) {
	now := s.clock.Now()
	if sub == nil || !sub.IsUsable(now) {
		return nil, fmt.Errorf("usable subscription: %w", entity.ErrNotFound)
	}
	if sub.CurrentCredits <= 0 {
		return nil, entity.ErrInsufficientCredit
	}

	value, err := s.source()
	if err != nil {
		return nil, err
	}

	code := &entity.RedemptionCode{
		Id:             uuid.New(),
		Code:           value,
		SubscriptionId: sub.Id,
		ExpiresAt:      now.Add(s.ttl),
		IsUsed:         false,
		CreatedAt:      now,
	}
	if err := uow.RedemptionCodeRepository().Create(ctx, code); err != nil {
		return nil, err
	}

	s.logger.Info("REDEMPTION", "Code generated", map[string]interface{}{
		"subscription_id": sub.Id,
		"expires_at":      code.ExpiresAt,
	})
	return code, nil
}

// CurrentCode returns the newest live code of the active subscription
func (s *codeService) CurrentCode(ctx context.Context, subscriberId uuid.UUID) (*entity.RedemptionCode, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := s.ledger.ActiveSubscription(ctx, uow, subscriberId)
	if err != nil {
		return nil, err
	}

	code, err := uow.RedemptionCodeRepository().FindLatestLiveBySubscription(ctx, sub.Id, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, fmt.Errorf("live code: %w", entity.ErrNotFound)
	}
	return code, nil
}
