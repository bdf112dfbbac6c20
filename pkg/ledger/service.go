package ledger

import (
	"context"
	"errors"

	"culturevault/pkg/events"
	"culturevault/pkg/registry"
)

// DefaultActionType labels consumptions whose caller did not name the
// capability being unlocked.
const DefaultActionType = "UNLOCK_CONTENT"

type LedgerService interface {
	BalanceOf(ctx context.Context, assetID int64, account string) (Balance, error)
	Consume(ctx context.Context, assetID int64, account, actionType string) (ConsumptionReceipt, error)
}

type ledgerService struct {
	repo   LedgerRepository
	assets registry.AssetRepository
	hub    *events.Hub
}

func NewLedgerService(repo LedgerRepository, assets registry.AssetRepository, hub *events.Hub) LedgerService {
	return &ledgerService{repo: repo, assets: assets, hub: hub}
}

func (s *ledgerService) BalanceOf(ctx context.Context, assetID int64, account string) (Balance, error) {
	if account == "" {
		return Balance{}, errors.New("account is required")
	}
	if _, err := s.assets.Lookup(ctx, assetID); err != nil {
		return Balance{}, err
	}
	return s.repo.GetBalance(ctx, assetID, account)
}

func (s *ledgerService) Consume(ctx context.Context, assetID int64, account, actionType string) (ConsumptionReceipt, error) {
	if account == "" {
		return ConsumptionReceipt{}, errors.New("account is required")
	}
	if actionType == "" {
		actionType = DefaultActionType
	}

	if _, err := s.assets.Lookup(ctx, assetID); err != nil {
		return ConsumptionReceipt{}, err
	}

	receipt, err := s.repo.Consume(ctx, assetID, account, actionType)
	if err != nil {
		return ConsumptionReceipt{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast(events.Event{
			Type:       events.TypeAccessConsumed,
			AssetID:    assetID,
			Actor:      account,
			Amount:     1,
			ActionType: actionType,
		})
	}

	return receipt, nil
}
