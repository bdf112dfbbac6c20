package purchase

import (
	"context"
	"fmt"
	"log"

	"culturevault/pkg/events"
	"culturevault/pkg/notify"
)

type PurchaseService interface {
	Buy(ctx context.Context, assetID int64, buyer string, amount, fundsProvided int64) (Receipt, error)
}

type purchaseService struct {
	repo     PurchaseRepository
	hub      *events.Hub
	notifier notify.Notifier
}

func NewPurchaseService(repo PurchaseRepository, hub *events.Hub, notifier notify.Notifier) PurchaseService {
	return &purchaseService{repo: repo, hub: hub, notifier: notifier}
}

func (s *purchaseService) Buy(ctx context.Context, assetID int64, buyer string, amount, fundsProvided int64) (Receipt, error) {
	if buyer == "" {
		return Receipt{}, fmt.Errorf("%w: buyer is required", ErrInvalidOrder)
	}
	if amount < 1 {
		return Receipt{}, fmt.Errorf("%w: amount must be at least 1", ErrInvalidOrder)
	}
	if fundsProvided < 0 {
		return Receipt{}, fmt.Errorf("%w: funds_provided must be non-negative", ErrInvalidOrder)
	}

	receipt, err := s.repo.Settle(ctx, SettleInput{
		AssetID:       assetID,
		Buyer:         buyer,
		Amount:        amount,
		FundsProvided: fundsProvided,
	})
	if err != nil {
		return Receipt{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast(events.Event{
			Type:      events.TypeAccessRightsPurchased,
			AssetID:   receipt.AssetID,
			Actor:     receipt.Buyer,
			Amount:    receipt.Amount,
			UnitPrice: receipt.UnitPrice,
		})
	}

	// Payout notice is best-effort: the settlement is already committed.
	if s.notifier != nil && receipt.OwnerContact != "" {
		if err := s.notifier.SendPayoutNotice(receipt.OwnerContact, receipt.AssetTitle, receipt.Amount, receipt.UnitPrice, receipt.FundsForwarded); err != nil {
			log.Printf("payout notice for asset %d failed: %v", receipt.AssetID, err)
		}
	}

	return receipt, nil
}
