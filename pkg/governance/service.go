package governance

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"culturevault/pkg/events"
	"culturevault/pkg/pricing"
)

var ErrUnauthorized = errors.New("caller is not the governance authority")

// Authority is the single privileged identity. Every privileged entry point
// re-checks it explicitly; there is no ambient admin state.
type Authority struct {
	Address string
	KeyHash string // bcrypt hash of the authority key
}

type GovernanceService interface {
	SetMarketValue(ctx context.Context, caller, key string, assetID, value int64) error
	SetWeights(ctx context.Context, caller, key string, alpha, beta, gamma int64) (pricing.Weights, error)
}

type governanceService struct {
	repo      GovernanceRepository
	authority Authority
	hub       *events.Hub
}

func NewGovernanceService(repo GovernanceRepository, authority Authority, hub *events.Hub) GovernanceService {
	return &governanceService{repo: repo, authority: authority, hub: hub}
}

func (s *governanceService) authorize(caller, key string) error {
	if s.authority.Address == "" || caller != s.authority.Address {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.authority.KeyHash), []byte(key)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

func (s *governanceService) SetMarketValue(ctx context.Context, caller, key string, assetID, value int64) error {
	if err := s.authorize(caller, key); err != nil {
		return err
	}
	if value < 0 {
		return errors.New("market value must be non-negative")
	}

	if err := s.repo.SetMarketValue(ctx, assetID, value, caller); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Broadcast(events.Event{
			Type:    events.TypeMarketValueUpdated,
			AssetID: assetID,
			Actor:   caller,
			Amount:  value,
		})
	}
	return nil
}

func (s *governanceService) SetWeights(ctx context.Context, caller, key string, alpha, beta, gamma int64) (pricing.Weights, error) {
	if err := s.authorize(caller, key); err != nil {
		return pricing.Weights{}, err
	}
	if alpha < 0 || beta < 0 || gamma < 0 {
		return pricing.Weights{}, errors.New("weights must be non-negative")
	}

	w, err := s.repo.SetWeights(ctx, alpha, beta, gamma, caller)
	if err != nil {
		return pricing.Weights{}, err
	}

	if s.hub != nil {
		s.hub.Broadcast(events.Event{
			Type:   events.TypePricingWeightsUpdated,
			Actor:  caller,
			Detail: weightsDetail(w.Alpha, w.Beta, w.Gamma),
		})
	}
	return w, nil
}
