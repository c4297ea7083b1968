package voting

import (
	"context"

	"cryptoboard/internal/domain"
)

type VoteRepositoryInterface interface {
	Upsert(ctx context.Context, v *domain.Vote) error
}
