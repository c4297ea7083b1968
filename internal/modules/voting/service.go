package voting

import (
	"context"

	"cryptoboard/internal/domain"
)

type Service struct {
	votes VoteRepositoryInterface
}

func NewService(votes VoteRepositoryInterface) *Service {
	return &Service{votes: votes}
}

// Save records the reaction, replacing a previous vote on the same content.
func (s *Service) Save(ctx context.Context, userID int64, req VoteRequest) (*domain.Vote, error) {
	vote := &domain.Vote{
		UserID:    userID,
		ContentID: req.ContentID,
		Vote:      domain.VoteValue(req.Vote),
	}
	if err := s.votes.Upsert(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}
