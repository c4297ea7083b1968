package repository

import (
	"context"
	"time"

	"cryptoboard/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

type voteModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_votes_user_content"`
	ContentID string    `gorm:"column:content_id;not null;uniqueIndex:idx_votes_user_content"`
	Vote      string    `gorm:"column:vote;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string { return "votes" }

func toDomainVote(m voteModel) *domain.Vote {
	return &domain.Vote{
		ID:        m.ID,
		UserID:    m.UserID,
		ContentID: m.ContentID,
		Vote:      domain.VoteValue(m.Vote),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Upsert stores the vote, replacing the value if the user already voted
// on this content.
func (r *VoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	m := voteModel{
		UserID:    v.UserID,
		ContentID: v.ContentID,
		Vote:      string(v.Vote),
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote", "updated_at"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVote(m)
	return nil
}

func (r *VoteRepository) GetByUserAndContent(ctx context.Context, userID int64, contentID string) (*domain.Vote, error) {
	var m voteModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVote(m), nil
}

// DeleteStale removes votes older than the retention window; used by the
// cleanup binary only.
func (r *VoteRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("updated_at < ?", olderThan).
		Delete(&voteModel{})
	return tx.RowsAffected, tx.Error
}
