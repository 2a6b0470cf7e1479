package discussion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDiscussionNotFound = errors.New("discussion not found")

const maxReplies = 100

type VoteResult struct {
	State VoteState
	Stats Stats
}

type Repository interface {
	Create(ctx context.Context, d *Discussion) error
	FindByID(ctx context.Context, id uuid.UUID) (*Discussion, error)
	// List returns up to limit discussions newest first, starting after
	// cursor. limit <= 0 means no limit.
	List(ctx context.Context, limit int, after *Cursor) ([]Discussion, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	CreateReply(ctx context.Context, reply *Reply) error
	IncrementReplies(ctx context.Context, discussionID uuid.UUID) error
	ListReplies(ctx context.Context, discussionID uuid.UUID) ([]Reply, error)

	ApplyVote(ctx context.Context, discussionID, userID uuid.UUID, requested VoteType) (*VoteResult, error)
	ReconcileStats(ctx context.Context, discussionID uuid.UUID) (*Stats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Discussion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Discussion, error) {
	var d Discussion
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscussionNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context, limit int, after *Cursor) ([]Discussion, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if after != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)", after.CreatedAt, after.CreatedAt, after.ID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []Discussion
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&Discussion{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) CreateReply(ctx context.Context, reply *Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *repository) IncrementReplies(ctx context.Context, discussionID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Discussion{}).
		Where("id = ?", discussionID).
		UpdateColumns(map[string]interface{}{
			"stats_replies": gorm.Expr("stats_replies + ?", 1),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("increment replies: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDiscussionNotFound
	}
	return nil
}

func (r *repository) ListReplies(ctx context.Context, discussionID uuid.UUID) ([]Reply, error) {
	var out []Reply
	err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").Order("id ASC").
		Limit(maxReplies).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyVote runs the whole toggle in one transaction. The discussion row is
// locked first so concurrent toggles on it serialize; the unique index on
// (discussion_id, user_id) rejects a second first-vote from the same user
// with gorm.ErrDuplicatedKey.
func (r *repository) ApplyVote(ctx context.Context, discussionID, userID uuid.UUID, requested VoteType) (*VoteResult, error) {
	var result VoteResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d Discussion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&d, "id = ?", discussionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscussionNotFound
		}
		if err != nil {
			return err
		}

		var existing Vote
		var current *VoteType
		err = tx.Where("discussion_id = ? AND user_id = ?", discussionID, userID).Take(&existing).Error
		switch {
		case err == nil:
			current = &existing.Type
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		change := Transition(current, requested)
		switch {
		case current == nil:
			err = tx.Create(&Vote{DiscussionID: discussionID, UserID: userID, Type: requested}).Error
		case change.Next == NoVote:
			err = tx.Delete(&Vote{}, "id = ?", existing.ID).Error
		default:
			err = tx.Model(&Vote{}).Where("id = ?", existing.ID).Update("type", requested).Error
		}
		if err != nil {
			return err
		}

		err = tx.Model(&Discussion{}).Where("id = ?", discussionID).UpdateColumns(map[string]interface{}{
			"stats_upvotes":   gorm.Expr("stats_upvotes + ?", change.DeltaUp),
			"stats_downvotes": gorm.Expr("stats_downvotes + ?", change.DeltaDown),
		}).Error
		if err != nil {
			return err
		}

		if err := tx.Select("stats_upvotes", "stats_downvotes", "stats_replies").First(&d, "id = ?", discussionID).Error; err != nil {
			return err
		}
		result = VoteResult{State: change.Next, Stats: d.Stats}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type voteCount struct {
	Type  VoteType
	Count int
}

// ReconcileStats recomputes the denormalized counters from the reply and
// vote rows.
func (r *repository) ReconcileStats(ctx context.Context, discussionID uuid.UUID) (*Stats, error) {
	var stats Stats

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d Discussion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&d, "id = ?", discussionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscussionNotFound
		}
		if err != nil {
			return err
		}

		var replies int64
		if err := tx.Model(&Reply{}).Where("discussion_id = ?", discussionID).Count(&replies).Error; err != nil {
			return err
		}

		var counts []voteCount
		err = tx.Model(&Vote{}).
			Select("type, COUNT(*) AS count").
			Where("discussion_id = ?", discussionID).
			Group("type").
			Scan(&counts).Error
		if err != nil {
			return err
		}

		stats.Replies = int(replies)
		for _, c := range counts {
			switch c.Type {
			case Upvote:
				stats.Upvotes = c.Count
			case Downvote:
				stats.Downvotes = c.Count
			}
		}

		return tx.Model(&Discussion{}).Where("id = ?", discussionID).UpdateColumns(map[string]interface{}{
			"stats_upvotes":   stats.Upvotes,
			"stats_downvotes": stats.Downvotes,
			"stats_replies":   stats.Replies,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
