package discussion

import (
	"context"
	"errors"
	"strings"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxVoteAttempts = 3
	maxPageSize     = 100
)

type Service interface {
	Create(ctx context.Context, dto CreateDiscussionDTO, author Author) (*Discussion, error)
	Get(ctx context.Context, id string) (*Discussion, error)
	List(ctx context.Context, limit int, cursor string) (*Page, error)
	AddReply(ctx context.Context, dto CreateReplyDTO, author Author) (*Reply, error)
	Replies(ctx context.Context, discussionID string) ([]Reply, error)
	Vote(ctx context.Context, discussionID string, userID uuid.UUID, dto VoteDTO) (*VoteResponse, error)
	ReconcileStats(ctx context.Context, discussionID string) (*Stats, error)
	ReconcileAll(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, dto CreateDiscussionDTO, author Author) (*Discussion, error) {
	d := &Discussion{
		Title:    strings.TrimSpace(dto.Title),
		Content:  strings.TrimSpace(dto.Content),
		Category: strings.TrimSpace(dto.Category),
		Author:   author,
		Status:   StatusOpen,
	}
	switch {
	case d.Title == "":
		return nil, apperr.Validation("title is required")
	case d.Content == "":
		return nil, apperr.Validation("content is required")
	case d.Category == "":
		return nil, apperr.Validation("category is required")
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, apperr.Internal(err)
	}
	config.WithContext(ctx).WithFields(logrus.Fields{
		"discussion_id": d.ID,
		"question_id":   d.QuestionID,
	}).Info("Discussion created")
	return d, nil
}

func (s *service) Get(ctx context.Context, id string) (*Discussion, error) {
	did, err := parseID(id)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, did)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return d, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) (*Page, error) {
	if limit <= 0 {
		if cursor != "" {
			return nil, apperr.Validation("cursor requires limit")
		}
		items, err := s.repo.List(ctx, 0, nil)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return &Page{Items: items}, nil
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var after *Cursor
	if cursor != "" {
		c, err := DecodeCursor(cursor)
		if err != nil {
			return nil, apperr.Validation("invalid cursor")
		}
		after = c
	}

	// One extra row tells us whether another page exists.
	items, err := s.repo.List(ctx, limit+1, after)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	page := &Page{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		next, err := Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		page.NextCursor = next
	}
	return page, nil
}

// AddReply stores the reply and then bumps the parent's counter. The two
// writes are independent; a failed increment leaves the counter stale until
// ReconcileStats runs.
func (s *service) AddReply(ctx context.Context, dto CreateReplyDTO, author Author) (*Reply, error) {
	log := config.WithContext(ctx)

	did, err := parseID(dto.DiscussionID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(dto.Content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}

	if _, err := s.repo.FindByID(ctx, did); err != nil {
		return nil, notFoundOrInternal(err)
	}

	reply := &Reply{DiscussionID: did, Author: author, Content: content}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.repo.IncrementReplies(ctx, did); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"discussion_id": did,
			"reply_id":      reply.ID,
		}).Error("Reply stored but reply counter not incremented; run reconcile")
		return nil, apperr.Internal(err)
	}
	return reply, nil
}

func (s *service) Replies(ctx context.Context, discussionID string) ([]Reply, error) {
	did, err := parseID(discussionID)
	if err != nil {
		return nil, err
	}
	replies, err := s.repo.ListReplies(ctx, did)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if replies == nil {
		replies = []Reply{}
	}
	return replies, nil
}

func (s *service) Vote(ctx context.Context, discussionID string, userID uuid.UUID, dto VoteDTO) (*VoteResponse, error) {
	log := config.WithContext(ctx)

	did, err := parseID(discussionID)
	if err != nil {
		return nil, err
	}
	if !dto.Type.IsValid() {
		return nil, apperr.Validation("vote type must be UPVOTE or DOWNVOTE")
	}

	for attempt := 1; ; attempt++ {
		res, err := s.repo.ApplyVote(ctx, did, userID, dto.Type)
		if err == nil {
			return &VoteResponse{Message: "Vote updated", State: res.State, Stats: res.Stats}, nil
		}
		// Two first votes from the same user raced on the unique index; the
		// retry sees the winner's row and toggles from there.
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < maxVoteAttempts {
			log.WithField("attempt", attempt).Warn("Concurrent vote detected, retrying")
			continue
		}
		return nil, notFoundOrInternal(err)
	}
}

func (s *service) ReconcileStats(ctx context.Context, discussionID string) (*Stats, error) {
	did, err := parseID(discussionID)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.ReconcileStats(ctx, did)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return stats, nil
}

// ReconcileAll recomputes the counters of every discussion and returns how
// many were processed.
func (s *service) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.repo.ReconcileStats(ctx, id); err != nil && !errors.Is(err, ErrDiscussionNotFound) {
			return i, apperr.Internal(err)
		}
	}
	return len(ids), nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid discussion id")
	}
	return id, nil
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, ErrDiscussionNotFound) {
		return apperr.NotFound("Discussion not found")
	}
	return apperr.Internal(err)
}
