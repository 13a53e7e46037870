package application

import (
	"context"
	"database/sql"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
	"questjournal/internal/repository"
	"questjournal/internal/storage"
)

const (
	msgNoQuests         = "No quests were found."
	msgQuestNotFound    = "Quest ID not found."
	msgNoCampaignQuests = "No quests found for the given campaign ID."
)

type QuestService struct {
	db     *storage.DB
	tracer trace.Tracer
}

func NewQuestService(db *storage.DB) *QuestService {
	return &QuestService{db: db, tracer: defaultTracer()}
}

// Create validates in, stores the quest and returns its new ID.
func (s *QuestService) Create(ctx context.Context, in models.QuestCreate) (id int64, err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.Create")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return 0, err
	}
	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		id, err = repository.NewQuestRepository(q).Create(ctx, in.Quest())
		return err
	})
	if err != nil {
		return 0, internalErr("create quest", err)
	}
	span.SetAttributes(attribute.Int64("quest.id", id))
	return id, nil
}

func (s *QuestService) List(ctx context.Context) (quests []models.Quest, err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.List")
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		quests, err = repository.NewQuestRepository(q).List(ctx)
		return err
	})
	if err != nil {
		return nil, internalErr("list quests", err)
	}
	if len(quests) == 0 {
		return nil, apperr.NewNotFound(msgNoQuests)
	}
	return quests, nil
}

func (s *QuestService) Get(ctx context.Context, id int64) (quest models.Quest, err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.Get", attribute.Int64("quest.id", id))
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		quest, err = repository.NewQuestRepository(q).GetByID(ctx, id)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quest{}, apperr.NewNotFound(msgQuestNotFound)
	}
	if err != nil {
		return models.Quest{}, internalErr("get quest", err)
	}
	return quest, nil
}

// Update merges the set fields of u onto the stored quest and returns the
// merged row. The read and the write share one transaction.
func (s *QuestService) Update(ctx context.Context, id int64, u models.QuestUpdate) (quest models.Quest, err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.Update", attribute.Int64("quest.id", id))
	defer func() { endSpan(span, err) }()

	if err := u.Validate(); err != nil {
		return models.Quest{}, err
	}
	err = s.db.WithTx(ctx, func(q storage.Querier) error {
		repo := repository.NewQuestRepository(q)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		u.Apply(&current)
		if _, err := repo.Update(ctx, current); err != nil {
			return err
		}
		quest = current
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quest{}, apperr.NewNotFound(msgQuestNotFound)
	}
	if err != nil {
		return models.Quest{}, internalErr("update quest", err)
	}
	return quest, nil
}

func (s *QuestService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.Delete", attribute.Int64("quest.id", id))
	defer func() { endSpan(span, err) }()

	var deleted bool
	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		deleted, err = repository.NewQuestRepository(q).Delete(ctx, id)
		return err
	})
	if err != nil {
		return internalErr("delete quest", err)
	}
	if !deleted {
		return apperr.NewNotFound(msgQuestNotFound)
	}
	return nil
}

// ListByCampaign returns the quests shared across a campaign.
func (s *QuestService) ListByCampaign(ctx context.Context, campaignID int64) (quests []models.Quest, err error) {
	ctx, span := startSpan(ctx, s.tracer, "QuestService.ListByCampaign", attribute.Int64("campaign.id", campaignID))
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		quests, err = repository.NewQuestRepository(q).ListByCampaign(ctx, campaignID)
		return err
	})
	if err != nil {
		return nil, internalErr("list campaign quests", err)
	}
	if len(quests) == 0 {
		return nil, apperr.NewNotFound(msgNoCampaignQuests)
	}
	return quests, nil
}
