package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
	"questjournal/internal/repository"
	"questjournal/internal/storage"
)

const (
	msgNoEntries          = "No entries were found."
	msgEntryNotFound      = "Journal Entry ID not found."
	msgNoCharacterEntries = "No journal entries found for that character."
	msgNoCampaignEntries  = "No journal entries found for that campaign."
)

type JournalService struct {
	db     *storage.DB
	tracer trace.Tracer
	now    func() time.Time
}

func NewJournalService(db *storage.DB) *JournalService {
	return &JournalService{db: db, tracer: defaultTracer(), now: time.Now}
}

// SetClock replaces the clock used to date entries created without a date.
func (s *JournalService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *JournalService) Create(ctx context.Context, in models.EntryCreate) (id int64, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.Create")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return 0, err
	}
	entry := in.Entry(models.DateOf(s.now()))
	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		id, err = repository.NewEntryRepository(q).Create(ctx, entry)
		return err
	})
	if err != nil {
		return 0, internalErr("create entry", err)
	}
	span.SetAttributes(attribute.Int64("entry.id", id))
	return id, nil
}

func (s *JournalService) List(ctx context.Context) (entries []models.Entry, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.List")
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		entries, err = repository.NewEntryRepository(q).List(ctx)
		return err
	})
	if err != nil {
		return nil, internalErr("list entries", err)
	}
	if len(entries) == 0 {
		return nil, apperr.NewNotFound(msgNoEntries)
	}
	return entries, nil
}

func (s *JournalService) Get(ctx context.Context, id int64) (entry models.Entry, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.Get", attribute.Int64("entry.id", id))
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		entry, err = repository.NewEntryRepository(q).GetByID(ctx, id)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, apperr.NewNotFound(msgEntryNotFound)
	}
	if err != nil {
		return models.Entry{}, internalErr("get entry", err)
	}
	return entry, nil
}

func (s *JournalService) Update(ctx context.Context, id int64, u models.EntryUpdate) (entry models.Entry, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.Update", attribute.Int64("entry.id", id))
	defer func() { endSpan(span, err) }()

	if err := u.Validate(); err != nil {
		return models.Entry{}, err
	}
	err = s.db.WithTx(ctx, func(q storage.Querier) error {
		repo := repository.NewEntryRepository(q)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		u.Apply(&current)
		if _, err := repo.Update(ctx, current); err != nil {
			return err
		}
		entry = current
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, apperr.NewNotFound(msgEntryNotFound)
	}
	if err != nil {
		return models.Entry{}, internalErr("update entry", err)
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.Delete", attribute.Int64("entry.id", id))
	defer func() { endSpan(span, err) }()

	var deleted bool
	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		deleted, err = repository.NewEntryRepository(q).Delete(ctx, id)
		return err
	})
	if err != nil {
		return internalErr("delete entry", err)
	}
	if !deleted {
		return apperr.NewNotFound(msgEntryNotFound)
	}
	return nil
}

// ListByCharacter returns a character's journal ordered by entry date.
func (s *JournalService) ListByCharacter(ctx context.Context, characterID int64) (entries []models.Entry, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.ListByCharacter", attribute.Int64("character.id", characterID))
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		entries, err = repository.NewEntryRepository(q).ListByCharacter(ctx, characterID)
		return err
	})
	if err != nil {
		return nil, internalErr("list character entries", err)
	}
	if len(entries) == 0 {
		return nil, apperr.NewNotFound(msgNoCharacterEntries)
	}
	return entries, nil
}

// ListByCampaign returns the collective campaign journal ordered by entry date.
func (s *JournalService) ListByCampaign(ctx context.Context, campaignID int64) (entries []models.Entry, err error) {
	ctx, span := startSpan(ctx, s.tracer, "JournalService.ListByCampaign", attribute.Int64("campaign.id", campaignID))
	defer func() { endSpan(span, err) }()

	err = s.db.WithConn(ctx, func(q storage.Querier) error {
		entries, err = repository.NewEntryRepository(q).ListByCampaign(ctx, campaignID)
		return err
	})
	if err != nil {
		return nil, internalErr("list campaign entries", err)
	}
	if len(entries) == 0 {
		return nil, apperr.NewNotFound(msgNoCampaignEntries)
	}
	return entries, nil
}
