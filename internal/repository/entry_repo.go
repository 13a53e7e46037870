package repository

import (
	"context"
	"database/sql"

	"questjournal/internal/models"
	"questjournal/internal/storage"
)

const entryColumns = `entry_id, character_id, entry_text, entry_date, campaign_id`

// EntryRepository is bound to one connection or transaction.
type EntryRepository struct {
	q storage.Querier
}

func NewEntryRepository(q storage.Querier) *EntryRepository {
	return &EntryRepository{q: q}
}

func (r *EntryRepository) Create(ctx context.Context, e models.Entry) (int64, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO entries (character_id, entry_text, entry_date, campaign_id)
VALUES (?, ?, ?, ?)`,
		nullInt(e.CharacterID), e.EntryText, e.EntryDate, nullInt(e.CampaignID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *EntryRepository) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY entry_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// GetByID returns sql.ErrNoRows when the entry does not exist.
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (models.Entry, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE entry_id = ?`, id)
	return scanEntry(row)
}

// ListByCharacter returns the character's entries oldest in-fiction date first.
func (r *EntryRepository) ListByCharacter(ctx context.Context, characterID int64) ([]models.Entry, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries
WHERE character_id = ?
ORDER BY entry_date, entry_id`, characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByCampaign returns the campaign's entries oldest in-fiction date first.
func (r *EntryRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]models.Entry, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries
WHERE campaign_id = ?
ORDER BY entry_date, entry_id`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *EntryRepository) Update(ctx context.Context, e models.Entry) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE entries SET character_id=?, entry_text=?, entry_date=?, campaign_id=? WHERE entry_id=?`,
		nullInt(e.CharacterID), e.EntryText, e.EntryDate, nullInt(e.CampaignID), e.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM entries WHERE entry_id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func scanEntry(s scanner) (models.Entry, error) {
	var (
		e         models.Entry
		character sql.NullInt64
		campaign  sql.NullInt64
	)
	if err := s.Scan(&e.ID, &character, &e.EntryText, &e.EntryDate, &campaign); err != nil {
		return models.Entry{}, err
	}
	e.CharacterID = intPtr(character)
	e.CampaignID = intPtr(campaign)
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var res []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
