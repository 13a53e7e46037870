package repository

import (
	"context"
	"database/sql"

	"questjournal/internal/models"
	"questjournal/internal/storage"
)

const questColumns = `quest_id, title, objectives, rewards, status, campaign_id`

// QuestRepository is bound to one connection or transaction.
type QuestRepository struct {
	q storage.Querier
}

func NewQuestRepository(q storage.Querier) *QuestRepository {
	return &QuestRepository{q: q}
}

func (r *QuestRepository) Create(ctx context.Context, q models.Quest) (int64, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO quests (title, objectives, rewards, status, campaign_id)
VALUES (?, ?, ?, ?, ?)`,
		q.Title, q.Objectives, q.Rewards, q.Status, nullInt(q.CampaignID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *QuestRepository) List(ctx context.Context) ([]models.Quest, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+questColumns+` FROM quests ORDER BY quest_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuests(rows)
}

// GetByID returns sql.ErrNoRows when the quest does not exist.
func (r *QuestRepository) GetByID(ctx context.Context, id int64) (models.Quest, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE quest_id = ?`, id)
	return scanQuest(row)
}

func (r *QuestRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]models.Quest, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+questColumns+` FROM quests WHERE campaign_id = ? ORDER BY quest_id`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuests(rows)
}

// Update overwrites every mutable column and reports whether the row existed.
func (r *QuestRepository) Update(ctx context.Context, q models.Quest) (bool, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE quests SET title=?, objectives=?, rewards=?, status=?, campaign_id=? WHERE quest_id=?`,
		q.Title, q.Objectives, q.Rewards, q.Status, nullInt(q.CampaignID), q.ID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Delete reports whether a row was removed.
func (r *QuestRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM quests WHERE quest_id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuest(s scanner) (models.Quest, error) {
	var (
		q        models.Quest
		campaign sql.NullInt64
	)
	if err := s.Scan(&q.ID, &q.Title, &q.Objectives, &q.Rewards, &q.Status, &campaign); err != nil {
		return models.Quest{}, err
	}
	q.CampaignID = intPtr(campaign)
	return q, nil
}

func scanQuests(rows *sql.Rows) ([]models.Quest, error) {
	var res []models.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}
