package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questjournal/internal/models"
	"questjournal/internal/storage"
)

func int64p(v int64) *int64 { return &v }

func TestQuestRepository_CRUD(t *testing.T) {
	db := storage.NewTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepository(db)

	id, err := repo.Create(ctx, models.Quest{
		Title: "Save the cat!", Objectives: "Rescue the cat from the tree.",
		Rewards: "5 gold coins", Status: "Incomplete", CampaignID: int64p(1),
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	q, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Save the cat!", q.Title)
	require.NotNil(t, q.CampaignID)
	assert.Equal(t, int64(1), *q.CampaignID)

	q.CampaignID = nil
	q.Status = "Complete"
	ok, err := repo.Update(ctx, q)
	require.NoError(t, err)
	assert.True(t, ok)

	q, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, q.CampaignID)
	assert.Equal(t, "Complete", q.Status)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuestRepository_ListByCampaign(t *testing.T) {
	db := storage.NewTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepository(db)

	for _, c := range []*int64{int64p(1), int64p(2), int64p(1), nil} {
		_, err := repo.Create(ctx, models.Quest{Title: "t", Objectives: "o", Rewards: "r", Status: "Incomplete", CampaignID: c})
		require.NoError(t, err)
	}

	qs, err := repo.ListByCampaign(ctx, 1)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	for _, q := range qs {
		assert.Equal(t, int64(1), *q.CampaignID)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := repo.ListByCampaign(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEntryRepository_OrdersByEntryDate(t *testing.T) {
	db := storage.NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	seed := []models.Entry{
		{CharacterID: int64p(1), EntryText: "Sample Text 1", EntryDate: models.NewDate(2013, time.January, 14), CampaignID: int64p(1)},
		{CharacterID: int64p(2), EntryText: "Sample Text 2", EntryDate: models.NewDate(2009, time.January, 30), CampaignID: int64p(1)},
		{CharacterID: int64p(1), EntryText: "Sample Text 3", EntryDate: models.NewDate(2010, time.October, 1), CampaignID: int64p(1)},
	}
	for _, e := range seed {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	byChar, err := repo.ListByCharacter(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byChar, 2)
	assert.Equal(t, "2010-10-01", byChar[0].EntryDate.String())
	assert.Equal(t, "2013-01-14", byChar[1].EntryDate.String())

	byCampaign, err := repo.ListByCampaign(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byCampaign, 3)
	assert.Equal(t, "2009-01-30", byCampaign[0].EntryDate.String())
	assert.Equal(t, "2013-01-14", byCampaign[2].EntryDate.String())
}

func TestEntryRepository_UpdateAndDelete(t *testing.T) {
	db := storage.NewTestDB(t)
	ctx := context.Background()
	repo := NewEntryRepository(db)

	id, err := repo.Create(ctx, models.Entry{EntryText: "draft", EntryDate: models.NewDate(2010, time.October, 1)})
	require.NoError(t, err)

	e, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, e.CharacterID)
	assert.Nil(t, e.CampaignID)

	e.EntryText = "final"
	e.CharacterID = int64p(4)
	ok, err := repo.Update(ctx, e)
	require.NoError(t, err)
	assert.True(t, ok)

	e, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "final", e.EntryText)
	assert.Equal(t, int64(4), *e.CharacterID)

	ok, err = repo.Update(ctx, models.Entry{ID: id + 100, EntryText: "x", EntryDate: e.EntryDate})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
}
