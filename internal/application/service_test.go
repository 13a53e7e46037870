package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
	"questjournal/internal/storage"
)

func int64p(v int64) *int64 { return &v }

func newServices(t *testing.T) (*QuestService, *JournalService) {
	t.Helper()
	db := storage.NewTestDB(t)
	journal := NewJournalService(db)
	journal.SetClock(func() time.Time { return time.Date(2026, time.October, 19, 22, 0, 0, 0, time.UTC) })
	return NewQuestService(db), journal
}

func saveTheCat() models.QuestCreate {
	return models.QuestCreate{
		Title:      "Save the cat!",
		Objectives: "Rescue the cat from the tree.",
		Rewards:    "5 gold coins",
		Status:     "Incomplete",
		CampaignID: int64p(1),
	}
}

func TestQuestService_PartialUpdateScenario(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	id, err := quests.Create(ctx, saveTheCat())
	require.NoError(t, err)

	_, err = quests.Update(ctx, id, models.QuestUpdate{
		Rewards: models.Some("500 gold coins"),
		Status:  models.Some("Complete"),
	})
	require.NoError(t, err)

	q, err := quests.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, q.ID)
	assert.Equal(t, "Save the cat!", q.Title)
	assert.Equal(t, "Rescue the cat from the tree.", q.Objectives)
	require.NotNil(t, q.CampaignID)
	assert.Equal(t, int64(1), *q.CampaignID)
	assert.Equal(t, "500 gold coins", q.Rewards)
	assert.Equal(t, "Complete", q.Status)
}

func TestQuestService_DefaultsStatus(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	in := saveTheCat()
	in.Status = ""
	id, err := quests.Create(ctx, in)
	require.NoError(t, err)

	q, err := quests.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuestStatus, q.Status)
}

func TestQuestService_DeleteThenGetIsNotFound(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	id, err := quests.Create(ctx, saveTheCat())
	require.NoError(t, err)
	require.NoError(t, quests.Delete(ctx, id))

	_, err = quests.Get(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Quest ID not found.", apperr.MessageOf(err, ""))

	assert.ErrorIs(t, quests.Delete(ctx, id), apperr.ErrNotFound)
	_, err = quests.Update(ctx, id, models.QuestUpdate{Status: models.Some("Complete")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestQuestService_EmptyListsAreNotFound(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	_, err := quests.List(ctx)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = quests.ListByCampaign(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "No quests found for the given campaign ID.", apperr.MessageOf(err, ""))
}

func TestQuestService_ListByCampaignIsExact(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	seed := []models.QuestCreate{
		saveTheCat(),
		{Title: "Feed a dog.", Objectives: "Give the dog some meat.", Rewards: "3 gold coins", Status: "Complete", CampaignID: int64p(1)},
		{Title: "Slay the Dragon!", Objectives: "Kill the dragon.", Rewards: "500 gold coins", CampaignID: int64p(2)},
	}
	for _, in := range seed {
		_, err := quests.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := quests.ListByCampaign(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Save the cat!", got[0].Title)
	assert.Equal(t, "Feed a dog.", got[1].Title)

	all, err := quests.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestQuestService_ValidationRunsBeforeStorage(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	_, err := quests.Create(ctx, models.QuestCreate{Title: "only a title"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = quests.List(ctx)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Null on a required column is rejected even when the ID does not exist.
	_, err = quests.Update(ctx, 42, models.QuestUpdate{Title: models.Null[string]()})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestQuestService_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	quests, _ := newServices(t)
	ctx := context.Background()

	const n = 10
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := quests.Create(ctx, saveTheCat())
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestJournalService_CharacterJournalOrderedByDate(t *testing.T) {
	_, journal := newServices(t)
	ctx := context.Background()

	later := models.EntryCreate{CharacterID: int64p(1), EntryText: "Sample Text 4", EntryDate: models.NewDate(2013, time.January, 14), CampaignID: int64p(1)}
	other := models.EntryCreate{CharacterID: int64p(2), EntryText: "Sample Text 2", EntryDate: models.NewDate(2009, time.January, 30), CampaignID: int64p(1)}
	earlier := models.EntryCreate{CharacterID: int64p(1), EntryText: "Sample Text 1", EntryDate: models.NewDate(2010, time.October, 1), CampaignID: int64p(1)}
	elsewhere := models.EntryCreate{CharacterID: int64p(3), EntryText: "Sample Text 3", EntryDate: models.NewDate(2014, time.November, 21), CampaignID: int64p(3)}
	for _, in := range []models.EntryCreate{later, other, earlier, elsewhere} {
		_, err := journal.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := journal.ListByCharacter(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2010-10-01", got[0].EntryDate.String())
	assert.Equal(t, "2013-01-14", got[1].EntryDate.String())

	campaign, err := journal.ListByCampaign(ctx, 1)
	require.NoError(t, err)
	require.Len(t, campaign, 3)
	for i := 1; i < len(campaign); i++ {
		assert.False(t, campaign[i].EntryDate.Before(campaign[i-1].EntryDate))
		assert.Equal(t, int64(1), *campaign[i].CampaignID)
	}

	_, err = journal.ListByCharacter(ctx, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = journal.ListByCampaign(ctx, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestJournalService_CreateDefaultsDate(t *testing.T) {
	_, journal := newServices(t)
	ctx := context.Background()

	id, err := journal.Create(ctx, models.EntryCreate{EntryText: "undated"})
	require.NoError(t, err)

	e, err := journal.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", e.EntryDate.String())
	assert.Nil(t, e.CharacterID)
}

func TestJournalService_UpdateDeleteLifecycle(t *testing.T) {
	_, journal := newServices(t)
	ctx := context.Background()

	id, err := journal.Create(ctx, models.EntryCreate{CharacterID: int64p(1), EntryText: "draft", EntryDate: models.NewDate(2010, time.October, 1)})
	require.NoError(t, err)

	updated, err := journal.Update(ctx, id, models.EntryUpdate{EntryText: models.Some("final")})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.EntryText)
	assert.Equal(t, "2010-10-01", updated.EntryDate.String())
	assert.Equal(t, int64(1), *updated.CharacterID)

	require.NoError(t, journal.Delete(ctx, id))
	_, err = journal.Get(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = journal.List(ctx)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestQuestService_RecordsSpans(t *testing.T) {
	quests, _ := newServices(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	quests.tracer = tp.Tracer("test")

	_, err := quests.Get(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "QuestService.Get", spans[0].Name())
	assert.Empty(t, spans[0].Events(), "not-found is not recorded as a span error")
}
