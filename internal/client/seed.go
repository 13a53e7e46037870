package client

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"questjournal/internal/models"
)

func int64p(v int64) *int64 { return &v }

// SampleQuests are the quests the seed run creates.
func SampleQuests() []models.QuestCreate {
	return []models.QuestCreate{
		{Title: "Save the cat!", Objectives: "Rescue the cat from the tree.", Rewards: "5 gold coins", Status: "Incomplete", CampaignID: int64p(1)},
		{Title: "Feed a dog.", Objectives: "Give the dog some meat.", Rewards: "3 gold coins", Status: "Complete", CampaignID: int64p(1)},
		{Title: "Slay the Dragon!", Objectives: "Kill the dragon.", Rewards: "500 gold coins", Status: "Incomplete", CampaignID: int64p(2)},
	}
}

// SampleEntries are the journal entries the seed run creates.
func SampleEntries() []models.EntryCreate {
	return []models.EntryCreate{
		{CharacterID: int64p(1), EntryText: "Sample Text 1", EntryDate: models.NewDate(2010, time.October, 1), CampaignID: int64p(1)},
		{CharacterID: int64p(2), EntryText: "Sample Text 2", EntryDate: models.NewDate(2009, time.January, 30), CampaignID: int64p(1)},
		{CharacterID: int64p(3), EntryText: "Sample Text 3", EntryDate: models.NewDate(2014, time.November, 21), CampaignID: int64p(3)},
		{CharacterID: int64p(1), EntryText: "Sample Text 4", EntryDate: models.NewDate(2013, time.January, 14), CampaignID: int64p(1)},
	}
}

// Seed exercises every route against a running server with the sample data,
// writing each response to w. It stops at the first unexpected error.
func Seed(c *Client, w io.Writer) error {
	var questIDs []int64
	for _, q := range SampleQuests() {
		id, err := c.CreateQuest(q)
		if err != nil {
			return fmt.Errorf("create quest %q: %w", q.Title, err)
		}
		fmt.Fprintf(w, "CREATE quest %d: %s\n", id, q.Title)
		questIDs = append(questIDs, id)
	}

	for _, id := range questIDs {
		q, err := c.GetQuest(id)
		if err != nil {
			return fmt.Errorf("read quest %d: %w", id, err)
		}
		printJSON(w, "READ quest", q)
	}

	first := questIDs[0]
	if err := c.UpdateQuest(first, models.QuestUpdate{
		Rewards: models.Some("500 gold coins"),
		Status:  models.Some("Complete"),
	}); err != nil {
		return fmt.Errorf("update quest %d: %w", first, err)
	}
	q, err := c.GetQuest(first)
	if err != nil {
		return fmt.Errorf("read quest %d: %w", first, err)
	}
	printJSON(w, "UPDATE quest", q)

	progress, err := c.CampaignQuests(1)
	if err != nil {
		return fmt.Errorf("campaign quests: %w", err)
	}
	printJSON(w, "READ campaign 1 quests", progress)

	last := questIDs[len(questIDs)-1]
	if err := c.DeleteQuest(last); err != nil {
		return fmt.Errorf("delete quest %d: %w", last, err)
	}
	fmt.Fprintf(w, "DELETE quest %d\n", last)
	if _, err := c.GetQuest(last); err != nil {
		fmt.Fprintf(w, "READ quest %d: %v\n", last, err)
	} else {
		return fmt.Errorf("quest %d still readable after delete", last)
	}

	for _, e := range SampleEntries() {
		id, err := c.CreateEntry(e)
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		fmt.Fprintf(w, "CREATE entry %d: %s\n", id, e.EntryDate)
	}

	journal, err := c.CharacterJournal(1)
	if err != nil {
		return fmt.Errorf("character journal: %w", err)
	}
	printJSON(w, "READ character 1 journal", journal)

	chronicle, err := c.CampaignJournal(1)
	if err != nil {
		return fmt.Errorf("campaign journal: %w", err)
	}
	printJSON(w, "READ campaign 1 journal", chronicle)
	return nil
}

func printJSON(w io.Writer, label string, v any) {
	out, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", label, err)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, out)
}
