package models

import (
	"strings"

	"questjournal/internal/apperr"
)

// DefaultQuestStatus is stored when a quest is created without a status.
const DefaultQuestStatus = "Incomplete"

type Quest struct {
	ID         int64  `json:"quest_ID"`
	Title      string `json:"title"`
	Objectives string `json:"objectives"`
	Rewards    string `json:"rewards"`
	Status     string `json:"status"`
	CampaignID *int64 `json:"campaign_ID"`
}

// QuestCreate is the create payload. Title, Objectives and Rewards are
// required; Status and CampaignID are optional.
type QuestCreate struct {
	Title      string `json:"title"`
	Objectives string `json:"objectives"`
	Rewards    string `json:"rewards"`
	Status     string `json:"status,omitempty"`
	CampaignID *int64 `json:"campaign_ID,omitempty"`
}

func (in QuestCreate) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Objectives) == "" {
		missing = append(missing, "objectives")
	}
	if strings.TrimSpace(in.Rewards) == "" {
		missing = append(missing, "rewards")
	}
	if len(missing) > 0 {
		return apperr.NewInvalidArgument("missing required field(s): " + strings.Join(missing, ", "))
	}
	return nil
}

// Quest builds the row to insert, applying the default status.
func (in QuestCreate) Quest() Quest {
	status := in.Status
	if status == "" {
		status = DefaultQuestStatus
	}
	return Quest{
		Title:      in.Title,
		Objectives: in.Objectives,
		Rewards:    in.Rewards,
		Status:     status,
		CampaignID: in.CampaignID,
	}
}

// QuestUpdate is the partial update payload. Only Set fields are merged.
type QuestUpdate struct {
	Title      Optional[string] `json:"title,omitzero"`
	Objectives Optional[string] `json:"objectives,omitzero"`
	Rewards    Optional[string] `json:"rewards,omitzero"`
	Status     Optional[string] `json:"status,omitzero"`
	CampaignID Optional[int64]  `json:"campaign_ID,omitzero"`
}

// Validate rejects null for the columns that cannot hold it.
func (u QuestUpdate) Validate() error {
	var nulls []string
	if u.Title.Null {
		nulls = append(nulls, "title")
	}
	if u.Objectives.Null {
		nulls = append(nulls, "objectives")
	}
	if u.Rewards.Null {
		nulls = append(nulls, "rewards")
	}
	if u.Status.Null {
		nulls = append(nulls, "status")
	}
	if len(nulls) > 0 {
		return apperr.NewInvalidArgument("field(s) cannot be null: " + strings.Join(nulls, ", "))
	}
	return nil
}

// Apply merges the set fields onto q. The ID is never touched.
func (u QuestUpdate) Apply(q *Quest) {
	if u.Title.Set {
		q.Title = u.Title.Value
	}
	if u.Objectives.Set {
		q.Objectives = u.Objectives.Value
	}
	if u.Rewards.Set {
		q.Rewards = u.Rewards.Value
	}
	if u.Status.Set {
		q.Status = u.Status.Value
	}
	if u.CampaignID.Set {
		q.CampaignID = u.CampaignID.Ptr()
	}
}
