package models

import (
	"strings"

	"questjournal/internal/apperr"
)

// Entry is a journal entry. EntryDate is an in-fiction date and has no
// relation to when the row was written.
type Entry struct {
	ID          int64  `json:"entry_ID"`
	CharacterID *int64 `json:"character_ID"`
	EntryText   string `json:"entry_text"`
	EntryDate   Date   `json:"entry_date"`
	CampaignID  *int64 `json:"campaign_ID"`
}

// EntryCreate is the create payload. EntryText is required; a zero EntryDate
// means "today".
type EntryCreate struct {
	CharacterID *int64 `json:"character_ID,omitempty"`
	EntryText   string `json:"entry_text"`
	EntryDate   Date   `json:"entry_date,omitzero"`
	CampaignID  *int64 `json:"campaign_ID,omitempty"`
}

func (in EntryCreate) Validate() error {
	if strings.TrimSpace(in.EntryText) == "" {
		return apperr.NewInvalidArgument("missing required field(s): entry_text")
	}
	return nil
}

// Entry builds the row to insert, dating it today when no date was given.
func (in EntryCreate) Entry(today Date) Entry {
	date := in.EntryDate
	if date.IsZero() {
		date = today
	}
	return Entry{
		CharacterID: in.CharacterID,
		EntryText:   in.EntryText,
		EntryDate:   date,
		CampaignID:  in.CampaignID,
	}
}

// EntryUpdate is the partial update payload. Only Set fields are merged.
type EntryUpdate struct {
	CharacterID Optional[int64]  `json:"character_ID,omitzero"`
	EntryText   Optional[string] `json:"entry_text,omitzero"`
	EntryDate   Optional[Date]   `json:"entry_date,omitzero"`
	CampaignID  Optional[int64]  `json:"campaign_ID,omitzero"`
}

func (u EntryUpdate) Validate() error {
	var nulls []string
	if u.EntryText.Null {
		nulls = append(nulls, "entry_text")
	}
	if u.EntryDate.Null || (u.EntryDate.Set && u.EntryDate.Value.IsZero()) {
		nulls = append(nulls, "entry_date")
	}
	if len(nulls) > 0 {
		return apperr.NewInvalidArgument("field(s) cannot be null: " + strings.Join(nulls, ", "))
	}
	return nil
}

// Apply merges the set fields onto e. The ID is never touched.
func (u EntryUpdate) Apply(e *Entry) {
	if u.CharacterID.Set {
		e.CharacterID = u.CharacterID.Ptr()
	}
	if u.EntryText.Set {
		e.EntryText = u.EntryText.Value
	}
	if u.EntryDate.Set {
		e.EntryDate = u.EntryDate.Value
	}
	if u.CampaignID.Set {
		e.CampaignID = u.CampaignID.Ptr()
	}
}
