package api

import (
	"github.com/gofiber/fiber/v2"

	"questjournal/internal/models"
)

const entryStatusKey = "Journal Entry Status"

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var in models.EntryCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}
	id, err := s.journal.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		entryStatusKey: "Entry created successfully.",
		"entry_ID":     id,
	})
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	entries, err := s.journal.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (s *Server) handleGetEntry(c *fiber.Ctx) error {
	id, err := paramID(c, "entry_ID")
	if err != nil {
		return err
	}
	e, err := s.journal.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

func (s *Server) handleUpdateEntry(c *fiber.Ctx) error {
	id, err := paramID(c, "entry_ID")
	if err != nil {
		return err
	}
	var u models.EntryUpdate
	if err := parseBody(c, &u); err != nil {
		return err
	}
	if _, err := s.journal.Update(c.UserContext(), id, u); err != nil {
		return err
	}
	return c.JSON(fiber.Map{entryStatusKey: "Journal entry updated successfully."})
}

func (s *Server) handleDeleteEntry(c *fiber.Ctx) error {
	id, err := paramID(c, "entry_ID")
	if err != nil {
		return err
	}
	if err := s.journal.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{entryStatusKey: "Journal Entry deleted successfully."})
}

func (s *Server) handleCharacterJournal(c *fiber.Ctx) error {
	characterID, err := paramID(c, "character_ID")
	if err != nil {
		return err
	}
	entries, err := s.journal.ListByCharacter(c.UserContext(), characterID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// handleCampaignJournal serves the collective campaign journal.
func (s *Server) handleCampaignJournal(c *fiber.Ctx) error {
	campaignID, err := paramID(c, "campaign_ID")
	if err != nil {
		return err
	}
	entries, err := s.journal.ListByCampaign(c.UserContext(), campaignID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}
