package api

import (
	"github.com/gofiber/fiber/v2"

	"questjournal/internal/models"
)

const questStatusKey = "Quest Status"

func (s *Server) handleCreateQuest(c *fiber.Ctx) error {
	var in models.QuestCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}
	id, err := s.quests.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		questStatusKey: "Quest created successfully.",
		"quest_ID":     id,
	})
}

func (s *Server) handleListQuests(c *fiber.Ctx) error {
	quests, err := s.quests.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(quests)
}

func (s *Server) handleGetQuest(c *fiber.Ctx) error {
	id, err := paramID(c, "quest_ID")
	if err != nil {
		return err
	}
	q, err := s.quests.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

func (s *Server) handleUpdateQuest(c *fiber.Ctx) error {
	id, err := paramID(c, "quest_ID")
	if err != nil {
		return err
	}
	var u models.QuestUpdate
	if err := parseBody(c, &u); err != nil {
		return err
	}
	if _, err := s.quests.Update(c.UserContext(), id, u); err != nil {
		return err
	}
	return c.JSON(fiber.Map{questStatusKey: "Quest updated successfully."})
}

func (s *Server) handleDeleteQuest(c *fiber.Ctx) error {
	id, err := paramID(c, "quest_ID")
	if err != nil {
		return err
	}
	if err := s.quests.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{questStatusKey: "Quest deleted successfully."})
}

// handleCampaignQuests shows shared quest progress across a campaign.
func (s *Server) handleCampaignQuests(c *fiber.Ctx) error {
	campaignID, err := paramID(c, "campaign_ID")
	if err != nil {
		return err
	}
	quests, err := s.quests.ListByCampaign(c.UserContext(), campaignID)
	if err != nil {
		return err
	}
	return c.JSON(quests)
}
