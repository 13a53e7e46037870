package vk

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/SevereCloud/vksdk/v2/events"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
)

const helpText = "Commands: !quest <id>, !quests <campaign>, !journal <character>, !chronicle <campaign>, !ping."

// QuestReader is the read side of the quest store.
type QuestReader interface {
	Get(ctx context.Context, id int64) (models.Quest, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Quest, error)
}

// JournalReader is the read side of the journal store.
type JournalReader interface {
	ListByCharacter(ctx context.Context, characterID int64) ([]models.Entry, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Entry, error)
}

// Handler answers lookup commands posted in a campaign chat. It never writes.
type Handler struct {
	sender  Sender
	quests  QuestReader
	journal JournalReader
	// peerID limits the bot to one chat when non-zero.
	peerID int
}

func NewHandler(sender Sender, quests QuestReader, journal JournalReader, peerID int) *Handler {
	return &Handler{
		sender:  sender,
		quests:  quests,
		journal: journal,
		peerID:  peerID,
	}
}

func (h *Handler) Start(lp *longpoll.LongPoll) {
	lp.MessageNew(func(ctx context.Context, obj events.MessageNewObject) {
		m := obj.Message
		h.HandleMessage(ctx, m.PeerID, m.FromID, m.Text)
	})
}

// HandleMessage replies to a single incoming message if it is a command.
func (h *Handler) HandleMessage(ctx context.Context, peerID, fromID int, text string) {
	text = strings.TrimSpace(text)
	if fromID <= 0 || !strings.HasPrefix(text, "!") {
		return
	}
	if h.peerID != 0 && peerID != h.peerID {
		return
	}

	log.Printf("IN CMD peer=%d from=%d text=%q", peerID, fromID, text)

	reply, ok := h.Reply(ctx, text)
	if !ok {
		return
	}
	if err := h.sender.Send(peerID, reply); err != nil {
		log.Printf("send error: %v", err)
	}
}

// Reply renders the answer to a command. ok is false for text that is not
// one of ours.
func (h *Handler) Reply(ctx context.Context, text string) (reply string, ok bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return "", false
	}

	switch fields[0] {
	case "!ping":
		return "pong", true
	case "!help":
		return helpText, true
	case "!quest":
		return h.withID(fields, "quest", func(id int64) (string, error) {
			q, err := h.quests.Get(ctx, id)
			if err != nil {
				return "", err
			}
			return formatQuest(q), nil
		}), true
	case "!quests":
		return h.withID(fields, "campaign", func(id int64) (string, error) {
			qs, err := h.quests.ListByCampaign(ctx, id)
			if err != nil {
				return "", err
			}
			return formatQuestList(id, qs), nil
		}), true
	case "!journal":
		return h.withID(fields, "character", func(id int64) (string, error) {
			es, err := h.journal.ListByCharacter(ctx, id)
			if err != nil {
				return "", err
			}
			return formatJournal(fmt.Sprintf("Journal of character %d:", id), es), nil
		}), true
	case "!chronicle":
		return h.withID(fields, "campaign", func(id int64) (string, error) {
			es, err := h.journal.ListByCampaign(ctx, id)
			if err != nil {
				return "", err
			}
			return formatJournal(fmt.Sprintf("Chronicle of campaign %d:", id), es), nil
		}), true
	default:
		return "Unknown command. " + helpText, true
	}
}

func (h *Handler) withID(fields []string, what string, fn func(id int64) (string, error)) string {
	if len(fields) < 2 {
		return fmt.Sprintf("Usage: %s <%s id>", fields[0], what)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "#"), 10, 64)
	if err != nil {
		return fmt.Sprintf("%q is not a %s id.", fields[1], what)
	}
	reply, err := fn(id)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return apperr.MessageOf(err, "Nothing found.")
		}
		log.Printf("%s %d: %v", fields[0], id, err)
		return "The archive is unreachable right now."
	}
	return reply
}

func formatQuest(q models.Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s]\n", q.ID, q.Title, q.Status)
	fmt.Fprintf(&b, "Objectives: %s\n", q.Objectives)
	fmt.Fprintf(&b, "Rewards: %s", q.Rewards)
	if q.CampaignID != nil {
		fmt.Fprintf(&b, "\nCampaign: %d", *q.CampaignID)
	}
	return b.String()
}

func formatQuestList(campaignID int64, qs []models.Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quests of campaign %d:", campaignID)
	for _, q := range qs {
		fmt.Fprintf(&b, "\n#%d %s [%s] - %s", q.ID, q.Title, q.Status, q.Rewards)
	}
	return b.String()
}

func formatJournal(header string, es []models.Entry) string {
	var b strings.Builder
	b.WriteString(header)
	for _, e := range es {
		who := "unknown"
		if e.CharacterID != nil {
			who = "character " + strconv.FormatInt(*e.CharacterID, 10)
		}
		fmt.Fprintf(&b, "\n%s (#%d, %s): %s", e.EntryDate, e.ID, who, e.EntryText)
	}
	return b.String()
}
