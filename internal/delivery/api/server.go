package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"questjournal/internal/apperr"
	"questjournal/internal/models"
)

// QuestStore is the quest half of the application layer.
type QuestStore interface {
	Create(ctx context.Context, in models.QuestCreate) (int64, error)
	List(ctx context.Context) ([]models.Quest, error)
	Get(ctx context.Context, id int64) (models.Quest, error)
	Update(ctx context.Context, id int64, u models.QuestUpdate) (models.Quest, error)
	Delete(ctx context.Context, id int64) error
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Quest, error)
}

// JournalStore is the journal half of the application layer.
type JournalStore interface {
	Create(ctx context.Context, in models.EntryCreate) (int64, error)
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id int64) (models.Entry, error)
	Update(ctx context.Context, id int64, u models.EntryUpdate) (models.Entry, error)
	Delete(ctx context.Context, id int64) error
	ListByCharacter(ctx context.Context, characterID int64) ([]models.Entry, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Entry, error)
}

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// Quiet disables the request logger.
	Quiet bool
}

// Server exposes the Fiber application.
type Server struct {
	app     *fiber.App
	quests  QuestStore
	journal JournalStore
	cfg     Config
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, quests QuestStore, journal JournalStore) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          errorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(recover.New())
	if !cfg.Quiet {
		app.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	}
	app.Use(cors.New())

	srv := &Server{app: app, quests: quests, journal: journal, cfg: cfg}
	srv.registerRoutes()
	return srv
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on cfg.Addr until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		if err := s.app.ShutdownWithTimeout(timeout); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("quest journal listening on %s", ln.Addr())
	return s.app.Listener(ln)
}

// registerRoutes registers literal routes before parameter routes, and every
// ID parameter only matches integers, so /journal/entries/ never reaches a
// parameter handler.
func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	quests := s.app.Group("/quests")
	quests.Post("/", s.handleCreateQuest)
	quests.Get("/", s.handleListQuests)
	quests.Get("/progress/:campaign_ID<int>", s.handleCampaignQuests)
	quests.Get("/:quest_ID<int>", s.handleGetQuest)
	quests.Patch("/:quest_ID<int>", s.handleUpdateQuest)
	quests.Delete("/:quest_ID<int>", s.handleDeleteQuest)

	journal := s.app.Group("/journal")
	journal.Post("/entries", s.handleCreateEntry)
	journal.Get("/entries", s.handleListEntries)
	journal.Get("/entries/:character_ID<int>", s.handleCharacterJournal)
	journal.Patch("/entries/:entry_ID<int>", s.handleUpdateEntry)
	journal.Delete("/entries/:entry_ID<int>", s.handleDeleteEntry)
	journal.Get("/:entry_ID<int>", s.handleGetEntry)

	s.app.Get("/campaign/journal/:campaign_ID<int>", s.handleCampaignJournal)
}

// errorHandler renders every error as {"detail": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Internal server error."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		msg = fe.Message
	} else {
		switch apperr.CodeOf(err) {
		case apperr.CodeNotFound:
			status = fiber.StatusNotFound
			msg = apperr.MessageOf(err, "Not found.")
		case apperr.CodeInvalidArgument:
			status = fiber.StatusUnprocessableEntity
			msg = apperr.MessageOf(err, "Invalid payload.")
		}
	}
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}
