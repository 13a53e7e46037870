package cli

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"questjournal/internal/application"
	"questjournal/internal/delivery/vk"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Answer quest and journal lookups in a VK chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		vkAPI := vk.NewVK(cfg.VK.Token)
		lp, err := vk.NewLongPoll(vkAPI, cfg.VK.GroupID)
		if err != nil {
			return fmt.Errorf("longpoll init: %w", err)
		}

		handler := vk.NewHandler(
			vk.NewSender(vkAPI),
			application.NewQuestService(db),
			application.NewJournalService(db),
			cfg.VK.PeerID,
		)
		handler.Start(lp)

		go func() {
			<-ctx.Done()
			lp.Shutdown()
		}()

		log.Println("quest journal bot started...")
		if err := lp.Run(); err != nil {
			return fmt.Errorf("longpoll: %w", err)
		}
		log.Println("Shutting down...")
		return nil
	},
}
