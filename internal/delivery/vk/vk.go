package vk

import (
	"time"

	"github.com/SevereCloud/vksdk/v2/api"
	longpoll "github.com/SevereCloud/vksdk/v2/longpoll-bot"
)

func NewVK(token string) *api.VK {
	return api.NewVK(token)
}

func NewLongPoll(vk *api.VK, groupID int) (*longpoll.LongPoll, error) {
	return longpoll.NewLongPoll(vk, groupID)
}

// Sender delivers a reply to a chat.
type Sender interface {
	Send(peerID int, msg string) error
}

type apiSender struct {
	vk *api.VK
}

// NewSender returns a Sender backed by messages.send.
func NewSender(vk *api.VK) Sender {
	return apiSender{vk: vk}
}

func (s apiSender) Send(peerID int, msg string) error {
	_, err := s.vk.MessagesSend(api.Params{
		"peer_id":   peerID,
		"random_id": time.Now().UnixNano(),
		"message":   msg,
	})
	return err
}
