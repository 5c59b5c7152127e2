// Package notifications publishes per-user events over Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"estately/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const userChannelPrefix = "estately:notifications:user:"

// Event types delivered to listing owners.
const (
	EventPropertyModerated = "property.moderated"
	EventInquiryReceived   = "inquiry.received"
)

// Event is the JSON payload published on a user's channel.
type Event struct {
	Type       string    `json:"type"`
	PropertyID uint      `json:"propertyId"`
	InquiryID  uint      `json:"inquiryId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

// UserChannel is the pub/sub channel for userID.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}

// Notifier provides helpers to publish notifications into Redis channels.
// A nil Notifier, or one without a client, drops every event.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends ev to userID's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// StartSubscriber subscribes to every user channel and calls onEvent for each
// decodable message until ctx is cancelled. It returns once the subscription is live.
func (n *Notifier) StartSubscriber(ctx context.Context, onEvent func(userID uint, ev Event)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe notifications: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				dispatch(msg, onEvent)
			}
		}
	}()

	return nil
}

func dispatch(msg *redis.Message, onEvent func(uint, Event)) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.Error("panic in notification subscriber",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	userID, err := strconv.ParseUint(strings.TrimPrefix(msg.Channel, userChannelPrefix), 10, 32)
	if err != nil {
		return
	}
	var ev Event
	if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
		middleware.Logger.Warn("dropping malformed notification", slog.String("channel", msg.Channel))
		return
	}
	onEvent(uint(userID), ev)
}
