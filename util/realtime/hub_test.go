package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
)

func newTestClient(userID string) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 4)}
}

func recvEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case data := <-c.Send:
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("invalid envelope: %v", err)
		}
		return env
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected a frame, got none")
		return Envelope{}
	}
}

func TestPublishMessageScopedToChannel(t *testing.T) {
	hub := NewHub(nil)
	channelA := uuid.New()
	channelB := uuid.New()

	subscriberA := newTestClient("user-a")
	subscriberB := newTestClient("user-b")
	hub.Add(subscriberA)
	hub.Add(subscriberB)
	hub.Subscribe(context.Background(), subscriberA, channelA.String())
	hub.Subscribe(context.Background(), subscriberB, channelB.String())

	msg := model.Message{
		ID:        uuid.New(),
		ChannelID: channelA,
		SenderID:  uuid.New(),
		Content:   "soundcheck at 6",
		CreatedAt: time.Now(),
	}
	hub.PublishMessage(context.Background(), msg)

	env := recvEnvelope(t, subscriberA)
	if env.Type != MsgTypeMessageNew {
		t.Errorf("envelope type = %q; want %q", env.Type, MsgTypeMessageNew)
	}
	if env.ChannelID != channelA.String() {
		t.Errorf("envelope channel = %q; want %q", env.ChannelID, channelA)
	}

	select {
	case <-subscriberB.Send:
		t.Error("subscriber on another channel must not receive the message")
	default:
	}
}

func TestSubscribeReplacesPreviousChannel(t *testing.T) {
	hub := NewHub(nil)
	channelA := uuid.New()
	channelB := uuid.New()

	client := newTestClient("user-a")
	hub.Add(client)
	hub.Subscribe(context.Background(), client, channelA.String())
	hub.Subscribe(context.Background(), client, channelB.String())

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channelA,
		SenderID:  uuid.New(),
		Content:   "old room",
	})

	select {
	case <-client.Send:
		t.Error("client must stop receiving from the channel it left")
	default:
	}

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channelB,
		SenderID:  uuid.New(),
		Content:   "new room",
	})

	env := recvEnvelope(t, client)
	if env.ChannelID != channelB.String() {
		t.Errorf("envelope channel = %q; want %q", env.ChannelID, channelB)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(nil)
	channel := uuid.New()

	client := newTestClient("user-a")
	hub.Add(client)
	hub.Subscribe(context.Background(), client, channel.String())
	hub.Unsubscribe(client)

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		SenderID:  uuid.New(),
		Content:   "anyone here?",
	})

	select {
	case <-client.Send:
		t.Error("unsubscribed client must not receive messages")
	default:
	}
}

func TestPublishMessageResolvesSender(t *testing.T) {
	senderID := uuid.New()
	avatar := "https://img.example/avatar.png"
	hub := NewHub(func(_ context.Context, id uuid.UUID) (*model.ProfileSummary, error) {
		if id != senderID {
			t.Errorf("resolver called with %v; want %v", id, senderID)
		}
		return &model.ProfileSummary{
			ID:          id,
			DisplayName: "DJ Nova",
			AvatarURL:   &avatar,
			ProfileType: "artist",
		}, nil
	})

	channel := uuid.New()
	client := newTestClient("user-a")
	hub.Add(client)
	hub.Subscribe(context.Background(), client, channel.String())

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		SenderID:  senderID,
		Content:   "hello",
	})

	env := recvEnvelope(t, client)
	payload, err := json.Marshal(env.Payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var msg model.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if msg.Sender == nil || msg.Sender.DisplayName != "DJ Nova" {
		t.Errorf("message sender = %+v; want resolved profile", msg.Sender)
	}
}

func TestSubscribeEnforcesMembership(t *testing.T) {
	channel := uuid.New()

	hub := NewHub(nil)
	hub.SetMembership(func(_ context.Context, userID, channelID string) (bool, error) {
		return userID == "member" && channelID == channel.String(), nil
	})

	member := newTestClient("member")
	outsider := newTestClient("outsider")
	hub.Add(member)
	hub.Add(outsider)

	if err := hub.Subscribe(context.Background(), member, channel.String()); err != nil {
		t.Fatalf("member subscribe: %v", err)
	}
	if err := hub.Subscribe(context.Background(), outsider, channel.String()); err != ErrNotChannelMember {
		t.Fatalf("outsider subscribe err = %v; want ErrNotChannelMember", err)
	}

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		SenderID:  uuid.New(),
		Content:   "members only",
	})

	env := recvEnvelope(t, member)
	if env.Type != MsgTypeMessageNew {
		t.Errorf("member envelope type = %q; want %q", env.Type, MsgTypeMessageNew)
	}

	select {
	case <-outsider.Send:
		t.Error("a user outside the community must never receive channel messages")
	default:
	}
}

func TestSubscribeDenialKeepsPreviousChannel(t *testing.T) {
	allowed := uuid.New()
	denied := uuid.New()

	hub := NewHub(nil)
	hub.SetMembership(func(_ context.Context, _ string, channelID string) (bool, error) {
		return channelID == allowed.String(), nil
	})

	client := newTestClient("user-a")
	hub.Add(client)

	if err := hub.Subscribe(context.Background(), client, allowed.String()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := hub.Subscribe(context.Background(), client, denied.String()); err == nil {
		t.Fatal("expected the second subscribe to be refused")
	}

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: allowed,
		SenderID:  uuid.New(),
		Content:   "still here",
	})

	env := recvEnvelope(t, client)
	if env.ChannelID != allowed.String() {
		t.Errorf("envelope channel = %q; want %q", env.ChannelID, allowed)
	}
}

func TestPublishMessageDropsSlowConsumer(t *testing.T) {
	hub := NewHub(nil)
	channel := uuid.New()

	slow := &Client{UserID: "slow", Send: make(chan []byte)} // unbuffered, never read
	hub.Add(slow)
	hub.Subscribe(context.Background(), slow, channel.String())

	hub.PublishMessage(context.Background(), model.Message{
		ID:        uuid.New(),
		ChannelID: channel,
		SenderID:  uuid.New(),
		Content:   "flood",
	})

	// send channel is closed when the hub drops the client
	select {
	case _, open := <-slow.Send:
		if open {
			t.Error("expected the slow consumer's send channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("expected the slow consumer to be dropped")
	}
}
