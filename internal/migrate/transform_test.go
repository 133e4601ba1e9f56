package migrate

import (
	"testing"

	"github.com/harish2111/freshchat-migrations/internal/services"
)

func TestTransformMessage(t *testing.T) {
	t.Run("Contact Message Keeps New Identity", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ActorID != "dest_u1" {
			t.Errorf("expected dest_u1, got %s", out.ActorID)
		}
		if out.ActorType != "user" {
			t.Errorf("expected actor type passthrough, got %s", out.ActorType)
		}
	})

	t.Run("Other Actor Collapses Onto Fixed Actor", func(t *testing.T) {
		msg := textMessage("some_agent", "agent", "2024-01-01T10:00:00Z", "hello")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ActorID != "fixed_actor" {
			t.Errorf("expected fixed_actor, got %s", out.ActorID)
		}
	})

	t.Run("Missing Actor Uses Fixed Actor And Type", func(t *testing.T) {
		msg := textMessage("", "", "2024-01-01T10:00:00Z", "orphaned")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ActorID != "fixed_actor" {
			t.Errorf("expected fixed_actor, got %s", out.ActorID)
		}
		if out.ActorType != "agent" {
			t.Errorf("expected fixed actor type, got %s", out.ActorType)
		}
	})

	t.Run("Missing Actor With Empty Source ID", func(t *testing.T) {
		msg := textMessage("", "", "2024-01-01T10:00:00Z", "orphaned")

		out := TransformMessage(msg, "", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ActorID != "fixed_actor" {
			t.Errorf("expected empty actor never to match empty source, got %s", out.ActorID)
		}
	})

	t.Run("Channel Presence Pins Resolved Channel", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")
		msg.ChannelID = "src_channel"

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ChannelID != "dest_channel" {
			t.Errorf("expected resolved channel, got %s", out.ChannelID)
		}
	})

	t.Run("No Channel Stays Empty", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.ChannelID != "" {
			t.Errorf("expected empty channel, got %s", out.ChannelID)
		}
	})

	t.Run("Message Type Preserved", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")
		msg.MessageType = "private"

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.MessageType != "private" {
			t.Errorf("expected message type private, got %q", out.MessageType)
		}
	})

	t.Run("Absent Message Type Stays Absent", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if out.MessageType != "" {
			t.Errorf("expected empty message type, got %q", out.MessageType)
		}
	})

	t.Run("Parts Preserved", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if len(out.MessageParts) != 1 || out.MessageParts[0].Text.Content != "hi" {
			t.Errorf("expected message parts preserved, got %+v", out.MessageParts)
		}
	})

	t.Run("Empty Parts Dropped", func(t *testing.T) {
		msg := textMessage("src_u1", "user", "2024-01-01T10:00:00Z", "hi")
		msg.MessageParts = append(msg.MessageParts,
			services.MessagePart{},
			services.MessagePart{Image: &services.ImagePart{URL: "https://cdn.example.com/a.png"}},
		)

		out := TransformMessage(msg, "src_u1", "dest_u1", "dest_channel", "fixed_actor", "agent")
		if len(out.MessageParts) != 2 {
			t.Fatalf("expected empty part dropped, got %d parts", len(out.MessageParts))
		}
		if out.MessageParts[0].Text == nil || out.MessageParts[1].Image == nil {
			t.Errorf("expected text then image parts, got %+v", out.MessageParts)
		}
	})
}

func TestSortMessages(t *testing.T) {
	t.Run("Ascending By Created Time", func(t *testing.T) {
		messages := []services.Message{
			textMessage("a", "user", "2024-01-03T00:00:00Z", "third"),
			textMessage("b", "user", "2024-01-01T00:00:00Z", "first"),
			textMessage("c", "user", "2024-01-02T00:00:00Z", "second"),
		}

		sortMessages(messages)
		if messages[0].ActorID != "b" || messages[2].ActorID != "a" {
			t.Errorf("expected chronological order, got %s %s %s", messages[0].ActorID, messages[1].ActorID, messages[2].ActorID)
		}
	})

	t.Run("Unparseable Timestamps Sort First", func(t *testing.T) {
		messages := []services.Message{
			textMessage("a", "user", "2024-01-01T00:00:00Z", "real"),
			textMessage("b", "user", "not-a-time", "broken"),
		}

		sortMessages(messages)
		if messages[0].ActorID != "b" {
			t.Errorf("expected malformed timestamp first, got %s", messages[0].ActorID)
		}
	})

	t.Run("Stable For Equal Timestamps", func(t *testing.T) {
		messages := []services.Message{
			textMessage("a", "user", "2024-01-01T00:00:00Z", "one"),
			textMessage("b", "user", "2024-01-01T00:00:00Z", "two"),
			textMessage("c", "user", "2024-01-01T00:00:00Z", "three"),
		}

		sortMessages(messages)
		if messages[0].ActorID != "a" || messages[1].ActorID != "b" || messages[2].ActorID != "c" {
			t.Error("expected original order preserved for equal timestamps")
		}
	})
}

func TestFilterSystemMessages(t *testing.T) {
	messages := []services.Message{
		textMessage("a", "user", "2024-01-01T00:00:00Z", "keep"),
		{MessageType: services.MessageTypeSystem},
		textMessage("b", "agent", "2024-01-02T00:00:00Z", "keep too"),
	}

	filtered := filterSystemMessages(messages)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(filtered))
	}
	if filtered[0].ActorID != "a" || filtered[1].ActorID != "b" {
		t.Error("expected order preserved after filtering")
	}
}
