package migrate

import (
	"sort"
	"time"

	"github.com/harish2111/freshchat-migrations/internal/services"
)

// TransformMessage rewrites one source message for replay on the destination.
//
// The migrated contact's messages keep its new identity; every other actor
// (agents, bots, unknown) collapses onto the fixed actor. A message that
// carried a channel is pinned to the conversation's resolved channel, since
// source channel IDs mean nothing on the destination tenant.
func TransformMessage(msg services.Message, sourceUserID, destUserID, channelID, fixedActorID, fixedActorType string) services.Message {
	out := services.Message{
		MessageType:  msg.MessageType,
		CreatedTime:  msg.CreatedTime,
		MessageParts: filterParts(msg.MessageParts),
	}

	if msg.ActorID != "" && msg.ActorID == sourceUserID {
		out.ActorID = destUserID
	} else {
		out.ActorID = fixedActorID
	}

	if msg.ActorType != "" {
		out.ActorType = msg.ActorType
	} else {
		out.ActorType = fixedActorType
	}

	if msg.ChannelID != "" {
		out.ChannelID = channelID
	}

	return out
}

// filterParts keeps only parts carrying a text, image, or video payload.
// Parts with no replayable content are dropped, not replaced with placeholders.
func filterParts(parts []services.MessagePart) []services.MessagePart {
	if parts == nil {
		return nil
	}
	kept := make([]services.MessagePart, 0, len(parts))
	for _, part := range parts {
		if part.Text != nil || part.Image != nil || part.Video != nil {
			kept = append(kept, part)
		}
	}
	return kept
}

// sortMessages orders messages ascending by creation time. Timestamps that
// fail to parse sort first so malformed records never displace real history.
func sortMessages(messages []services.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return parseCreatedTime(messages[i].CreatedTime).Before(parseCreatedTime(messages[j].CreatedTime))
	})
}

func parseCreatedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// filterSystemMessages drops auto-generated system messages, preserving order.
func filterSystemMessages(messages []services.Message) []services.Message {
	filtered := make([]services.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.MessageType == services.MessageTypeSystem {
			continue
		}
		filtered = append(filtered, msg)
	}
	return filtered
}
