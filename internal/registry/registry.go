// package registry reads and writes the spreadsheets that bracket a migration run:
// the source roster listing contacts to migrate and the destination registry
// recording what was migrated.
//
// Both files may be .xlsx or .csv workbooks. Header names are normalized
// through alias tables so exports from different tooling load the same way,
// while writes always use the canonical header set.
package registry

import (
	"strings"

	"github.com/harish2111/freshchat-migrations/internal/models"
)

// Headers is the canonical registry column order used for every write.
var Headers = []string{"sourceUserId", "destinationUserId", "name", "email", "phone", "Conversation_ids"}

// Row is one normalized registry record. Conversation IDs are kept
// comma-joined, matching the on-disk representation.
type Row struct {
	SourceUserID      string
	DestinationUserID string
	Name              string
	Email             string
	Phone             string
	ConversationIDs   string
}

// Accepted header spellings for registry files, first match wins.
var fieldAliases = map[string][]string{
	"sourceUserId":      {"sourceUserId", "SourceUserId", "source_user_id", "Source User Id"},
	"destinationUserId": {"destinationUserId", "DestinationUserId", "destination_user_id", "Destination User Id"},
	"name":              {"name", "Name", "user_name"},
	"email":             {"email", "Email"},
	"phone":             {"phone", "Phone", "phone_number"},
	"Conversation_ids":  {"Conversation_ids", "conversation_ids", "ConversationIds", "conversationIds", "Conversation Ids"},
}

// Accepted header spellings for roster files, first match wins.
var rosterAliases = map[string][]string{
	"alias": {"user_alias", "alias", "Alias", "source_user_id", "sourceUserId"},
	"name":  {"name", "user_name", "Name"},
	"email": {"email", "Email"},
	"phone": {"phone", "Phone", "phone_number"},
}

func pick(record map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := record[alias]; ok && value != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// NormalizeRow maps a raw header-keyed record onto a canonical Row.
func NormalizeRow(record map[string]string) Row {
	return Row{
		SourceUserID:      pick(record, fieldAliases["sourceUserId"]),
		DestinationUserID: pick(record, fieldAliases["destinationUserId"]),
		Name:              pick(record, fieldAliases["name"]),
		Email:             pick(record, fieldAliases["email"]),
		Phone:             pick(record, fieldAliases["phone"]),
		ConversationIDs:   pick(record, fieldAliases["Conversation_ids"]),
	}
}

// NormalizeRoster maps a raw header-keyed record onto a roster entry.
func NormalizeRoster(record map[string]string) models.SourceUser {
	return models.SourceUser{
		Alias: pick(record, rosterAliases["alias"]),
		Name:  pick(record, rosterAliases["name"]),
		Email: pick(record, rosterAliases["email"]),
		Phone: pick(record, rosterAliases["phone"]),
	}
}

// FormatRow converts a migration result into a registry row, comma-joining
// the migrated conversation IDs.
func FormatRow(result *models.ResultRow) Row {
	return Row{
		SourceUserID:      result.SourceUserID,
		DestinationUserID: result.DestinationUserID,
		Name:              result.Name,
		Email:             result.Email,
		Phone:             result.Phone,
		ConversationIDs:   strings.Join(result.ConversationIDs, ","),
	}
}

// Merge appends new rows after the existing ones. The registry is an
// append-only audit log, so reruns are kept rather than deduplicated.
func Merge(existing, added []Row) []Row {
	merged := make([]Row, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return merged
}

func (r Row) record() []string {
	return []string{r.SourceUserID, r.DestinationUserID, r.Name, r.Email, r.Phone, r.ConversationIDs}
}
