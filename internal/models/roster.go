package models

// SourceUser represents one row of the source roster: a contact queued for
// migration. Alias is the source platform's stable user identifier; the other
// fields are optional and drive destination-side lookup.
type SourceUser struct {
	Alias string
	Name  string
	Email string
	Phone string
}

// HasContactInfo reports whether a destination-side lookup can be attempted.
// Without an email or phone there is nothing to match on.
func (u SourceUser) HasContactInfo() bool {
	return u.Email != "" || u.Phone != ""
}

// ResultRow accumulates the outcome of migrating one source user. Conversation
// ids are appended as each conversation lands in the destination; the row is
// final once the user's conversation loop ends.
type ResultRow struct {
	SourceUserID      string
	DestinationUserID string
	Name              string
	Email             string
	Phone             string
	ConversationIDs   []string
}

// NewResultRow builds a result row for a source user and its resolved
// destination identity.
func NewResultRow(user SourceUser, destinationUserID string) *ResultRow {
	return &ResultRow{
		SourceUserID:      user.Alias,
		DestinationUserID: destinationUserID,
		Name:              user.Name,
		Email:             user.Email,
		Phone:             user.Phone,
	}
}
