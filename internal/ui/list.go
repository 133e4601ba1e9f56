package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/harish2111/freshchat-migrations/internal/models"
)

var _ list.Item = rosterItem{}

// rosterItem wraps [models.SourceUser] to implement [list.Item].
type rosterItem struct {
	user models.SourceUser
}

func (i rosterItem) FilterValue() string { return i.user.Alias }

func (i rosterItem) Title() string {
	if i.user.Name != "" {
		return i.user.Name
	}
	return i.user.Alias
}

func (i rosterItem) Description() string {
	desc := i.user.Alias
	if i.user.Email != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.user.Email)
	}
	if i.user.Phone != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.user.Phone)
	}
	return desc
}
