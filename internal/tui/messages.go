package tui

import "github.com/marvus-creator/Malvyn/internal/service"

// themeSavedMsg reports that a theme preference was persisted.
type themeSavedMsg struct {
	theme service.Theme
}

// errorMsg carries an error into the update loop.
type errorMsg struct {
	err error
}
