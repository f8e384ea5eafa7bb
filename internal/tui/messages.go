package tui

import (
	"github.com/techtonix/compass/internal/browse"
	"github.com/techtonix/compass/internal/profile"
)

type profileSubmittedMsg struct {
	profile profile.Profile
}

// fetchDoneMsg carries the generation of the fetch it completes; the
// browser drops it when a newer fetch has been issued since.
type fetchDoneMsg struct {
	completion browse.Completion
}

type errMsg struct {
	err error
}
