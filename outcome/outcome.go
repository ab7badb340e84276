// Package outcome decides what the caller does after a login attempt.
package outcome

import (
	"errors"
	"fmt"

	"github.com/vuquang23/go-ffxiv/launcher"
)

// Intent is what the user asked for when logging in.
type Intent int

const (
	IntentPlay Intent = iota
	IntentPlayNoAddon
	IntentDryRun
	IntentRepair
)

func (i Intent) String() string {
	switch i {
	case IntentPlay:
		return "play"
	case IntentPlayNoAddon:
		return "play-no-addon"
	case IntentDryRun:
		return "dry-run"
	case IntentRepair:
		return "repair"
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

func ParseIntent(s string) (Intent, error) {
	for _, i := range []Intent{IntentPlay, IntentPlayNoAddon, IntentDryRun, IntentRepair} {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

// Action is the single terminal step for the caller.
type Action int

const (
	ActionReject Action = iota
	ActionLaunch
	ActionPatch
	ActionRepair
	ActionNone
)

func (a Action) String() string {
	switch a {
	case ActionReject:
		return "reject"
	case ActionLaunch:
		return "launch"
	case ActionPatch:
		return "patch"
	case ActionRepair:
		return "repair"
	case ActionNone:
		return "none"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

var (
	ErrNoService       = errors.New("this account cannot play: no active subscription")
	ErrNoTerms         = errors.New("the terms of use have not been accepted in the official launcher")
	ErrBootConflict    = errors.New("boot files were modified outside the patcher, reinstall required")
	ErrRepairMismatch  = errors.New("the server sent an unexpected response, the repair cannot proceed")
	ErrNotLoggedIn     = errors.New("login did not complete")
	ErrIncompleteLogin = errors.New("login result is missing its unique id")
)

// Decision is the resolved action. Reason is set when Action is ActionReject.
type Decision struct {
	Action Action
	Reason error
	// Launch tells a patch or repair step to start the game afterwards.
	Launch bool
	// Addons is false when the game must start without plugins.
	Addons bool
}

func reject(reason error) Decision {
	return Decision{Action: ActionReject, Reason: reason}
}

// Resolve maps a login result and the caller's intent to one action.
func Resolve(result *launcher.LoginResult, intent Intent) Decision {
	if result == nil {
		return reject(ErrNotLoggedIn)
	}

	switch result.State {
	case launcher.LoginStateNoService:
		return reject(ErrNoService)
	case launcher.LoginStateNoTerms:
		return reject(ErrNoTerms)
	case launcher.LoginStateNeedsPatchBoot:
		return reject(ErrBootConflict)
	case launcher.LoginStateNeedsPatchGame, launcher.LoginStateOk:
	default:
		return reject(ErrNotLoggedIn)
	}

	launch := intent == IntentPlay || intent == IntentPlayNoAddon
	addons := intent != IntentPlayNoAddon

	if intent == IntentRepair {
		// Repair logs in against the base version, so the server must list patches.
		if result.State != launcher.LoginStateNeedsPatchGame {
			return reject(ErrRepairMismatch)
		}
		return Decision{Action: ActionRepair, Addons: true}
	}

	if result.State == launcher.LoginStateNeedsPatchGame {
		return Decision{Action: ActionPatch, Launch: launch, Addons: addons}
	}

	if result.UniqueID == "" || result.OauthLogin == nil || !result.OauthLogin.Playable {
		return reject(ErrIncompleteLogin)
	}
	if !launch {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionLaunch, Launch: true, Addons: addons}
}
