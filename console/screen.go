// Package console is the view layer of the supplier console: which screen
// to show, which pages and controls a role sees, and the action handlers
// behind those controls.
package console

import (
	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/session"
)

// Screen is the top-level view for the current session
type Screen string

const (
	ScreenLoading   Screen = "loading"
	ScreenLogin     Screen = "login"
	ScreenStaffOnly Screen = "staff-only"
	ScreenConsole   Screen = "console"
)

// StaffOnlyMessage is shown to signed-in users who are not supplier staff
var StaffOnlyMessage = services.ErrStaffOnly.Message

// ResolveScreen picks the screen for a session state and user. Nothing but
// the loading screen is shown until initialization has settled.
func ResolveScreen(state session.State, user *models.User) Screen {
	switch state {
	case session.StateAuthenticated:
		if user == nil {
			return ScreenLogin
		}
		if !user.IsSupplierStaff() {
			return ScreenStaffOnly
		}
		return ScreenConsole
	case session.StateAnonymous:
		return ScreenLogin
	default:
		return ScreenLoading
	}
}
