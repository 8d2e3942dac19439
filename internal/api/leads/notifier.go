package leads

import (
	dl "crm-backend/internal/domain/leads"

	"github.com/rs/zerolog/log"
)

// Notifier forwards a captured lead to downstream integrations (CRM
// sync, mail, webhooks). Fire-and-forget: capture never waits on it and
// never fails because of it.
type Notifier func(lead dl.Lead)

// OnLeadCaptured is replaced at wire-up time by the host integration
// layer; the default just logs the event.
var OnLeadCaptured Notifier = func(l dl.Lead) {
	log.Info().
		Str("event", "lead_captured").
		Str("lead_id", l.ID).
		Str("profile_id", l.ProfileID).
		Msg("lead notification")
}

func notifyAsync(l dl.Lead) {
	// Snapshot the hook before launching: the goroutine must see the
	// notifier installed at capture time, not whatever is installed when
	// the scheduler gets around to running it.
	fn := OnLeadCaptured
	if fn == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("lead notifier panicked")
			}
		}()
		fn(l)
	}()
}
