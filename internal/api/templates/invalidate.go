package templates

import (
	"github.com/rs/zerolog/log"
)

// Invalidator receives the listing scope touched by a mutation. The host
// caching layer (CDN, listing page cache) plugs in here; the core itself
// holds no cache state.
type Invalidator func(workspaceID *string)

// OnListingChanged is called after every successful create, duplicate or
// delete. Replace at wire-up time; the default just logs the signal.
var OnListingChanged Invalidator = func(workspaceID *string) {
	ev := log.Info().Str("event", "template_listing_invalidated")
	if workspaceID == nil {
		ev.Str("scope", "global").Msg("cache invalidation signal")
		return
	}
	ev.Str("scope", *workspaceID).Msg("cache invalidation signal")
}

func invalidateListings(workspaceID *string) {
	if OnListingChanged != nil {
		OnListingChanged(workspaceID)
	}
}
