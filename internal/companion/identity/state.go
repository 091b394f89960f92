package identity

// Effect is the side effect a sync layer must run after an auth
// transition.
type Effect int

const (
	// EffectNone: no transition-driven work.
	EffectNone Effect = iota
	// EffectLoad: a user signed in (or switched); remote data must be
	// loaded and replace the local cache.
	EffectLoad
	// EffectDiscard: the user signed out; all local copies must be
	// discarded so no residual data leaks into the next session.
	EffectDiscard
)

// TransitionEffect computes the side effect of moving from the old
// identity to the new one. It is a pure function of the two states:
//
//	anonymous     -> authenticated : load
//	authenticated -> anonymous     : discard
//	user A        -> user B        : discard is the caller's job before
//	                                 sign-in; the fresh sign-in loads.
func TransitionEffect(old, new *Session) Effect {
	switch {
	case !old.Active() && new.Active():
		return EffectLoad
	case old.Active() && !new.Active():
		return EffectDiscard
	case old.Active() && new.Active() && old.UserID != new.UserID:
		return EffectLoad
	default:
		return EffectNone
	}
}
