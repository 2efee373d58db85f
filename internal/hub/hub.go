package hub

import (
	"github.com/rs/zerolog"
)

// Hub bundles the connection registry, router, presence tracker and history
// reconciler behind one injectable instance, constructed at server start and
// handed to the handlers that need it.
type Hub struct {
	Registry   *Registry
	Router     *Router
	Presence   *Tracker
	Reconciler *Reconciler

	logger zerolog.Logger
}

func New(store Store, agent AgentGateway, logger zerolog.Logger) *Hub {
	reg := NewRegistry(logger)
	h := &Hub{
		Registry:   reg,
		Router:     NewRouter(reg, store, agent, logger),
		Presence:   NewTracker(reg),
		Reconciler: NewReconciler(store, logger),
		logger:     logger,
	}

	// Live Connected / Disconnected indicators for the manager dashboard.
	h.Presence.OnChange(h.announceToManagers)
	return h
}

func (h *Hub) announceToManagers(ev Event) {
	for _, ch := range h.Registry.AllInRoleAndTeam(RoleManager, ev.TeamID) {
		if err := ch.Announce(ev); err != nil {
			h.logger.Debug().Err(err).Uint("userId", ev.UserID).Msg("Presence announce dropped")
		}
	}
}
