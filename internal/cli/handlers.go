package cli

import (
	"github.com/bjaus/gateway"
	"github.com/bjaus/gateway/model"
)

// builtinHandlers log session lifecycle events for both replay and listen.
var builtinHandlers = []gateway.Entry{
	gateway.On(gateway.Ready, "log-ready", func(c *gateway.Context, r model.Ready) error {
		c.Logger().Info().
			Str("session", r.SessionID).
			Str("user", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("session ready")
		return nil
	}),
	gateway.OnEvent(gateway.Resumed, "log-resumed", func(c *gateway.Context) error {
		c.Logger().Info().Msg("session resumed")
		return nil
	}),
	gateway.On(gateway.GuildMemberAdd, "log-member-add", func(c *gateway.Context, m model.GuildMemberAdd) error {
		e := c.Logger().Debug().Str("guild", string(m.GuildID))
		if m.User != nil {
			e = e.Str("user", m.User.Username)
		}
		e.Msg("member joined")
		return nil
	}),
}
