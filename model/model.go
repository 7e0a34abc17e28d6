// Package model holds payload types for a handful of common gateway events.
//
// The gateway core never depends on these: handlers declare whatever payload
// type they want and the raw event data is decoded into it. Fields not listed
// here are ignored on decode.
package model

import (
	"errors"
	"time"
)

// Snowflake is a Discord id. The gateway sends ids as strings.
type Snowflake string

// User is a Discord user.
type User struct {
	ID            Snowflake `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator,omitempty"`
	GlobalName    *string   `json:"global_name,omitempty"`
	Bot           bool      `json:"bot,omitempty"`
}

// UnavailableGuild is a guild announced in READY before its GUILD_CREATE.
type UnavailableGuild struct {
	ID          Snowflake `json:"id"`
	Unavailable bool      `json:"unavailable"`
}

// Ready is the READY payload.
type Ready struct {
	Version          int                `json:"v"`
	User             User               `json:"user"`
	Guilds           []UnavailableGuild `json:"guilds"`
	SessionID        string             `json:"session_id"`
	ResumeGatewayURL string             `json:"resume_gateway_url"`
	Shard            []int              `json:"shard,omitempty"`
}

// Validate rejects READY payloads without a session id, which cannot be
// resumed.
func (r Ready) Validate() error {
	if r.SessionID == "" {
		return errors.New("ready: missing session_id")
	}
	return nil
}

// Message is the MESSAGE_CREATE and MESSAGE_UPDATE payload.
type Message struct {
	ID        Snowflake    `json:"id"`
	ChannelID Snowflake    `json:"channel_id"`
	GuildID   *Snowflake   `json:"guild_id,omitempty"`
	Author    User         `json:"author"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Mentions  []User       `json:"mentions,omitempty"`
	Member    *GuildMember `json:"member,omitempty"`
}

// MessageDelete is the MESSAGE_DELETE payload.
type MessageDelete struct {
	ID        Snowflake  `json:"id"`
	ChannelID Snowflake  `json:"channel_id"`
	GuildID   *Snowflake `json:"guild_id,omitempty"`
}

// GuildMember is a member of a guild.
type GuildMember struct {
	User     *User       `json:"user,omitempty"`
	Nick     *string     `json:"nick,omitempty"`
	Roles    []Snowflake `json:"roles"`
	JoinedAt time.Time   `json:"joined_at"`
}

// GuildMemberAdd is the GUILD_MEMBER_ADD payload.
type GuildMemberAdd struct {
	GuildMember
	GuildID Snowflake `json:"guild_id"`
}

// TypingStart is the TYPING_START payload.
type TypingStart struct {
	ChannelID Snowflake  `json:"channel_id"`
	GuildID   *Snowflake `json:"guild_id,omitempty"`
	UserID    Snowflake  `json:"user_id"`
	Timestamp int64      `json:"timestamp"`
}

// InteractionType distinguishes interaction payloads.
type InteractionType int

const (
	InteractionPing InteractionType = iota + 1
	InteractionApplicationCommand
	InteractionMessageComponent
	InteractionApplicationCommandAutocomplete
	InteractionModalSubmit
)

// Interaction is the INTERACTION_CREATE payload.
type Interaction struct {
	ID            Snowflake       `json:"id"`
	ApplicationID Snowflake       `json:"application_id"`
	Type          InteractionType `json:"type"`
	GuildID       *Snowflake      `json:"guild_id,omitempty"`
	ChannelID     *Snowflake      `json:"channel_id,omitempty"`
	Member        *GuildMember    `json:"member,omitempty"`
	User          *User           `json:"user,omitempty"`
	Token         string          `json:"token"`
}
