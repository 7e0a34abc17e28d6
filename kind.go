package gateway

// Kind identifies a gateway dispatch event. The set is closed: names the
// library does not know decode to no Kind at all rather than an error, so
// new events introduced upstream are dropped until they are added here.
type Kind uint16

// KindUnknown is the zero Kind. It never comes out of ParseKind.
const KindUnknown Kind = 0

const (
	Ready Kind = iota + 1
	Resumed
	ApplicationCommandPermissionsUpdate
	AutoModerationRuleCreate
	AutoModerationRuleUpdate
	AutoModerationRuleDelete
	AutoModerationActionExecution
	ChannelCreate
	ChannelUpdate
	ChannelDelete
	ChannelPinsUpdate
	ThreadCreate
	ThreadUpdate
	ThreadDelete
	ThreadListSync
	ThreadMemberUpdate
	ThreadMembersUpdate
	EntitlementCreate
	EntitlementUpdate
	EntitlementDelete
	GuildCreate
	GuildUpdate
	GuildDelete
	GuildAuditLogEntryCreate
	GuildBanAdd
	GuildBanRemove
	GuildEmojisUpdate
	GuildStickersUpdate
	GuildIntegrationsUpdate
	GuildMemberAdd
	GuildMemberRemove
	GuildMemberUpdate
	GuildMembersChunk
	GuildRoleCreate
	GuildRoleUpdate
	GuildRoleDelete
	GuildScheduledEventCreate
	GuildScheduledEventUpdate
	GuildScheduledEventDelete
	GuildScheduledEventUserAdd
	GuildScheduledEventUserRemove
	IntegrationCreate
	IntegrationUpdate
	IntegrationDelete
	InteractionCreate
	InviteCreate
	InviteDelete
	MessageCreate
	MessageUpdate
	MessageDelete
	MessageDeleteBulk
	MessageReactionAdd
	MessageReactionRemove
	MessageReactionRemoveAll
	MessageReactionRemoveEmoji
	MessagePollVoteAdd
	MessagePollVoteRemove
	PresenceUpdate
	StageInstanceCreate
	StageInstanceUpdate
	StageInstanceDelete
	TypingStart
	UserUpdate
	VoiceStateUpdate
	VoiceServerUpdate
	WebhooksUpdate

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:                         "UNKNOWN",
	Ready:                               "READY",
	Resumed:                             "RESUMED",
	ApplicationCommandPermissionsUpdate: "APPLICATION_COMMAND_PERMISSIONS_UPDATE",
	AutoModerationRuleCreate:            "AUTO_MODERATION_RULE_CREATE",
	AutoModerationRuleUpdate:            "AUTO_MODERATION_RULE_UPDATE",
	AutoModerationRuleDelete:            "AUTO_MODERATION_RULE_DELETE",
	AutoModerationActionExecution:       "AUTO_MODERATION_ACTION_EXECUTION",
	ChannelCreate:                       "CHANNEL_CREATE",
	ChannelUpdate:                       "CHANNEL_UPDATE",
	ChannelDelete:                       "CHANNEL_DELETE",
	ChannelPinsUpdate:                   "CHANNEL_PINS_UPDATE",
	ThreadCreate:                        "THREAD_CREATE",
	ThreadUpdate:                        "THREAD_UPDATE",
	ThreadDelete:                        "THREAD_DELETE",
	ThreadListSync:                      "THREAD_LIST_SYNC",
	ThreadMemberUpdate:                  "THREAD_MEMBER_UPDATE",
	ThreadMembersUpdate:                 "THREAD_MEMBERS_UPDATE",
	EntitlementCreate:                   "ENTITLEMENT_CREATE",
	EntitlementUpdate:                   "ENTITLEMENT_UPDATE",
	EntitlementDelete:                   "ENTITLEMENT_DELETE",
	GuildCreate:                         "GUILD_CREATE",
	GuildUpdate:                         "GUILD_UPDATE",
	GuildDelete:                         "GUILD_DELETE",
	GuildAuditLogEntryCreate:            "GUILD_AUDIT_LOG_ENTRY_CREATE",
	GuildBanAdd:                         "GUILD_BAN_ADD",
	GuildBanRemove:                      "GUILD_BAN_REMOVE",
	GuildEmojisUpdate:                   "GUILD_EMOJIS_UPDATE",
	GuildStickersUpdate:                 "GUILD_STICKERS_UPDATE",
	GuildIntegrationsUpdate:             "GUILD_INTEGRATIONS_UPDATE",
	GuildMemberAdd:                      "GUILD_MEMBER_ADD",
	GuildMemberRemove:                   "GUILD_MEMBER_REMOVE",
	GuildMemberUpdate:                   "GUILD_MEMBER_UPDATE",
	GuildMembersChunk:                   "GUILD_MEMBERS_CHUNK",
	GuildRoleCreate:                     "GUILD_ROLE_CREATE",
	GuildRoleUpdate:                     "GUILD_ROLE_UPDATE",
	GuildRoleDelete:                     "GUILD_ROLE_DELETE",
	GuildScheduledEventCreate:           "GUILD_SCHEDULED_EVENT_CREATE",
	GuildScheduledEventUpdate:           "GUILD_SCHEDULED_EVENT_UPDATE",
	GuildScheduledEventDelete:           "GUILD_SCHEDULED_EVENT_DELETE",
	GuildScheduledEventUserAdd:          "GUILD_SCHEDULED_EVENT_USER_ADD",
	GuildScheduledEventUserRemove:       "GUILD_SCHEDULED_EVENT_USER_REMOVE",
	IntegrationCreate:                   "INTEGRATION_CREATE",
	IntegrationUpdate:                   "INTEGRATION_UPDATE",
	IntegrationDelete:                   "INTEGRATION_DELETE",
	InteractionCreate:                   "INTERACTION_CREATE",
	InviteCreate:                        "INVITE_CREATE",
	InviteDelete:                        "INVITE_DELETE",
	MessageCreate:                       "MESSAGE_CREATE",
	MessageUpdate:                       "MESSAGE_UPDATE",
	MessageDelete:                       "MESSAGE_DELETE",
	MessageDeleteBulk:                   "MESSAGE_DELETE_BULK",
	MessageReactionAdd:                  "MESSAGE_REACTION_ADD",
	MessageReactionRemove:               "MESSAGE_REACTION_REMOVE",
	MessageReactionRemoveAll:            "MESSAGE_REACTION_REMOVE_ALL",
	MessageReactionRemoveEmoji:          "MESSAGE_REACTION_REMOVE_EMOJI",
	MessagePollVoteAdd:                  "MESSAGE_POLL_VOTE_ADD",
	MessagePollVoteRemove:               "MESSAGE_POLL_VOTE_REMOVE",
	PresenceUpdate:                      "PRESENCE_UPDATE",
	StageInstanceCreate:                 "STAGE_INSTANCE_CREATE",
	StageInstanceUpdate:                 "STAGE_INSTANCE_UPDATE",
	StageInstanceDelete:                 "STAGE_INSTANCE_DELETE",
	TypingStart:                         "TYPING_START",
	UserUpdate:                          "USER_UPDATE",
	VoiceStateUpdate:                    "VOICE_STATE_UPDATE",
	VoiceServerUpdate:                   "VOICE_SERVER_UPDATE",
	WebhooksUpdate:                      "WEBHOOKS_UPDATE",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, kindCount-1)
	for k := Ready; k < kindCount; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// ParseKind maps a wire event name such as "MESSAGE_CREATE" to its Kind.
// It reports false for names outside the known set.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every known Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Ready; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// HasPayload reports whether frames of this kind carry a data object worth
// decoding. RESUMED sends a null payload.
func (k Kind) HasPayload() bool {
	return k != Resumed
}
