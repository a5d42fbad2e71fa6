package errors

import "errors"

var (
	ErrMissingBotToken  = errors.New("DISCORD_BOT_TOKEN is not configured")
	ErrMissingChannelID = errors.New("DISCORD_CHANNEL_ID is not configured")
)
