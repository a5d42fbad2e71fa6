package service

import (
	"regexp"
	"strings"
)

var (
	userMentionPattern = regexp.MustCompile(`<@!?\d+>`)
	roleMentionPattern = regexp.MustCompile(`<@&\d+>`)
	channelRefPattern  = regexp.MustCompile(`<#\d+>`)
)

// Sanitize rewrites platform mention tokens into plain text. Literal
// \u003c and \u003e sequences are unescaped first; upstream payloads
// can arrive double-escaped, and an escaped mention token must still be
// replaced. No other markup is touched.
func Sanitize(content string) string {
	content = strings.ReplaceAll(content, `\u003c`, "<")
	content = strings.ReplaceAll(content, `\u003e`, ">")
	content = userMentionPattern.ReplaceAllString(content, "@user")
	content = roleMentionPattern.ReplaceAllString(content, "@role")
	content = channelRefPattern.ReplaceAllString(content, "#channel")
	return content
}
