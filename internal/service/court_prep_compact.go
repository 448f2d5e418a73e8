// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"

	"github.com/MKhiriev/report-buddy/models"
)

// Turn is one entry of a cross-examination conversation.
type Turn = models.ChatMessage

const (
	// CompactThreshold is the history length above which older turns are
	// summarized.
	CompactThreshold = 30
	// CompactKeep is the number of most recent turns kept verbatim.
	CompactKeep = 10
	// CompactExcerptRunes bounds the rendering of one summarized turn.
	CompactExcerptRunes = 300

	compactHeader = "CONTEXT - Summary of earlier exchanges in this cross-examination session:\n"
)

// Compact bounds a conversation history. Histories of at most
// CompactThreshold turns are returned unchanged. Longer ones become a single
// system turn summarizing everything but the last CompactKeep turns,
// followed by those turns verbatim. The input is not modified.
func Compact(history []Turn) []Turn {
	if len(history) <= CompactThreshold {
		return history
	}

	split := len(history) - CompactKeep
	early, recent := history[:split], history[split:]

	var sb strings.Builder
	sb.WriteString(compactHeader)
	for _, t := range early {
		sb.WriteString(speaker(t.Role))
		sb.WriteString(": ")
		sb.WriteString(excerpt(t.Content, CompactExcerptRunes))
		sb.WriteByte('\n')
	}

	out := make([]Turn, 0, CompactKeep+1)
	out = append(out, Turn{Role: models.RoleSystem, Content: sb.String()})
	return append(out, recent...)
}

func speaker(role models.ChatRole) string {
	if role == models.RoleAssistant {
		return "Defense Attorney"
	}
	return "Officer"
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// excerpt returns the first n runes of s as written, with "..." appended
// when s was cut. Line breaks become spaces so each turn stays on one
// summary line.
func excerpt(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		s = string(runes[:n]) + "..."
	}
	return lineBreaks.Replace(s)
}
