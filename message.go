// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"encoding/json"
	"strings"
)

// MessageType returns the "type" field of a message sent with go.send, or ""
// when the message is plain text, malformed JSON, or has no string type.
func MessageType(msg string) string {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, "{") {
		return ""
	}
	var envelope struct {
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal([]byte(msg), &envelope); err != nil {
		return ""
	}
	var t string
	if err := json.Unmarshal(envelope.Type, &t); err != nil {
		return ""
	}
	return t
}
