package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MemberList is a list of member inventoIds. Clients send it as a JSON array, as a string
// holding a JSON array, or as a comma separated string.
type MemberList []string

// UnmarshalJSON implements json.Unmarshaler.
func (m *MemberList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("members must be a list of ids: %w", err)
		}
		*m = ids
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("members must be a list of ids: %w", err)
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var ids []string
		if err := json.Unmarshal([]byte(s), &ids); err != nil {
			return fmt.Errorf("members must be a list of ids: %w", err)
		}
		*m = ids
		return nil
	}
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	*m = ids
	return nil
}

// EventRef identifies an event by slug or numeric id; clients send either a string or a number.
type EventRef string

// UnmarshalJSON implements json.Unmarshaler.
func (e *EventRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = EventRef(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("eventId must be a slug or a number")
	}
	id, err := strconv.Atoi(n.String())
	if err != nil {
		return fmt.Errorf("eventId must be a whole number: %w", err)
	}
	*e = EventRef(strconv.Itoa(id))
	return nil
}
