package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Approval - решение редактора по статье.
// Одно значение из трех, а не два флага, чтобы "одобрена" и "отклонена" не могли совпасть.
type Approval int8

const (
	Pending Approval = iota
	Approved
	Rejected
)

// Маркеры решения в ячейке таблицы
const (
	ApprovedMarker = "✅"
	RejectedMarker = "❌"
	// Так помечаются статьи, которые завернули через бота
	VetoedMarker = "🚫"
)

// ParseApproval разбирает ячейку таблицы. Все что не распознано - Pending.
func ParseApproval(cell string) Approval {
	switch {
	case strings.Contains(cell, ApprovedMarker):
		return Approved
	case strings.Contains(cell, RejectedMarker), strings.Contains(cell, VetoedMarker):
		return Rejected
	default:
		return Pending
	}
}

// Marker - значение ячейки для записи обратно в таблицу
func (a Approval) Marker() string {
	switch a {
	case Approved:
		return ApprovedMarker
	case Rejected:
		return RejectedMarker
	default:
		return ""
	}
}

// ToggleApprove: повторное одобрение сбрасывает статью в Pending
func (a Approval) ToggleApprove() Approval {
	if a == Approved {
		return Pending
	}
	return Approved
}

// ToggleReject: повторное отклонение сбрасывает статью в Pending
func (a Approval) ToggleReject() Approval {
	if a == Rejected {
		return Pending
	}
	return Rejected
}

func (a Approval) String() string {
	switch a {
	case Approved:
		return "approved"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// В JSON решение лежит как true / false / null
func (a Approval) MarshalJSON() ([]byte, error) {
	switch a {
	case Approved:
		return []byte("true"), nil
	case Rejected:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Approval) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*a = Approved
	case "false":
		*a = Rejected
	case "null", `""`:
		*a = Pending
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid approval value %s", data)
		}
		*a = ParseApproval(s)
	}
	return nil
}
