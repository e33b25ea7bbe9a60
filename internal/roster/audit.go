package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/gameroster/internal/model"
)

// Audit verbs written to the action log
const (
	ActionAdd    = "ADD"
	ActionUpdate = "UPDATE"
	ActionRename = "RENAME"
	ActionDelete = "DELETE"
)

// Audit outcomes
const (
	OutcomePass = "PASS"
	OutcomeFail = "FAIL"
)

// auditEntry describes one mutating call for the action log
type auditEntry struct {
	Action string
	ID     model.PlayerID
	Detail string
	Err    error
}

// Line renders the entry as a single grep-friendly line:
//
//	2024-01-01T12:00:00Z ADD id=1001 PASS username="test_user"
//	2024-01-01T12:00:00Z ADD id=2002 FAIL username="dup2" error="player id already exists: 2002"
func (e auditEntry) Line(at time.Time) string {
	outcome := OutcomePass
	if e.Err != nil {
		outcome = OutcomeFail
	}

	parts := []string{
		at.UTC().Format(time.RFC3339),
		e.Action,
		fmt.Sprintf("id=%d", e.ID),
		outcome,
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("error=%q", e.Err.Error()))
	}
	return strings.Join(parts, " ")
}
