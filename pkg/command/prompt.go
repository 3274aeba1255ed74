package command

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/leoniltonftc/corrida/pkg/model"
)

// The string form of an instruction only exists at the authority boundary.
// It is the historical wire format: an English verb phrase with an embedded
// JSON payload (or, for deletes, quoted type and id).
const (
	promptMarkerAdd    = "Add the following new item"
	promptMarkerUpdate = "Update the following item"
	promptMarkerDelete = "Delete the item"
)

var (
	deleteTypeRe = regexp.MustCompile(`type '([^']+)'`)
	deleteIDRe   = regexp.MustCompile(`id '([^']+)'`)
)

// Prompt serializes the instruction into its string wire form.
func (i Instruction) Prompt() string {
	switch i.Op {
	case OpAdd:
		return fmt.Sprintf("Add the following new item of type '%s' to the data: %s", i.EntityType, string(i.Payload))
	case OpUpdate:
		return fmt.Sprintf("Update the following item of type '%s' in the data: %s", i.EntityType, string(i.Payload))
	case OpDelete:
		var payload deletePayload
		_ = json.Unmarshal(i.Payload, &payload)
		return fmt.Sprintf("Delete the item with type '%s' and id '%s' from the data.", i.EntityType, payload.ID)
	}
	return ""
}

// ParsePrompt decodes the string wire form back into a typed instruction.
// It parses defensively: anything that does not match one of the three
// known shapes yields ok == false, never a panic.
func ParsePrompt(prompt string) (Instruction, bool) {
	switch {
	case strings.Contains(prompt, promptMarkerAdd):
		return parseUpsertPrompt(prompt, OpAdd)
	case strings.Contains(prompt, promptMarkerUpdate):
		return parseUpsertPrompt(prompt, OpUpdate)
	case strings.Contains(prompt, promptMarkerDelete):
		typeMatch := deleteTypeRe.FindStringSubmatch(prompt)
		idMatch := deleteIDRe.FindStringSubmatch(prompt)
		if typeMatch == nil || idMatch == nil {
			return Instruction{}, false
		}
		entityType := model.EntityType(typeMatch[1])
		if !entityType.IsValid() {
			return Instruction{}, false
		}
		return NewDelete(entityType, idMatch[1]), true
	}
	return Instruction{}, false
}

func parseUpsertPrompt(prompt string, op Operation) (Instruction, bool) {
	jsonStart := strings.Index(prompt, "{")
	jsonEnd := strings.LastIndex(prompt, "}")
	if jsonStart < 0 || jsonEnd < jsonStart {
		return Instruction{}, false
	}
	payload := json.RawMessage(prompt[jsonStart : jsonEnd+1])

	// the embedded item carries its own `type` tag
	var tagged struct {
		Type model.EntityType `json:"type"`
	}
	if err := json.Unmarshal(payload, &tagged); err != nil || !tagged.Type.IsValid() {
		return Instruction{}, false
	}
	return Instruction{Op: op, EntityType: tagged.Type, Payload: payload}, true
}
