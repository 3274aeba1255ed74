// Package command turns a single change instruction into one document
// mutation. The interpreter is a mechanical router: it does no referential
// or uniqueness validation, that belongs to the calling layer.
package command

import (
	"encoding/json"
	"log"

	"github.com/leoniltonftc/corrida/pkg/model"
)

type Operation string

const (
	OpAdd    Operation = "ADD"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// Instruction describes one add/update/delete operation against one entity
// type. For ADD and UPDATE the payload is the full record; for DELETE it is
// `{"id": "..."}`.
type Instruction struct {
	Op         Operation        `json:"operation"`
	EntityType model.EntityType `json:"entityType"`
	Payload    json.RawMessage  `json:"payload"`
}

// NewAdd builds an ADD instruction from a full record. The record must
// already carry its generated id and timestamp.
func NewAdd(rec model.Record) Instruction {
	return Instruction{Op: OpAdd, EntityType: rec.Entity(), Payload: marshalRecord(rec)}
}

func NewUpdate(rec model.Record) Instruction {
	return Instruction{Op: OpUpdate, EntityType: rec.Entity(), Payload: marshalRecord(rec)}
}

func NewDelete(t model.EntityType, id string) Instruction {
	payload, _ := json.Marshal(deletePayload{ID: id})
	return Instruction{Op: OpDelete, EntityType: t, Payload: payload}
}

type deletePayload struct {
	ID string `json:"id"`
}

func marshalRecord(rec model.Record) json.RawMessage {
	payload, err := json.Marshal(rec)
	if err != nil {
		// only reachable with exotic record values; treated as malformed
		log.Printf("error marshalling %s payload: %s\n", rec.Entity(), err.Error())
		return nil
	}
	return payload
}

// Apply interprets the instruction against a copy of the document and
// returns the mutated copy. The input document is never modified. A
// malformed instruction (unknown entity type, undecodable payload, missing
// id) yields the input document unchanged: deliberately lenient so a bad
// command can never corrupt state.
func Apply(doc model.Document, instr Instruction) model.Document {
	switch instr.Op {
	case OpAdd, OpUpdate:
		rec, ok := decodeRecord(instr.EntityType, instr.Payload)
		if !ok {
			log.Printf("ignoring malformed %s instruction for type %q\n", instr.Op, instr.EntityType)
			return doc
		}
		next := doc.Clone()
		next.Upsert(rec)
		return next
	case OpDelete:
		if !instr.EntityType.IsValid() {
			log.Printf("ignoring DELETE instruction for unknown type %q\n", instr.EntityType)
			return doc
		}
		var payload deletePayload
		if err := json.Unmarshal(instr.Payload, &payload); err != nil || payload.ID == "" {
			log.Printf("ignoring DELETE instruction without id for type %q\n", instr.EntityType)
			return doc
		}
		next := doc.Clone()
		next.Remove(instr.EntityType, payload.ID)
		return next
	}
	log.Printf("ignoring instruction with unknown operation %q\n", instr.Op)
	return doc
}

func decodeRecord(t model.EntityType, payload json.RawMessage) (model.Record, bool) {
	switch t {
	case model.EntitySettings:
		return decodeAs[model.Settings](payload)
	case model.EntityCategory:
		return decodeAs[model.Category](payload)
	case model.EntityTeam:
		return decodeAs[model.Team](payload)
	case model.EntityRace:
		return decodeAs[model.Race](payload)
	case model.EntityResult:
		return decodeAs[model.Result](payload)
	}
	return nil, false
}

func decodeAs[T model.Record](payload json.RawMessage) (model.Record, bool) {
	var rec T
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, false
	}
	if rec.RecordID() == "" {
		return nil, false
	}
	return rec, true
}
