// Package authority provides the confirmation step of the sync protocol.
// The deployment either talks to a remote service or runs a local
// deterministic parser that mimics one; both satisfy datasync.Confirmer.
package authority

import (
	"context"
	"log"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/model"
)

// Local confirms instructions by parsing their string wire form and applying
// the result itself. It replaces the hosted AI endpoint the system once
// used, keeping the same contract: the prompt travels as a string and an
// unparseable prompt leaves the data untouched rather than failing.
type Local struct{}

func NewLocal() Local {
	return Local{}
}

// InitialData is the first-run document, before anything was ever saved.
func (Local) InitialData() model.Document {
	return model.EmptyDocument()
}

func (Local) Confirm(_ context.Context, instr command.Instruction, doc model.Document) (model.Document, error) {
	prompt := instr.Prompt()
	log.Printf("processing local update command: %s\n", prompt)

	parsed, ok := command.ParsePrompt(prompt)
	if !ok {
		log.Printf("could not parse update command, returning data unchanged\n")
		return doc.Clone(), nil
	}
	return command.Apply(doc, parsed), nil
}
