// Package datasync owns the single visible document and applies change
// instructions with optimistic-then-confirm semantics against an authority.
package datasync

import (
	"context"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/pubsub"
)

// PubSubDocumentTopic carries the serialized visible document after every
// change of the visible state, optimistic or reconciled.
const PubSubDocumentTopic = "document"

// Confirmer is the remote authority capability. A local deterministic
// implementation and a network-backed one are interchangeable.
type Confirmer interface {
	Confirm(ctx context.Context, instr command.Instruction, doc model.Document) (model.Document, error)
}

// Store persists the reconciled document. It is only invoked after a
// successful confirmation, never from the optimistic phase.
type Store interface {
	Save(doc model.Document) error
}

// OptimisticFunc computes the tentative document shown to readers before
// confirmation completes.
type OptimisticFunc func(model.Document) model.Document

type Controller struct {
	mu        sync.Mutex
	current   model.Document
	confirmer Confirmer
	store     Store
	pubsubMgr *pubsub.PubSub[string]
	codec     DocumentCodec
}

func NewController(initial model.Document, confirmer Confirmer, store Store, pubsubMgr *pubsub.PubSub[string]) *Controller {
	return &Controller{
		current:   initial,
		confirmer: confirmer,
		store:     store,
		pubsubMgr: pubsubMgr,
	}
}

// Current returns a deep copy of the visible document. Readers always see
// either the pre-instruction document, the optimistic one, or the fully
// reconciled one, never a partial state.
func (c *Controller) Current() model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// Update applies one change instruction:
//
//  1. snapshot the visible document
//  2. publish the optimistic mutation immediately, when one is supplied
//  3. submit the instruction to the authority with the pre-instruction
//     document
//  4. on success adopt the authority's document and persist it
//  5. on failure restore the snapshot and report the error; nothing is
//     persisted
//
// Instructions are serialized by the caller; there is no internal queue and
// no retry.
func (c *Controller) Update(ctx context.Context, instr command.Instruction, optimistic OptimisticFunc) error {
	c.mu.Lock()
	previous := c.current
	if optimistic != nil {
		c.current = optimistic(previous.Clone())
	}
	visible := c.current
	c.mu.Unlock()
	if optimistic != nil {
		c.publish(visible)
	}

	confirmed, err := c.confirmer.Confirm(ctx, instr, previous)
	if err != nil {
		c.mu.Lock()
		c.current = previous
		c.mu.Unlock()
		c.publish(previous)
		return errors.Wrap(err, "confirming instruction")
	}

	c.mu.Lock()
	c.current = confirmed
	c.mu.Unlock()
	c.publish(confirmed)

	if err := c.store.Save(confirmed); err != nil {
		// the in-memory document stays the source of truth for the session
		log.Printf("error persisting confirmed document: %s\n", err.Error())
		return errors.Wrap(err, "persisting confirmed document")
	}
	return nil
}

func (c *Controller) publish(doc model.Document) {
	payload, err := c.codec.Encode(doc)
	if err != nil {
		log.Printf("error encoding document to json: %s\n", err.Error())
		return
	}
	c.pubsubMgr.Publish(PubSubDocumentTopic, payload)
}
