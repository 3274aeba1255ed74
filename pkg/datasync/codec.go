package datasync

import (
	"encoding/json"

	"github.com/leoniltonftc/corrida/pkg/model"
)

// DocumentCodec moves documents in and out of the string payloads carried on
// the pubsub document topic.
type DocumentCodec struct{}

func (DocumentCodec) Encode(doc model.Document) (string, error) {
	payload, err := json.Marshal(doc)
	return string(payload), err
}

func (DocumentCodec) Decode(payload string) (model.Document, error) {
	var doc model.Document
	err := json.Unmarshal([]byte(payload), &doc)
	return doc, err
}
