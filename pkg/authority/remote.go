package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/model"
)

// Remote submits the instruction to an HTTP authority and adopts whatever
// document it returns. Any transport or decoding problem is a confirmation
// failure: the caller rolls back and may resubmit.
type Remote struct {
	url    string
	client *http.Client
}

func NewRemote(url string) *Remote {
	return &Remote{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type updateRequest struct {
	Prompt string         `json:"prompt"`
	Data   model.Document `json:"data"`
}

func (r *Remote) Confirm(ctx context.Context, instr command.Instruction, doc model.Document) (model.Document, error) {
	body, err := json.Marshal(updateRequest{Prompt: instr.Prompt(), Data: doc})
	if err != nil {
		return model.Document{}, errors.Wrap(err, "encoding update request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return model.Document{}, errors.Wrap(err, "building update request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return model.Document{}, errors.Wrap(err, "calling authority")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Document{}, fmt.Errorf("authority returned status %d", resp.StatusCode)
	}

	var updated model.Document
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return model.Document{}, errors.Wrap(err, "decoding authority response")
	}
	return updated, nil
}
