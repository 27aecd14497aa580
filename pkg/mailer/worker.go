package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-exercise-tracker/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	// Drop rejects a message that can never succeed.
	Drop
	// Failed rejects a message whose delivery failed. It is not requeued;
	// the queue's dead-letter exchange, if any, keeps it.
	Failed
)

var ErrBadJob = errors.New("bad email job")

// Handle decodes, renders and sends one queued job.
func Handle(ctx context.Context, s Sender, body []byte) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return Drop, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return Drop, fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return Drop, fmt.Errorf("%w: empty message", ErrBadJob)
	}

	if err := s.Send(ctx, job.To, subject, text, html); err != nil {
		return Failed, err
	}
	return Ack, nil
}
