package nl2sql

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Result is one translated question.
type Result struct {
	SQL      string
	Response string
}

// Engine translates questions against a fixed rendered schema.
type Engine struct {
	client     *Client
	schemaText string
	log        *logrus.Logger
}

func NewEngine(client *Client, schemaText string, log *logrus.Logger) *Engine {
	return &Engine{client: client, schemaText: schemaText, log: log}
}

// Translate sends the question with the schema context and extracts the SQL
// from the response.
func (e *Engine) Translate(ctx context.Context, question string) (*Result, error) {
	if question == "" {
		return nil, fmt.Errorf("question must not be empty")
	}

	e.log.WithField("question", question).Debug("sending translation request")
	response, err := e.client.Complete(ctx, BuildSystemPrompt(e.schemaText), question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate SQL: %w", err)
	}
	e.log.WithField("response_chars", len(response)).Debug("received response")

	return &Result{
		SQL:      ExtractSQL(response),
		Response: response,
	}, nil
}
