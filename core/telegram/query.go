package telegram

import (
	tele "gopkg.in/telebot.v4"
)

// Query wraps an incoming inline query so callbacks never deal with raw
// transport argument shapes.
type Query struct {
	ctx tele.Context
	raw *tele.Query
}

// Text returns the inline query text.
func (q Query) Text() string {
	if q.raw == nil {
		return ""
	}
	return q.raw.Text
}

// Sender returns the user who issued the query.
func (q Query) Sender() *tele.User {
	if q.raw == nil {
		return nil
	}
	return q.raw.Sender
}

// Answer responds to the inline query with the given results.
func (q Query) Answer(results tele.Results) error {
	return q.ctx.Answer(&tele.QueryResponse{Results: results})
}

// Respond sends a fully specified query response.
func (q Query) Respond(resp *tele.QueryResponse) error {
	return q.ctx.Answer(resp)
}

// Context exposes the underlying telebot context for advanced use.
func (q Query) Context() tele.Context {
	return q.ctx
}
