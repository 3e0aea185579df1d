// Package dispatch delivers due review reminders. A dispatch pass drains
// the due set, claims each reminder with a conditional mark-sent, and only
// notifies for reminders it actually claimed, so running several dispatcher
// instances against the same database never double-delivers.
package dispatch
