package domain

import "time"

type RequestType string

const (
	RequestTypeLaunch       RequestType = "LaunchRequest"
	RequestTypeIntent       RequestType = "IntentRequest"
	RequestTypeSessionEnded RequestType = "SessionEndedRequest"
)

type Intent string

const (
	IntentTodaysLunch Intent = "TodaysLunchIntent"
	IntentHelp        Intent = "AMAZON.HelpIntent"
	IntentCancel      Intent = "AMAZON.CancelIntent"
	IntentStop        Intent = "AMAZON.StopIntent"
)

// Request is a voice-platform invocation after the envelope has been
// unwrapped.
type Request struct {
	ID            string
	Type          RequestType
	Intent        Intent
	Locale        string
	ApplicationID string
	NewSession    bool
	Timestamp     time.Time
}

// Name is the handler key: the intent name for intent requests, the request
// type otherwise.
func (r Request) Name() string {
	if r.Type == RequestTypeIntent {
		return string(r.Intent)
	}
	return string(r.Type)
}

// Response is what gets spoken back. A "tell" ends the session, an "ask"
// carries a reprompt and keeps it open.
type Response struct {
	Speech     string
	Reprompt   string
	EndSession bool
}

func Tell(speech string) Response {
	return Response{Speech: speech, EndSession: true}
}

func Ask(speech, reprompt string) Response {
	return Response{Speech: speech, Reprompt: reprompt}
}

type Outcome string

const (
	OutcomeServed      Outcome = "served"
	OutcomeClosed      Outcome = "closed"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeStatic      Outcome = "static"
)

// Invocation summarises one handled request for history and events.
type Invocation struct {
	RequestID string
	Locale    string
	Name      string
	Outcome   Outcome
	DishCount int
	Error     string
	HandledAt time.Time
}
