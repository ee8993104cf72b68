package alexa

import (
	"time"

	"studentenfutter/internal/domain"
)

// RequestEnvelope is the subset of the Alexa request body the skill reads.
// See https://developer.amazon.com/en-US/docs/alexa/custom-skills/request-and-response-json-reference.html
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Context Context `json:"context"`
	Request Request `json:"request"`
}

type Session struct {
	New         bool        `json:"new"`
	SessionID   string      `json:"sessionId"`
	Application Application `json:"application"`
}

type Context struct {
	System System `json:"System"`
}

type System struct {
	Application Application `json:"application"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Locale    string `json:"locale"`
	Intent    Intent `json:"intent"`
}

type Intent struct {
	Name string `json:"name"`
}

type ResponseEnvelope struct {
	Version  string   `json:"version"`
	Response Response `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

// ApplicationID prefers the session copy and falls back to the context one,
// which is the only copy present on out-of-session requests.
func (e *RequestEnvelope) ApplicationID() string {
	if e.Session.Application.ApplicationID != "" {
		return e.Session.Application.ApplicationID
	}
	return e.Context.System.Application.ApplicationID
}

func (e *RequestEnvelope) ToDomain() domain.Request {
	ts, _ := time.Parse(time.RFC3339, e.Request.Timestamp)

	return domain.Request{
		ID:            e.Request.RequestID,
		Type:          domain.RequestType(e.Request.Type),
		Intent:        domain.Intent(e.Request.Intent.Name),
		Locale:        e.Request.Locale,
		ApplicationID: e.ApplicationID(),
		NewSession:    e.Session.New,
		Timestamp:     ts,
	}
}

func FromDomain(resp domain.Response) ResponseEnvelope {
	env := ResponseEnvelope{
		Version: "1.0",
		Response: Response{
			ShouldEndSession: resp.EndSession,
		},
	}

	if resp.Speech != "" {
		env.Response.OutputSpeech = &OutputSpeech{Type: "PlainText", Text: resp.Speech}
	}
	if resp.Reprompt != "" {
		env.Response.Reprompt = &Reprompt{
			OutputSpeech: OutputSpeech{Type: "PlainText", Text: resp.Reprompt},
		}
	}

	return env
}
