package types

import (
	"encoding/json"
	"strings"
)

// GenerateRequest is the JSON body of POST /generate_article
type GenerateRequest struct {
	Query string `json:"query" yaml:"query"`
}

// Article is the result of a successful generation
type Article struct {
	Body string `json:"articolo_generato" yaml:"articolo_generato"`
	URL  string `json:"url_utilizzata" yaml:"url_utilizzata"`
}

// ErrorPayload is the body returned by the service on non-2xx responses.
// Detail is kept raw because FastAPI sends either a string or a list of
// validation errors.
type ErrorPayload struct {
	Detail json.RawMessage `json:"detail,omitempty"`
}

// validationDetail is one entry of a FastAPI validation error list
type validationDetail struct {
	Loc  []interface{} `json:"loc,omitempty"`
	Msg  string        `json:"msg"`
	Type string        `json:"type,omitempty"`
}

// Message extracts a human-readable message from Detail.
// Returns "" when the detail is absent or has an unknown shape.
func (p ErrorPayload) Message() string {
	if len(p.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(p.Detail, &text); err == nil {
		return text
	}

	var list []validationDetail
	if err := json.Unmarshal(p.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
