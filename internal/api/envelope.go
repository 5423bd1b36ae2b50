package api

import (
	"encoding/json"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/output"
)

// The backend wraps every response body in {status, data}. The HTTP layer
// may answer 200 while the body status carries the real outcome, so the
// body status is checked on every decode. A non-2xx body status is an
// error regardless of the transport status.

type envelope struct {
	Status int             `json:"status"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// PageMeta carries the server-side pagination fields of a list response.
type PageMeta struct {
	Count        int  `json:"count"`
	NumPages     int  `json:"num_pages"`
	CurrentPage  int  `json:"current_page"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
	NextPage     int  `json:"next_page"`
	PreviousPage int  `json:"previous_page"`
}

// Page is one page of a list response.
type Page[T any] struct {
	Results []T
	Meta    PageMeta
}

// decodeEnvelope validates the wire envelope and unmarshals its data
// payload into v. Pass nil to check the status only.
func decodeEnvelope(resp *Response, v any) error {
	var env envelope
	if err := json.Unmarshal(resp.Data, &env); err != nil {
		return fmt.Errorf("malformed response envelope: %w", err)
	}
	if !output.IsSuccess(env.Status) {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("Request failed (status %d)", env.Status)
		}
		return output.ErrAPI(env.Status, msg)
	}
	if v == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("malformed response data: %w", err)
	}
	return nil
}

// decodeStatus checks a mutation response that carries no payload.
func decodeStatus(resp *Response) error {
	return decodeEnvelope(resp, nil)
}

// decodePage decodes a paginated list payload.
func decodePage[T any](resp *Response) (Page[T], error) {
	var payload struct {
		PageMeta
		Results []T `json:"results"`
	}
	if err := decodeEnvelope(resp, &payload); err != nil {
		return Page[T]{}, err
	}
	page := Page[T]{Results: payload.Results, Meta: payload.PageMeta}
	if page.Meta.CurrentPage == 0 {
		page.Meta.CurrentPage = 1
	}
	if page.Meta.Count == 0 {
		page.Meta.Count = len(page.Results)
	}
	if page.Meta.NumPages == 0 {
		page.Meta.NumPages = 1
	}
	return page, nil
}

// decodeNestedDetail decodes the double-nested detail payload used by the
// blog and marketing-plan endpoints: data.details.message.<recordKey>.
// Other resources return the record directly under data; this shape is
// preserved as a per-resource adapter rather than assumed uniform.
func decodeNestedDetail[T any](resp *Response, recordKey string) (T, error) {
	var record T
	var payload struct {
		Details struct {
			Message map[string]json.RawMessage `json:"message"`
		} `json:"details"`
	}
	if err := decodeEnvelope(resp, &payload); err != nil {
		return record, err
	}
	raw, ok := payload.Details.Message[recordKey]
	if !ok {
		return record, fmt.Errorf("detail response missing %q", recordKey)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("malformed %s detail: %w", recordKey, err)
	}
	return record, nil
}
