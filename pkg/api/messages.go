// Package api defines the LedgerService wire messages and the Connect
// plumbing to serve and call it. Messages travel as JSON.
package api

// SessionTokenHeader carries a freshly issued session token on every
// successful authenticated response. Clients replace their token with it;
// a token left unrefreshed expires with the session's idle timeout.
const SessionTokenHeader = "Quicksplit-Session-Token"

// ItemRow is one entered item as displayed.
type ItemRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// View is the rendered screen returned by every screen-changing call.
// Amounts are formatted in the server's currency and locale.
type View struct {
	Total       string    `json:"total"`
	Items       []ItemRow `json:"items"`
	People      int       `json:"people"`
	SplitAmount string    `json:"split_amount"`
	Tiles       []string  `json:"tiles"`
	NameField   string    `json:"name_field"`
	PriceField  string    `json:"price_field"`
}

type StartSessionRequest struct{}

type StartSessionResponse struct {
	// Token identifies the session on every later call, sent as
	// "Authorization: Bearer <token>".
	Token string `json:"token"`
	View  View   `json:"view"`
}

type GetScreenRequest struct{}

// ScreenResponse carries the screen after a call.
type ScreenResponse struct {
	View View `json:"view"`
}

// SetFieldsRequest updates the input fields. Nil fields are left as they are.
type SetFieldsRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
}

// SubmitItemRequest optionally updates the input fields, then submits them.
type SubmitItemRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
}

type SubmitItemResponse struct {
	// Accepted is false when the entry was ignored. A rejected entry is
	// not an error.
	Accepted bool `json:"accepted"`
	View     View `json:"view"`
}

type IncrementPeopleRequest struct{}

type DecrementPeopleRequest struct{}

type SetPeopleRequest struct {
	Count int `json:"count"`
}

type EndSessionRequest struct{}

type EndSessionResponse struct{}
