package model

// TranscriptRequest represents request for POST /dialogue/transcript
type TranscriptRequest struct {
	Text string `json:"text" binding:"required"`
}

// PointerRequest represents request for POST /gesture/pointer
type PointerRequest struct {
	Event string `json:"event" binding:"required"` // "down" or "up"
}

// ButtonRequest represents request for POST /dialogue/button
type ButtonRequest struct {
	Button Button `json:"button" binding:"required"`
}

// KeyRequest represents request for POST /dialogue/key
type KeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// AcceptedResponse is returned when an input was queued for the dialogue engine
type AcceptedResponse struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// StateResponse represents response for GET /dialogue/state
type StateResponse struct {
	State         FlowState   `json:"state"`
	Data          SessionData `json:"data"`
	ImportedWords int         `json:"importedWords"`
	SpellingMode  bool        `json:"spellingMode"`
	RevealedWords int         `json:"revealedWords"`
	HasIdentity   bool        `json:"hasIdentity"`
	Listening     bool        `json:"listening"`
	Busy          bool        `json:"busy"`
}

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	USDC uint64 `json:"usdc"`
	Fiat string `json:"fiat,omitempty"`
	Rate string `json:"rate,omitempty"`
}

// AddressResponse represents response for GET /wallet/address
type AddressResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR,omitempty"` // base64 PNG
}

// ContactsResponse represents response for GET /contacts
type ContactsResponse struct {
	Contacts []string `json:"contacts"`
}
