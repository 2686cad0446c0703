package model

// FlowState is the discrete mode of the voice dialogue
type FlowState string

const (
	StateIdle              FlowState = "IDLE"
	StateSendRecipient     FlowState = "SEND_RECIPIENT"
	StateSendAmount        FlowState = "SEND_AMOUNT"
	StateSendConfirm       FlowState = "SEND_CONFIRM"
	StateAddContactName    FlowState = "ADD_CONTACT_NAME"
	StateAddContactConfirm FlowState = "ADD_CONTACT_CONFIRM"
	StateWalletCreation    FlowState = "WALLET_CREATION"
	StateWalletImport      FlowState = "WALLET_IMPORT"
	StateWalletReveal      FlowState = "WALLET_REVEAL"
)

const (
	// SeedWordCount is the length of every recovery phrase handled by the dialogue
	SeedWordCount = 12

	// CreationFinalizing is the revealed-word counter value latched once saving has started,
	// so an extra tap cannot schedule a second finalize
	CreationFinalizing = SeedWordCount + 1
)

// IdentityHandle is an opaque reference to key material owned by the signer
type IdentityHandle string

// SessionData holds the scratch fields of one send or add-contact flow
type SessionData struct {
	Recipient   string `json:"recipient,omitempty"`
	Amount      uint64 `json:"amount,omitempty"`
	ContactName string `json:"contactName,omitempty"`
}

// ImportSession tracks the spoken recovery phrase while in StateWalletImport.
// A word only reaches CollectedWords after an explicit confirmation.
type ImportSession struct {
	CollectedWords []string `json:"-"`
	PendingWord    string   `json:"-"`
	SpellingMode   bool     `json:"spellingMode"`
}

// NextWordNumber returns the 1-based position of the word being collected
func (s ImportSession) NextWordNumber() int {
	return len(s.CollectedWords) + 1
}

// CreationSession holds a freshly generated phrase while it is read out word by word
type CreationSession struct {
	SeedWords     []string       `json:"-"`
	RevealedCount int            `json:"revealedCount"`
	Pending       IdentityHandle `json:"-"`
}

// Session is the complete dialogue state. Transitions never mutate a Session in place:
// they return a new value, so slices are cloned before they are extended.
type Session struct {
	State    FlowState       `json:"state"`
	Data     SessionData     `json:"data"`
	Import   ImportSession   `json:"import"`
	Creation CreationSession `json:"creation"`
	Identity IdentityHandle  `json:"-"`
	Retries  int             `json:"retries"`
}

// NewSession returns an idle session with no identity loaded
func NewSession() Session {
	return Session{State: StateIdle}
}

// Reset returns to StateIdle and drops every flow-scoped field. The loaded identity survives.
func (s Session) Reset() Session {
	return Session{State: StateIdle, Identity: s.Identity}
}

// HasIdentity reports whether a wallet identity is loaded
func (s Session) HasIdentity() bool {
	return s.Identity != ""
}
