package model

// IntentKind is the coarse classification of a spoken transcript
type IntentKind int

const (
	IntentUnrecognized IntentKind = iota
	IntentBalance
	IntentHistory
	IntentSendInit
	IntentAddContactInit
	IntentCheckAddress
	IntentRevealKeyInit
	IntentCancel
	IntentAffirm
	IntentDeny
	IntentFreeText
	IntentAmount
	IntentRetry
	IntentImportReply
)

var intentNames = map[IntentKind]string{
	IntentUnrecognized:   "unrecognized",
	IntentBalance:        "balance",
	IntentHistory:        "history",
	IntentSendInit:       "send_init",
	IntentAddContactInit: "add_contact_init",
	IntentCheckAddress:   "check_address",
	IntentRevealKeyInit:  "reveal_key_init",
	IntentCancel:         "cancel",
	IntentAffirm:         "affirm",
	IntentDeny:           "deny",
	IntentFreeText:       "free_text",
	IntentAmount:         "amount",
	IntentRetry:          "retry",
	IntentImportReply:    "import_reply",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is a transcript normalized relative to the current FlowState.
// Text carries the transcript for free text, import replies and unrecognized input.
type Intent struct {
	Kind   IntentKind
	Text   string
	Amount uint64
}

// Gesture is a classified pointer interaction
type Gesture string

const (
	GestureSingleTap Gesture = "single_tap"
	GestureDoubleTap Gesture = "double_tap"
	GestureTripleTap Gesture = "triple_tap"
	GestureLongPress Gesture = "long_press"
)

// Button is an on-screen control of the accessible surface
type Button string

const (
	ButtonBalance      Button = "balance"
	ButtonHistory      Button = "history"
	ButtonAddContact   Button = "add_contact"
	ButtonWhitelist    Button = "whitelist"
	ButtonSend         Button = "send"
	ButtonCreateWallet Button = "create_wallet"
	ButtonImportWallet Button = "import_wallet"
	ButtonListen       Button = "listen"
)

// Valid reports whether b is a known button
func (b Button) Valid() bool {
	switch b {
	case ButtonBalance, ButtonHistory, ButtonAddContact, ButtonWhitelist,
		ButtonSend, ButtonCreateWallet, ButtonImportWallet, ButtonListen:
		return true
	}
	return false
}
