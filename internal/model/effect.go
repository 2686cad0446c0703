package model

// HapticKind names a vibration pattern
type HapticKind string

const (
	HapticClick   HapticKind = "click"
	HapticSuccess HapticKind = "success"
	HapticWarning HapticKind = "warning"
	HapticError   HapticKind = "error"
	HapticHover   HapticKind = "hover"
	HapticPulse   HapticKind = "pulse"
)

// EffectKind names a side effect requested by a dialogue transition
type EffectKind int

const (
	EffectSpeak EffectKind = iota
	EffectListen
	EffectHaptic
	EffectSpeakBalance
	EffectSpeakHistory
	EffectSpeakContacts
	EffectSpeakAddress
	EffectCommitSend
	EffectCommitContact
	EffectGenerateWallet
	EffectImportWallet
	EffectRevealSecret
	EffectFinalizeCreation
)

var effectNames = map[EffectKind]string{
	EffectSpeak:            "speak",
	EffectListen:           "listen",
	EffectHaptic:           "haptic",
	EffectSpeakBalance:     "speak_balance",
	EffectSpeakHistory:     "speak_history",
	EffectSpeakContacts:    "speak_contacts",
	EffectSpeakAddress:     "speak_address",
	EffectCommitSend:       "commit_send",
	EffectCommitContact:    "commit_contact",
	EffectGenerateWallet:   "generate_wallet",
	EffectImportWallet:     "import_wallet",
	EffectRevealSecret:     "reveal_secret",
	EffectFinalizeCreation: "finalize_creation",
}

func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return "unknown"
}

// Effect is one side effect emitted by a transition. Only the fields relevant to Kind are set.
// Sensitive speech carries secret material and must never be logged.
type Effect struct {
	Kind      EffectKind
	Text      string
	Sensitive bool
	Haptic    HapticKind
	Recipient string
	Amount    uint64
	Name      string
	Words     []string
	Identity  IdentityHandle
}

func Speak(text string) Effect {
	return Effect{Kind: EffectSpeak, Text: text}
}

func Listen() Effect {
	return Effect{Kind: EffectListen}
}

func Buzz(kind HapticKind) Effect {
	return Effect{Kind: EffectHaptic, Haptic: kind}
}
