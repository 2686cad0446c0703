package dialogue

import "github.com/AlexZinkM/voice-wallet/internal/model"

// InputKind tells Step which fields of an Input are meaningful
type InputKind int

const (
	InputTranscript InputKind = iota
	InputGesture
	InputKey
	InputButton

	// Completions of signer work started by an effect
	InputWalletGenerated
	InputWalletImported
	InputCreationSaved
	InputSecretRevealed

	// handled by the Engine itself, never reaches Step
	inputListenFailed
)

var inputNames = map[InputKind]string{
	InputTranscript:      "transcript",
	InputGesture:         "gesture",
	InputKey:             "key",
	InputButton:          "button",
	InputWalletGenerated: "wallet_generated",
	InputWalletImported:  "wallet_imported",
	InputCreationSaved:   "creation_saved",
	InputSecretRevealed:  "secret_revealed",
	inputListenFailed:    "listen_failed",
}

func (k InputKind) String() string {
	if name, ok := inputNames[k]; ok {
		return name
	}
	return "unknown"
}

// Input is one event fed to the dialogue: a transcript, a trigger, or a signer completion
type Input struct {
	Kind     InputKind
	Text     string
	Gesture  model.Gesture
	Key      rune
	Button   model.Button
	Words    []string
	Identity model.IdentityHandle
	Failed   bool
	Err      error
}

func Transcript(text string) Input {
	return Input{Kind: InputTranscript, Text: text}
}

func GestureInput(g model.Gesture) Input {
	return Input{Kind: InputGesture, Gesture: g}
}

func KeyInput(r rune) Input {
	return Input{Kind: InputKey, Key: r}
}

func ButtonInput(b model.Button) Input {
	return Input{Kind: InputButton, Button: b}
}
