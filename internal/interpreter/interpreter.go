// Package interpreter classifies free-form transcripts into dialogue intents.
//
// Matching is deliberately simple: case-insensitive substring lookups against a fixed keyword
// table, evaluated in order, first match wins. It is not natural language understanding.
package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AlexZinkM/voice-wallet/internal/model"
)

type command struct {
	keywords []string
	kind     model.IntentKind
}

var (
	cancelKeywords = []string{"cancel", "stop"}

	idleCommands = []command{
		{keywords: []string{"balance"}, kind: model.IntentBalance},
		{keywords: []string{"history"}, kind: model.IntentHistory},
		{keywords: []string{"send", "transfer"}, kind: model.IntentSendInit},
		{keywords: []string{"add contact", "whitelist"}, kind: model.IntentAddContactInit},
		{keywords: []string{"address", "who am i"}, kind: model.IntentCheckAddress},
		{keywords: []string{"reveal key", "private key"}, kind: model.IntentRevealKeyInit},
	}

	digitRun = regexp.MustCompile(`\d+`)
)

// Interpret maps a transcript to an Intent for the given state. It never fails:
// anything it cannot place becomes IntentUnrecognized carrying the original text.
func Interpret(transcript string, state model.FlowState) model.Intent {
	text := normalize(transcript)

	if containsAny(text, cancelKeywords) {
		return model.Intent{Kind: model.IntentCancel, Text: text}
	}

	switch state {
	case model.StateIdle:
		for _, cmd := range idleCommands {
			if containsAny(text, cmd.keywords) {
				return model.Intent{Kind: cmd.kind, Text: text}
			}
		}
		return unrecognized(text)

	case model.StateSendRecipient, model.StateAddContactName:
		if text == "" {
			return unrecognized(text)
		}
		return model.Intent{Kind: model.IntentFreeText, Text: text}

	case model.StateSendAmount:
		amount, ok := FirstNumber(text)
		if !ok {
			return model.Intent{Kind: model.IntentRetry, Text: text}
		}
		return model.Intent{Kind: model.IntentAmount, Text: text, Amount: amount}

	case model.StateSendConfirm, model.StateAddContactConfirm, model.StateWalletReveal:
		switch {
		case strings.Contains(text, "yes"):
			return model.Intent{Kind: model.IntentAffirm, Text: text}
		case strings.Contains(text, "no"):
			return model.Intent{Kind: model.IntentDeny, Text: text}
		}
		return unrecognized(text)

	case model.StateWalletImport:
		return model.Intent{Kind: model.IntentImportReply, Text: text}
	}

	return unrecognized(text)
}

// FirstNumber extracts the first contiguous run of digits
func FirstNumber(text string) (uint64, bool) {
	run := digitRun.FindString(text)
	if run == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(run, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func unrecognized(text string) model.Intent {
	return model.Intent{Kind: model.IntentUnrecognized, Text: text}
}

func normalize(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
