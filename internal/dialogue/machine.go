// Package dialogue implements the wallet conversation: a pure transition function over
// model.Session and the Engine that runs it against speech, haptics and the wallet backend.
package dialogue

import (
	"unicode"

	"github.com/AlexZinkM/voice-wallet/internal/interpreter"
	"github.com/AlexZinkM/voice-wallet/internal/model"
)

// Machine computes dialogue transitions. It holds configuration only, never session state.
type Machine struct {
	// RetryLimit bounds consecutive re-prompts before a forced reset; 0 means unlimited
	RetryLimit int
}

// Step returns the session that follows in and the effects to run, in order.
// The input session is never modified.
func (m Machine) Step(s model.Session, in Input) (model.Session, []model.Effect) {
	switch in.Kind {
	case InputTranscript:
		return m.onTranscript(s, in.Text)
	case InputGesture:
		return m.onGesture(s, in.Gesture)
	case InputKey:
		return m.onKey(s, in.Key)
	case InputButton:
		return m.onButton(s, in.Button)
	case InputWalletGenerated:
		return onWalletGenerated(s, in)
	case InputWalletImported:
		return onWalletImported(s, in)
	case InputCreationSaved:
		return onCreationSaved(s, in)
	case InputSecretRevealed:
		return onSecretRevealed(s, in)
	}
	return s, nil
}

func (m Machine) onTranscript(s model.Session, text string) (model.Session, []model.Effect) {
	intent := interpreter.Interpret(text, s.State)
	if intent.Kind == model.IntentCancel {
		return s.Reset(), []model.Effect{model.Speak(msgAborting)}
	}

	switch s.State {
	case model.StateIdle:
		return m.onIdleIntent(s, intent)

	case model.StateSendRecipient:
		if intent.Kind != model.IntentFreeText {
			return m.retry(s, model.Speak(msgRecipient), model.Listen())
		}
		next := enter(s, model.StateSendAmount)
		next.Data.Recipient = intent.Text
		return next, []model.Effect{model.Speak(amountFor(intent.Text)), model.Listen()}

	case model.StateSendAmount:
		if intent.Kind != model.IntentAmount {
			return m.retry(s, model.Speak(msgRepeatAmount), model.Listen())
		}
		next := enter(s, model.StateSendConfirm)
		next.Data.Amount = intent.Amount
		return next, []model.Effect{model.Speak(confirmSend(intent.Amount, s.Data.Recipient)), model.Listen()}

	case model.StateSendConfirm:
		switch intent.Kind {
		case model.IntentAffirm:
			commit := model.Effect{
				Kind:      model.EffectCommitSend,
				Recipient: s.Data.Recipient,
				Amount:    s.Data.Amount,
				Identity:  s.Identity,
			}
			return s.Reset(), []model.Effect{commit}
		case model.IntentDeny:
			return s.Reset(), []model.Effect{model.Speak(msgCancelled)}
		}
		return m.retry(s, model.Speak(msgYesOrNo), model.Listen())

	case model.StateAddContactName:
		if intent.Kind != model.IntentFreeText {
			return m.retry(s, model.Speak(msgName), model.Listen())
		}
		next := enter(s, model.StateAddContactConfirm)
		next.Data.ContactName = intent.Text
		return next, []model.Effect{model.Speak(confirmContact(intent.Text)), model.Listen()}

	case model.StateAddContactConfirm:
		switch intent.Kind {
		case model.IntentAffirm:
			return s.Reset(), []model.Effect{{Kind: model.EffectCommitContact, Name: s.Data.ContactName}}
		case model.IntentDeny:
			return s.Reset(), []model.Effect{model.Speak(msgCancelled)}
		}
		return m.retry(s, model.Speak(msgYesOrNo), model.Listen())

	case model.StateWalletReveal:
		if intent.Kind == model.IntentAffirm {
			return s.Reset(), []model.Effect{{Kind: model.EffectRevealSecret, Identity: s.Identity}}
		}
		// anything but yes keeps the microphone open
		return s, []model.Effect{model.Listen()}

	case model.StateWalletImport:
		return m.onImportReply(s, intent.Text)
	}

	// WalletCreation is driven by taps only
	return s, nil
}

func (m Machine) onIdleIntent(s model.Session, intent model.Intent) (model.Session, []model.Effect) {
	switch intent.Kind {
	case model.IntentBalance:
		return settle(s), []model.Effect{{Kind: model.EffectSpeakBalance}}
	case model.IntentHistory:
		return settle(s), []model.Effect{{Kind: model.EffectSpeakHistory}}
	case model.IntentSendInit:
		return sendInit(s)
	case model.IntentAddContactInit:
		return addContactInit(s)
	case model.IntentCheckAddress:
		return settle(s), []model.Effect{{Kind: model.EffectSpeakAddress, Identity: s.Identity}}
	case model.IntentRevealKeyInit:
		if !s.HasIdentity() {
			return settle(s), []model.Effect{model.Speak(msgNoWallet), model.Buzz(model.HapticError)}
		}
		return enter(s, model.StateWalletReveal), []model.Effect{
			model.Buzz(model.HapticWarning),
			model.Speak(msgRevealWarning),
			model.Listen(),
		}
	}
	return m.retry(s, model.Speak(notRecognized(intent.Text)), model.Listen())
}

// onImportReply runs one turn of the seed phrase import: confirm a pending word,
// take a spelled word, or take a fresh candidate.
func (m Machine) onImportReply(s model.Session, text string) (model.Session, []model.Effect) {
	imp := s.Import
	if len(imp.CollectedWords) >= model.SeedWordCount {
		// phrase complete, the signer result is on its way
		return s, nil
	}
	number := imp.NextWordNumber()

	switch {
	case imp.PendingWord != "":
		switch interpreter.ClassifyConfirmation(text) {
		case interpreter.ConfirmationAccepted:
			next := s
			next.Retries = 0
			next.Import = model.ImportSession{
				CollectedWords: append(append([]string(nil), imp.CollectedWords...), imp.PendingWord),
			}
			if len(next.Import.CollectedWords) < model.SeedWordCount {
				return next, []model.Effect{model.Speak(sayWord(number + 1)), model.Listen()}
			}
			words := append([]string(nil), next.Import.CollectedWords...)
			return next, []model.Effect{{Kind: model.EffectImportWallet, Words: words}}

		case interpreter.ConfirmationRejected:
			next := s
			next.Retries = 0
			next.Import.PendingWord = ""
			next.Import.SpellingMode = true
			return next, []model.Effect{model.Speak(msgSpell), model.Listen()}
		}
		return m.retry(s, model.Speak(confirmWord(number, imp.PendingWord)), model.Listen())

	case imp.SpellingMode:
		word := interpreter.SpelledWord(text)
		if word == "" {
			return m.retry(s, model.Speak(msgSpell), model.Listen())
		}
		next := s
		next.Retries = 0
		next.Import.PendingWord = word
		next.Import.SpellingMode = false
		return next, []model.Effect{model.Speak(confirmWord(number, word)), model.Listen()}
	}

	word := interpreter.CandidateWord(text)
	if word == "" {
		return m.retry(s, model.Speak(sayWord(number)), model.Listen())
	}
	next := s
	next.Retries = 0
	next.Import.PendingWord = word
	return next, []model.Effect{model.Speak(confirmWord(number, word)), model.Listen()}
}

func (m Machine) onGesture(s model.Session, g model.Gesture) (model.Session, []model.Effect) {
	switch s.State {
	case model.StateIdle:
		switch g {
		case model.GestureSingleTap:
			return s, []model.Effect{model.Buzz(model.HapticClick), {Kind: model.EffectSpeakBalance}}
		case model.GestureDoubleTap:
			return s, []model.Effect{model.Buzz(model.HapticSuccess), {Kind: model.EffectSpeakHistory}}
		case model.GestureTripleTap, model.GestureLongPress:
			next, effects := sendInit(s)
			return next, append([]model.Effect{model.Buzz(model.HapticWarning)}, effects...)
		}
	case model.StateWalletCreation:
		if g == model.GestureSingleTap {
			return advanceCreation(s)
		}
	}
	return s, nil
}

func (m Machine) onKey(s model.Session, key rune) (model.Session, []model.Effect) {
	if s.State != model.StateIdle {
		return s, nil
	}
	click := model.Buzz(model.HapticClick)
	switch unicode.ToLower(key) {
	case 'b':
		return s, []model.Effect{click, {Kind: model.EffectSpeakBalance}}
	case 'h':
		return s, []model.Effect{click, {Kind: model.EffectSpeakHistory}}
	case 's':
		next, effects := sendInit(s)
		return next, append([]model.Effect{click}, effects...)
	case 'a':
		next, effects := addContactInit(s)
		return next, append([]model.Effect{click}, effects...)
	case 'w':
		return s, []model.Effect{click, {Kind: model.EffectSpeakContacts}}
	}
	return s, nil
}

func (m Machine) onButton(s model.Session, b model.Button) (model.Session, []model.Effect) {
	if b == model.ButtonListen {
		return s, []model.Effect{model.Listen()}
	}
	if s.State != model.StateIdle {
		return s, nil
	}
	switch b {
	case model.ButtonBalance:
		return s, []model.Effect{{Kind: model.EffectSpeakBalance}}
	case model.ButtonHistory:
		return s, []model.Effect{{Kind: model.EffectSpeakHistory}}
	case model.ButtonWhitelist:
		return s, []model.Effect{{Kind: model.EffectSpeakContacts}}
	case model.ButtonSend:
		return sendInit(s)
	case model.ButtonAddContact:
		return addContactInit(s)
	case model.ButtonCreateWallet:
		return s, []model.Effect{{Kind: model.EffectGenerateWallet}}
	case model.ButtonImportWallet:
		return enter(s, model.StateWalletImport), []model.Effect{
			model.Speak(msgImportStarted),
			model.Speak(sayWord(1)),
			model.Listen(),
		}
	}
	return s, nil
}

func onWalletGenerated(s model.Session, in Input) (model.Session, []model.Effect) {
	if in.Failed || len(in.Words) != model.SeedWordCount {
		return s.Reset(), []model.Effect{model.Speak(msgCreationFailed), model.Buzz(model.HapticError)}
	}
	next := enter(s, model.StateWalletCreation)
	next.Creation = model.CreationSession{
		SeedWords: append([]string(nil), in.Words...),
		Pending:   in.Identity,
	}
	return next, []model.Effect{model.Buzz(model.HapticSuccess), model.Speak(msgCreationStarted)}
}

// advanceCreation reads out the next seed word. The tap after the last word starts saving
// and latches the counter so later taps cannot schedule a second finalize.
func advanceCreation(s model.Session) (model.Session, []model.Effect) {
	c := s.Creation
	switch {
	case c.RevealedCount < model.SeedWordCount:
		next := s
		next.Creation.RevealedCount++
		word := c.SeedWords[c.RevealedCount]
		return next, []model.Effect{model.Buzz(model.HapticClick), model.Speak(seedWord(c.RevealedCount+1, word))}

	case c.RevealedCount == model.SeedWordCount:
		next := s
		next.Creation.RevealedCount = model.CreationFinalizing
		return next, []model.Effect{
			model.Speak(msgSaving),
			{Kind: model.EffectFinalizeCreation, Identity: c.Pending},
		}
	}
	return s, nil
}

func onCreationSaved(s model.Session, in Input) (model.Session, []model.Effect) {
	next := s.Reset()
	next.Identity = in.Identity
	if in.Failed {
		return next, []model.Effect{model.Speak(msgSaveFailed), model.Buzz(model.HapticWarning)}
	}
	return next, []model.Effect{model.Speak(msgSaved), model.Buzz(model.HapticSuccess)}
}

func onWalletImported(s model.Session, in Input) (model.Session, []model.Effect) {
	next := s.Reset()
	if in.Failed {
		return next, []model.Effect{model.Speak(msgInvalidPhrase), model.Buzz(model.HapticError)}
	}
	next.Identity = in.Identity
	return next, []model.Effect{model.Speak(msgImported), model.Buzz(model.HapticSuccess)}
}

func onSecretRevealed(s model.Session, in Input) (model.Session, []model.Effect) {
	if in.Failed {
		return s, []model.Effect{model.Speak(msgRevealFailed), model.Buzz(model.HapticError)}
	}
	return s, []model.Effect{{Kind: model.EffectSpeak, Text: privateKey(in.Text), Sensitive: true}}
}

// retry re-prompts without leaving the current state, or resets once the limit is exceeded
func (m Machine) retry(s model.Session, effects ...model.Effect) (model.Session, []model.Effect) {
	next := s
	next.Retries++
	if m.RetryLimit > 0 && next.Retries > m.RetryLimit {
		return s.Reset(), []model.Effect{model.Speak(msgTooManyAttempts), model.Buzz(model.HapticError)}
	}
	return next, effects
}

func sendInit(s model.Session) (model.Session, []model.Effect) {
	return enter(s, model.StateSendRecipient), []model.Effect{model.Speak(msgRecipient), model.Listen()}
}

func addContactInit(s model.Session) (model.Session, []model.Effect) {
	return enter(s, model.StateAddContactName), []model.Effect{model.Speak(msgName), model.Listen()}
}

// enter moves to state with the retry counter cleared
func enter(s model.Session, state model.FlowState) model.Session {
	s.State = state
	s.Retries = 0
	return s
}

func settle(s model.Session) model.Session {
	s.Retries = 0
	return s
}
