package interpreter

import (
	"testing"

	"github.com/AlexZinkM/voice-wallet/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestInterpretIdle(t *testing.T) {
	tests := []struct {
		transcript string
		want       model.IntentKind
	}{
		{"What is my Balance", model.IntentBalance},
		{"read my history", model.IntentHistory},
		{"send 20 to Alice", model.IntentSendInit},
		{"Transfer money", model.IntentSendInit},
		{"add contact", model.IntentAddContactInit},
		{"whitelist someone", model.IntentAddContactInit},
		{"what is my address", model.IntentCheckAddress},
		{"who am I", model.IntentCheckAddress},
		{"reveal key", model.IntentRevealKeyInit},
		{"show my private key", model.IntentRevealKeyInit},
		{"balance history", model.IntentBalance},
		{"sing a song", model.IntentUnrecognized},
		{"", model.IntentUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			got := Interpret(tt.transcript, model.StateIdle)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestInterpretUnrecognizedKeepsText(t *testing.T) {
	got := Interpret("  Sing A Song ", model.StateIdle)
	assert.Equal(t, model.IntentUnrecognized, got.Kind)
	assert.Equal(t, "sing a song", got.Text)
}

func TestCancelOverridesEveryState(t *testing.T) {
	states := []model.FlowState{
		model.StateIdle, model.StateSendRecipient, model.StateSendAmount, model.StateSendConfirm,
		model.StateAddContactName, model.StateAddContactConfirm, model.StateWalletCreation,
		model.StateWalletImport, model.StateWalletReveal,
	}
	for _, state := range states {
		assert.Equal(t, model.IntentCancel, Interpret("Cancel that", state).Kind, state)
		assert.Equal(t, model.IntentCancel, Interpret("please STOP", state).Kind, state)
	}
}

func TestInterpretFreeText(t *testing.T) {
	got := Interpret("Alice", model.StateSendRecipient)
	assert.Equal(t, model.IntentFreeText, got.Kind)
	assert.Equal(t, "alice", got.Text)

	got = Interpret("send balance to bob", model.StateAddContactName)
	assert.Equal(t, model.IntentFreeText, got.Kind, "keywords are not matched while collecting a name")
	assert.Equal(t, "send balance to bob", got.Text)

	assert.Equal(t, model.IntentUnrecognized, Interpret("   ", model.StateSendRecipient).Kind)
}

func TestInterpretAmount(t *testing.T) {
	got := Interpret("twenty, I mean 20 dollars then 30", model.StateSendAmount)
	assert.Equal(t, model.IntentAmount, got.Kind)
	assert.Equal(t, uint64(20), got.Amount)

	got = Interpret("no digits here", model.StateSendAmount)
	assert.Equal(t, model.IntentRetry, got.Kind)

	got = Interpret("99999999999999999999999", model.StateSendAmount)
	assert.Equal(t, model.IntentRetry, got.Kind, "overflowing amounts are re-prompted")
}

func TestInterpretConfirmStates(t *testing.T) {
	for _, state := range []model.FlowState{model.StateSendConfirm, model.StateAddContactConfirm, model.StateWalletReveal} {
		assert.Equal(t, model.IntentAffirm, Interpret("Yes please", state).Kind)
		assert.Equal(t, model.IntentDeny, Interpret("no", state).Kind)
		assert.Equal(t, model.IntentUnrecognized, Interpret("maybe", state).Kind)
	}
}

func TestInterpretImportIsRoutedRaw(t *testing.T) {
	got := Interpret("Apple", model.StateWalletImport)
	assert.Equal(t, model.IntentImportReply, got.Kind)
	assert.Equal(t, "apple", got.Text)
}

func TestClassifyConfirmation(t *testing.T) {
	assert.Equal(t, ConfirmationAccepted, ClassifyConfirmation("yes"))
	assert.Equal(t, ConfirmationAccepted, ClassifyConfirmation("That's correct"))
	assert.Equal(t, ConfirmationRejected, ClassifyConfirmation("no"))
	assert.Equal(t, ConfirmationRejected, ClassifyConfirmation("spell it"))
	assert.Equal(t, ConfirmationRejected, ClassifyConfirmation("incorrect"))
	assert.Equal(t, ConfirmationUnclear, ClassifyConfirmation("banana"))

	for _, reply := range []string{"yes i know", "yes now", "yes, not bad", "yes nothing wrong"} {
		assert.Equal(t, ConfirmationAccepted, ClassifyConfirmation(reply), reply)
	}
	assert.Equal(t, ConfirmationRejected, ClassifyConfirmation("not right"))
	assert.Equal(t, ConfirmationAccepted, ClassifyConfirmation("yeah, right"))
}

func TestSpelledWord(t *testing.T) {
	assert.Equal(t, "apple", SpelledWord("a p p l e"))
	assert.Equal(t, "apple", SpelledWord("A. P. P. L. E."))
	assert.Equal(t, "", SpelledWord(" . . "))
}

func TestCandidateWord(t *testing.T) {
	assert.Equal(t, "apple", CandidateWord("Apple. banana"))
	assert.Equal(t, "", CandidateWord("   "))
}

func TestFirstNumber(t *testing.T) {
	n, ok := FirstNumber("send 015 now")
	assert.True(t, ok)
	assert.Equal(t, uint64(15), n)

	_, ok = FirstNumber("none")
	assert.False(t, ok)
}
