package dialogue

import "fmt"

const (
	msgAborting               = "Aborting."
	msgCancelled              = "Cancelled."
	msgRecipient              = "Recipient?"
	msgRepeatAmount           = "Repeat amount."
	msgName                   = "Name?"
	msgAdded                  = "Added."
	msgYesOrNo                = "Please say yes or no."
	msgTooManyAttempts        = "Too many attempts. Returning to main menu."
	msgNoHistory              = "No recent transactions."
	msgEmptyWhitelist         = "Whitelist is empty."
	msgNoWallet               = "No wallet loaded."
	msgRevealWarning          = "Warning. Your private key will be spoken aloud. Say yes to continue."
	msgRevealFailed           = "Could not reveal key."
	msgRecognitionUnavailable = "Voice recognition is not supported."
	msgInsufficientBalance    = "Insufficient balance."
	msgSendFailed             = "Transaction failed. Nothing was sent."
	msgContactFailed          = "Could not save contact."
	msgBalanceUnavailable     = "Balance unavailable."
	msgHistoryUnavailable     = "History unavailable."
	msgAddressUnavailable     = "Address unavailable."
	msgCreationStarted        = "New wallet created. Tap to hear each of the twelve words."
	msgCreationFailed         = "Could not create wallet."
	msgSaving                 = "Saving wallet."
	msgSaved                  = "Wallet saved."
	msgSaveFailed             = "Wallet ready, but it could not be saved."
	msgImportStarted          = "Import wallet."
	msgSpell                  = "Please spell the word letter by letter."
	msgInvalidPhrase          = "Invalid recovery phrase. Import cancelled."
	msgImported               = "Wallet imported."
)

func notRecognized(text string) string {
	return fmt.Sprintf("Command not recognized: %s", text)
}

func amountFor(recipient string) string {
	return fmt.Sprintf("Amount for %s?", recipient)
}

func confirmSend(amount uint64, recipient string) string {
	return fmt.Sprintf("Send %d to %s?", amount, recipient)
}

func sent(amount uint64) string {
	return fmt.Sprintf("Sent %d.", amount)
}

func confirmContact(name string) string {
	return fmt.Sprintf("Add %s?", name)
}

func sayWord(n int) string {
	return fmt.Sprintf("Say word %d.", n)
}

func confirmWord(n int, word string) string {
	return fmt.Sprintf("Word %d is %s. Is that correct?", n, word)
}

func seedWord(n int, word string) string {
	return fmt.Sprintf("Word %d: %s", n, word)
}

func privateKey(secret string) string {
	return fmt.Sprintf("Private key: %s", secret)
}
