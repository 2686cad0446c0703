package api

import (
	"net/http"

	"github.com/AlexZinkM/voice-wallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(dialogueHandler *handler.DialogueHandler, walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Dialogue endpoints
	mux.HandleFunc("/dialogue/transcript", dialogueHandler.Transcript)
	mux.HandleFunc("/dialogue/button", dialogueHandler.Button)
	mux.HandleFunc("/dialogue/key", dialogueHandler.Key)
	mux.HandleFunc("/dialogue/state", dialogueHandler.State)
	mux.HandleFunc("/gesture/pointer", dialogueHandler.Pointer)

	// Wallet endpoints
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/history", walletHandler.History)
	mux.HandleFunc("/wallet/address", walletHandler.Address)
	mux.HandleFunc("/contacts", walletHandler.Contacts)

	return mux
}
