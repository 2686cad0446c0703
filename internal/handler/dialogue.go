package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlexZinkM/voice-wallet/internal/dialogue"
	"github.com/AlexZinkM/voice-wallet/internal/gesture"
	"github.com/AlexZinkM/voice-wallet/internal/model"
	"go.uber.org/zap"
)

const gestureSubmitTimeout = time.Second

// Dialogue is the part of the dialogue engine the control surface drives
type Dialogue interface {
	Submit(ctx context.Context, in dialogue.Input) error
	State() model.StateResponse
	Identity() model.IdentityHandle
}

// DialogueHandler feeds transcripts, buttons, keys and pointer events into the dialogue engine
type DialogueHandler struct {
	engine     Dialogue
	classifier *gesture.Classifier
	logger     *zap.Logger
}

// NewDialogueHandler creates a DialogueHandler. Pointer events are classified with clock;
// a nil clock uses wall time.
func NewDialogueHandler(engine Dialogue, clock gesture.Clock, logger *zap.Logger) *DialogueHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &DialogueHandler{engine: engine, logger: logger}
	h.classifier = gesture.NewClassifier(clock, h.submitGesture, logger)
	return h
}

// Close stops pending gesture timers
func (h *DialogueHandler) Close() {
	h.classifier.Close()
}

func (h *DialogueHandler) submitGesture(g model.Gesture) {
	ctx, cancel := context.WithTimeout(context.Background(), gestureSubmitTimeout)
	defer cancel()
	if err := h.engine.Submit(ctx, dialogue.GestureInput(g)); err != nil {
		h.logger.Warn("gesture dropped", zap.String("gesture", string(g)), zap.Error(err))
	}
}

// Transcript handles POST /dialogue/transcript
// @Summary      Submit spoken text
// @Description  Queues a recognized transcript for the dialogue engine as if it had been heard
// @Tags         dialogue
// @Accept       json
// @Produce      json
// @Param        request  body      model.TranscriptRequest  true  "Transcript"
// @Success      202      {object}  model.AcceptedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /dialogue/transcript [post]
func (h *DialogueHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.TranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, errors.New("text is required"))
		return
	}

	h.submit(w, r, dialogue.Transcript(req.Text))
}

// Button handles POST /dialogue/button
// @Summary      Press an on-screen button
// @Description  Queues a button press. Command buttons only act in IDLE; listen works in any state.
// @Tags         dialogue
// @Accept       json
// @Produce      json
// @Param        request  body      model.ButtonRequest  true  "Button"
// @Success      202      {object}  model.AcceptedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /dialogue/button [post]
func (h *DialogueHandler) Button(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err)
		return
	}
	if !req.Button.Valid() {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, errors.New("unknown button: "+string(req.Button)))
		return
	}

	h.submit(w, r, dialogue.ButtonInput(req.Button))
}

// Key handles POST /dialogue/key
// @Summary      Press a keyboard shortcut
// @Description  Queues a single key: b balance, h history, s send, a add contact, w whitelist
// @Tags         dialogue
// @Accept       json
// @Produce      json
// @Param        request  body      model.KeyRequest  true  "Key"
// @Success      202      {object}  model.AcceptedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /dialogue/key [post]
func (h *DialogueHandler) Key(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err)
		return
	}
	if utf8.RuneCountInString(req.Key) != 1 {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, errors.New("key must be a single character"))
		return
	}

	key, _ := utf8.DecodeRuneInString(req.Key)
	h.submit(w, r, dialogue.KeyInput(key))
}

// Pointer handles POST /gesture/pointer
// @Summary      Report a pointer event
// @Description  Feeds a raw pointer down or up event into the gesture classifier
// @Tags         gesture
// @Accept       json
// @Produce      json
// @Param        request  body      model.PointerRequest  true  "Pointer event"
// @Success      202      {object}  model.AcceptedResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /gesture/pointer [post]
func (h *DialogueHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err)
		return
	}

	switch strings.ToLower(req.Event) {
	case "down":
		h.classifier.PointerDown()
	case "up":
		h.classifier.PointerUp()
	default:
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, errors.New("event must be down or up"))
		return
	}

	writeJSON(w, http.StatusAccepted, model.AcceptedResponse{Accepted: true})
}

// State handles GET /dialogue/state
// @Summary      Get dialogue state
// @Description  Returns the current flow state and scratch data. Seed words are never included.
// @Tags         dialogue
// @Produce      json
// @Success      200  {object}  model.StateResponse
// @Router       /dialogue/state [get]
func (h *DialogueHandler) State(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.State())
}

func (h *DialogueHandler) submit(w http.ResponseWriter, r *http.Request, in dialogue.Input) {
	if err := h.engine.Submit(r.Context(), in); err != nil {
		h.logger.Warn("input rejected", zap.Stringer("kind", in.Kind), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, model.ErrorCodeUnavailable, err)
		return
	}
	writeJSON(w, http.StatusAccepted, model.AcceptedResponse{Accepted: true, Message: in.Kind.String()})
}
