package translatectl

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/ainexus/translation-service/internal/core/language"
)

// MinOfferLength is the minimum source text length for which a translate
// affordance is offered.
const MinOfferLength = 20

// State is the display state of one content item's translate control.
type State int

const (
	StateOriginal State = iota
	StateTranslating
	StateTranslated
)

func (s State) String() string {
	switch s {
	case StateTranslating:
		return "translating"
	case StateTranslated:
		return "translated"
	default:
		return "original"
	}
}

var (
	// ErrNotOffered is returned when the gating conditions fail; the control
	// renders nothing in that case, it is not merely disabled.
	ErrNotOffered = errors.New("translate control not offered for this content")

	// ErrInFlight is returned when a translation request is already running
	// for this item.
	ErrInFlight = errors.New("translation already in flight")
)

// TranslateFunc performs the actual translation request for the item's text.
type TranslateFunc func(ctx context.Context) (string, error)

// Control manages the original/translated toggle for one content item. The
// viewer's preferred language is an explicit input so the offer decision is a
// pure function of its arguments.
type Control struct {
	mu         sync.Mutex
	state      State
	original   string
	translated string
	offered    bool
	translate  TranslateFunc
}

// New builds a control for one content item. detectedLanguage is the item's
// detected source language ("auto" or empty when undetected),
// preferredLanguage is the viewer's language.
func New(originalText, detectedLanguage, preferredLanguage string, translate TranslateFunc) *Control {
	return &Control{
		state:     StateOriginal,
		original:  originalText,
		offered:   ShouldOffer(detectedLanguage, preferredLanguage, originalText),
		translate: translate,
	}
}

// ShouldOffer reports whether a translate affordance should be rendered:
// the source language must be known, differ from the viewer's language, and
// the text must be at least MinOfferLength characters.
func ShouldOffer(detectedLanguage, preferredLanguage, text string) bool {
	if !language.Known(detectedLanguage) {
		return false
	}
	if language.Normalize(detectedLanguage) == language.Normalize(preferredLanguage) {
		return false
	}
	return utf8.RuneCountInString(text) >= MinOfferLength
}

// Offered reports whether the affordance is rendered at all.
func (c *Control) Offered() bool {
	return c.offered
}

// State returns the current display state.
func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Text returns the text to display for the current state.
func (c *Control) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateTranslated {
		return c.translated
	}
	return c.original
}

// Activate handles a user activation. From Original it runs the translation
// request and moves to Translated; from Translated it reverts to Original
// locally with no network call. A failed request reverts to Original and
// returns the error for a transient notice.
func (c *Control) Activate(ctx context.Context) error {
	c.mu.Lock()
	if !c.offered {
		c.mu.Unlock()
		return ErrNotOffered
	}

	switch c.state {
	case StateTranslating:
		c.mu.Unlock()
		return ErrInFlight
	case StateTranslated:
		c.state = StateOriginal
		c.mu.Unlock()
		return nil
	}

	if c.translated != "" {
		// Already translated once, revert toggle is purely local.
		c.state = StateTranslated
		c.mu.Unlock()
		return nil
	}

	c.state = StateTranslating
	c.mu.Unlock()

	translated, err := c.translate(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateOriginal
		return err
	}

	c.translated = translated
	c.state = StateTranslated
	return nil
}
