package translatectl_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ainexus/translation-service/internal/core/translatectl"
	"github.com/stretchr/testify/require"
)

const longSpanish = "Hola, esto es una publicación bastante larga sobre herramientas de IA."

func TestShouldOffer(t *testing.T) {
	longText := strings.Repeat("a", 50)

	require.False(t, translatectl.ShouldOffer("en", "en", longText), "same language")
	require.False(t, translatectl.ShouldOffer("es", "en", "corto"), "below length threshold")
	require.False(t, translatectl.ShouldOffer("", "en", longText), "unknown source language")
	require.False(t, translatectl.ShouldOffer("auto", "en", longText), "undetected source language")
	require.True(t, translatectl.ShouldOffer("es", "en", longText))
	require.False(t, translatectl.ShouldOffer("es", "es-MX", longText), "region variants compare equal")
}

func TestControl_NotOfferedNeverTranslates(t *testing.T) {
	calls := 0
	ctl := translatectl.New("short", "es", "en", func(context.Context) (string, error) {
		calls++
		return "x", nil
	})

	require.False(t, ctl.Offered())
	require.ErrorIs(t, ctl.Activate(context.Background()), translatectl.ErrNotOffered)
	require.Equal(t, translatectl.StateOriginal, ctl.State())
	require.Zero(t, calls)
}

func TestControl_ActivateTogglesWithSingleNetworkCall(t *testing.T) {
	calls := 0
	ctl := translatectl.New(longSpanish, "es", "en", func(context.Context) (string, error) {
		calls++
		return "Hi, this is a fairly long post about AI tools.", nil
	})

	require.True(t, ctl.Offered())
	require.Equal(t, translatectl.StateOriginal, ctl.State())

	// Original -> Translating -> Translated
	require.NoError(t, ctl.Activate(context.Background()))
	require.Equal(t, translatectl.StateTranslated, ctl.State())
	require.Equal(t, "Hi, this is a fairly long post about AI tools.", ctl.Text())
	require.Equal(t, 1, calls)

	// Translated -> Original is a local toggle, no network call.
	require.NoError(t, ctl.Activate(context.Background()))
	require.Equal(t, translatectl.StateOriginal, ctl.State())
	require.Equal(t, longSpanish, ctl.Text())
	require.Equal(t, 1, calls)

	// Toggling back reuses the stored translation.
	require.NoError(t, ctl.Activate(context.Background()))
	require.Equal(t, translatectl.StateTranslated, ctl.State())
	require.Equal(t, 1, calls)
}

func TestControl_FailureRevertsToOriginal(t *testing.T) {
	wantErr := errors.New("gateway unavailable")
	ctl := translatectl.New(longSpanish, "es", "en", func(context.Context) (string, error) {
		return "", wantErr
	})

	err := ctl.Activate(context.Background())
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, translatectl.StateOriginal, ctl.State())
	require.Equal(t, longSpanish, ctl.Text())
}

func TestControl_OneInFlightRequestPerItem(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ctl := translatectl.New(longSpanish, "es", "en", func(context.Context) (string, error) {
		close(started)
		<-release
		return "done", nil
	})

	done := make(chan error, 1)
	go func() { done <- ctl.Activate(context.Background()) }()

	<-started
	require.Equal(t, translatectl.StateTranslating, ctl.State())
	require.ErrorIs(t, ctl.Activate(context.Background()), translatectl.ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, translatectl.StateTranslated, ctl.State())
}
