package medauth

import (
	"errors"
	"testing"
)

func TestParseDeepLinkFragmentTokens(t *testing.T) {
	raw := "com.bitacora.medica://google-auth#access_token=at-1&refresh_token=rt-1&token_type=bearer"

	pair, err := ParseDeepLink(raw, "com.bitacora.medica", "google-auth")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if pair.AccessToken != "at-1" || pair.RefreshToken != "rt-1" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestParseDeepLinkQueryTokens(t *testing.T) {
	raw := "com.bitacora.medica://google-auth?access_token=at-2&refresh_token=rt-2"

	pair, err := ParseDeepLink(raw, "com.bitacora.medica", "google-auth")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if pair.AccessToken != "at-2" || pair.RefreshToken != "rt-2" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestParseDeepLinkForeignScheme(t *testing.T) {
	for _, raw := range []string{
		"https://example.com/callback#access_token=x&refresh_token=y",
		"com.other.app://google-auth#access_token=x&refresh_token=y",
		"com.bitacora.medica://password-reset#access_token=x&refresh_token=y",
	} {
		if _, err := ParseDeepLink(raw, "com.bitacora.medica", "google-auth"); !errors.Is(err, ErrDeepLinkForeign) {
			t.Fatalf("expected ErrDeepLinkForeign for %q, got %v", raw, err)
		}
	}
}

func TestParseDeepLinkMissingTokens(t *testing.T) {
	for _, raw := range []string{
		"com.bitacora.medica://google-auth",
		"com.bitacora.medica://google-auth#access_token=only",
		"com.bitacora.medica://google-auth#refresh_token=only",
		"com.bitacora.medica://google-auth#error=access_denied",
	} {
		if _, err := ParseDeepLink(raw, "com.bitacora.medica", "google-auth"); !errors.Is(err, ErrDeepLinkNoTokens) {
			t.Fatalf("expected ErrDeepLinkNoTokens for %q, got %v", raw, err)
		}
	}
}

func TestParseDeepLinkFirstFragmentOnly(t *testing.T) {
	// Only the first '#' is promoted; anything after a second one stays in
	// the fragment and is not read as a token.
	raw := "com.bitacora.medica://google-auth#access_token=at&refresh_token=rt#trailer"

	pair, err := ParseDeepLink(raw, "com.bitacora.medica", "google-auth")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if pair.RefreshToken != "rt" {
		t.Fatalf("unexpected refresh token: %q", pair.RefreshToken)
	}
}
