package pkg

import (
	"errors"
	"testing"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("pair tokens must be non-empty")
	}

	claims, err := ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("user id = %d, want 7", claims.UserID)
	}
	if claims.Subject != "access" {
		t.Fatalf("subject = %q, want access", claims.Subject)
	}
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	if _, err := ParseAccess("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	pair, err := GeneratePair(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// refresh 用的是另一把密钥，当access解析必须失败
	if _, err := ParseAccess(pair.RefreshToken); err == nil {
		t.Fatal("refresh token must not parse as access token")
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	pair, err := GeneratePair(9)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	next, err := Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := ParseAccess(next.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed access: %v", err)
	}
	if claims.UserID != 9 {
		t.Fatalf("user id = %d, want 9", claims.UserID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	pair, err := GeneratePair(9)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Refresh(pair.AccessToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("err = %v, want ErrRefreshInvalid", err)
	}
}
