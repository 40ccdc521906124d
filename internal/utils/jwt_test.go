package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateToken_ParseRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, time.Minute, TokenTypeAccess)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	userID, tokenType, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if userID != 42 {
		t.Fatalf("ожидался user_id 42, получен %d", userID)
	}
	if tokenType != TokenTypeAccess {
		t.Fatalf("ожидался тип access, получен %s", tokenType)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, -time.Minute, TokenTypeReset)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	_, _, err = ParseToken(testSecret, token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("ожидалась ошибка истечения, получено: %v", err)
	}
}

// Даже у просроченного токена полезная нагрузка читается:
// вызывающему нужен token_type, чтобы не принять чужой токен за свой.
func TestParseToken_ExpiredClaimsReadable(t *testing.T) {
	token, err := GenerateToken(testSecret, 7, -time.Minute, TokenTypeAccess)
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	userID, tokenType, err := ParseToken(testSecret, token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("ожидалась ошибка истечения, получено: %v", err)
	}
	if userID != 7 {
		t.Fatalf("user_id просроченного токена не прочитан: %d", userID)
	}
	if tokenType != TokenTypeAccess {
		t.Fatalf("token_type просроченного токена не прочитан: %q", tokenType)
	}
}

func TestParseToken_Tampered(t *testing.T) {
	token, _ := GenerateToken(testSecret, 7, time.Minute, TokenTypeReset)

	// портим подпись
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, _, err := ParseToken(testSecret, tampered)
	if err == nil {
		t.Fatal("подделанный токен прошёл проверку")
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatal("подделка не должна выглядеть как истечение")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _ := GenerateToken(testSecret, 7, time.Minute, TokenTypeAccess)
	if _, _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("токен с чужим секретом прошёл проверку")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, _, err := ParseToken(testSecret, "совсем не токен"); err == nil {
		t.Fatal("мусор прошёл проверку")
	}
}
