package validation

import (
	"strings"
	"testing"
)

func fieldsOf(errs []FieldError) map[string]bool {
	out := make(map[string]bool, len(errs))
	for _, e := range errs {
		out[e.Field] = true
	}
	return out
}

func TestRegistration_Valid(t *testing.T) {
	if errs := Registration("alice", "alice@x.com", "secret1"); len(errs) != 0 {
		t.Fatalf("корректная форма дала ошибки: %v", errs)
	}
}

func TestRegistration_UsernameBounds(t *testing.T) {
	cases := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"слишком короткий", "ab", true},
		{"минимум", "abc", false},
		{"максимум", strings.Repeat("a", 15), false},
		{"слишком длинный", strings.Repeat("a", 16), true},
		{"пустой", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Registration(tc.username, "a@x.com", "secret1")
			if got := fieldsOf(errs)["username"]; got != tc.wantErr {
				t.Fatalf("username=%q: ошибка=%v, ожидалось %v", tc.username, got, tc.wantErr)
			}
		})
	}
}

func TestRegistration_PasswordBounds(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"слишком короткий", "1234", true},
		{"минимум", "12345", false},
		{"максимум", strings.Repeat("p", 35), false},
		{"слишком длинный", strings.Repeat("p", 36), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Registration("alice", "a@x.com", tc.password)
			if got := fieldsOf(errs)["password"]; got != tc.wantErr {
				t.Fatalf("password длиной %d: ошибка=%v, ожидалось %v", len(tc.password), got, tc.wantErr)
			}
		})
	}
}

func TestRegistration_BadEmail(t *testing.T) {
	for _, email := range []string{"не-email", "a@", "@x.com", ""} {
		errs := Registration("alice", email, "secret1")
		if !fieldsOf(errs)["email"] {
			t.Fatalf("email=%q прошёл валидацию", email)
		}
	}
}

func TestRegistration_RuneLength(t *testing.T) {
	// длина считается в символах, не в байтах
	if errs := Registration("Алёна", "a@x.com", "secret1"); len(errs) != 0 {
		t.Fatalf("кириллический username из 5 символов дал ошибки: %v", errs)
	}
}

func TestLogin_RequiredOnly(t *testing.T) {
	if errs := Login("", ""); len(errs) != 2 {
		t.Fatalf("пустая форма логина: ожидалось 2 ошибки, получено %d", len(errs))
	}
	// формат email на логине не проверяется
	if errs := Login("не-email", "x"); len(errs) != 0 {
		t.Fatalf("логин не должен проверять формат: %v", errs)
	}
}

// При сбросе верхняя граница пароля жёстче, чем при регистрации.
func TestResetPassword_TighterMax(t *testing.T) {
	ok := strings.Repeat("p", 15)
	tooLong := strings.Repeat("p", 16)

	if errs := ResetPassword(ok); len(errs) != 0 {
		t.Fatalf("пароль из 15 символов отклонён: %v", errs)
	}
	if errs := ResetPassword(tooLong); len(errs) == 0 {
		t.Fatal("пароль из 16 символов прошёл при сбросе")
	}
	// при регистрации те же 16 символов допустимы
	if errs := Registration("alice", "a@x.com", tooLong); len(errs) != 0 {
		t.Fatalf("пароль из 16 символов отклонён при регистрации: %v", errs)
	}
}

func TestPost_Required(t *testing.T) {
	if errs := Post("", ""); len(errs) != 2 {
		t.Fatalf("пустая форма поста: ожидалось 2 ошибки, получено %d", len(errs))
	}
	if errs := Post("Заголовок", "Текст"); len(errs) != 0 {
		t.Fatalf("корректный пост дал ошибки: %v", errs)
	}
	// одни пробелы — не заполнено
	if errs := Post("   ", "Текст"); len(errs) != 1 {
		t.Fatalf("пробельный заголовок: ожидалась 1 ошибка, получено %d", len(errs))
	}
}

func TestProfile(t *testing.T) {
	if errs := Profile("alice", "alice@x.com"); len(errs) != 0 {
		t.Fatalf("корректный профиль дал ошибки: %v", errs)
	}
	errs := Profile("ab", "плохой-email")
	f := fieldsOf(errs)
	if !f["username"] || !f["email"] {
		t.Fatalf("ожидались ошибки обоих полей, получено: %v", errs)
	}
}
