package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldError — ошибка валидации одного поля формы.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	UsernameMinLen = 3
	UsernameMaxLen = 15
	// Пароль при регистрации и при сбросе ограничен по-разному,
	// так исторически сложилось в продукте.
	PasswordMinLen      = 5
	PasswordMaxLen      = 35
	ResetPasswordMaxLen = 15
)

func required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: "обязательное поле"}
	}
	return nil
}

func lengthBetween(field, value string, min, max int) *FieldError {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("длина должна быть от %d до %d символов", min, max)}
	}
	return nil
}

func validEmail(field, value string) *FieldError {
	if _, err := mail.ParseAddress(value); err != nil {
		return &FieldError{Field: field, Message: "некорректный email"}
	}
	return nil
}

// Registration проверяет поля формы регистрации.
func Registration(username, email, password string) []FieldError {
	var errs []FieldError
	if e := required("username", username); e != nil {
		errs = append(errs, *e)
	} else if e := lengthBetween("username", username, UsernameMinLen, UsernameMaxLen); e != nil {
		errs = append(errs, *e)
	}
	if e := required("email", email); e != nil {
		errs = append(errs, *e)
	} else if e := validEmail("email", email); e != nil {
		errs = append(errs, *e)
	}
	if e := required("password", password); e != nil {
		errs = append(errs, *e)
	} else if e := lengthBetween("password", password, PasswordMinLen, PasswordMaxLen); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// Login проверяет только заполненность: формат не раскрываем.
func Login(email, password string) []FieldError {
	var errs []FieldError
	if e := required("email", email); e != nil {
		errs = append(errs, *e)
	}
	if e := required("password", password); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// ResetPassword — новый пароль при сбросе по токену.
func ResetPassword(password string) []FieldError {
	var errs []FieldError
	if e := required("new_password", password); e != nil {
		errs = append(errs, *e)
	} else if e := lengthBetween("new_password", password, PasswordMinLen, ResetPasswordMaxLen); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// Profile — текстовые поля формы профиля.
func Profile(username, email string) []FieldError {
	var errs []FieldError
	if e := required("username", username); e != nil {
		errs = append(errs, *e)
	} else if e := lengthBetween("username", username, UsernameMinLen, UsernameMaxLen); e != nil {
		errs = append(errs, *e)
	}
	if e := required("email", email); e != nil {
		errs = append(errs, *e)
	} else if e := validEmail("email", email); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// Post — поля формы нового поста.
func Post(title, content string) []FieldError {
	var errs []FieldError
	if e := required("title", title); e != nil {
		errs = append(errs, *e)
	}
	if e := required("content", content); e != nil {
		errs = append(errs, *e)
	}
	return errs
}
