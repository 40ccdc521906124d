package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword возвращает bcrypt-хеш пароля (соль внутри хеша).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash сравнивает пароль с хешем.
// Битый или чужой хеш — это просто false, не ошибка.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
