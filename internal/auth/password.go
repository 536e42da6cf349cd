// Пакет auth — хэширование паролей: HMAC-SHA256 с индивидуальной солью-ключом.
// Соль и хэш хранятся в base64, формат совместим с существующими записями users.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// saltSize — размер ключа HMAC в байтах.
const saltSize = 64

// HashPassword — сгенерировать соль и посчитать HMAC-SHA256 от пароля.
func HashPassword(password string) (hash, salt string, err error) {
	key := make([]byte, saltSize)
	if _, err := rand.Read(key); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(password))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)),
		base64.StdEncoding.EncodeToString(key),
		nil
}

// VerifyPassword — сверить пароль с сохранённой парой hash/salt.
// Повреждённая соль означает несовпадение, а не ошибку.
func VerifyPassword(password, storedHash, storedSalt string) bool {
	key, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(password))

	return hmac.Equal(mac.Sum(nil), want)
}
