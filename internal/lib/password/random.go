package password

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// CodeAlphabet символы кода подтверждения: заглавные латинские буквы и цифры.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateToken возвращает URL-safe строку из nbytes случайных байт (base64 без паддинга).
func GenerateToken(nbytes int) (string, error) {
	const op = "password.GenerateToken"
	if nbytes <= 0 {
		return "", fmt.Errorf("%s: non-positive length %d", op, nbytes)
	}
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateCode возвращает строку длины length, каждый символ равномерно выбран из alphabet.
func GenerateCode(length int, alphabet string) (string, error) {
	const op = "password.GenerateCode"
	if length <= 0 || alphabet == "" {
		return "", fmt.Errorf("%s: invalid length %d or empty alphabet", op, length)
	}
	limit := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
