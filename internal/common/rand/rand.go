// Пакет rand. Случайные строки
package rand

import (
	"crypto/rand"
	"math/big"
)

// Набор символов по умолчанию: 26 + 26 + 10
const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DeviceCodeLength - длина кода устройства. 62^88 вариантов
const DeviceCodeLength = 88

// StringWithCharset возвращает криптографически случайную строку из набора символов
func StringWithCharset(length int, charset string) (string, error) {
	limit := big.NewInt(int64(len(charset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}

// String возвращает случайную строку из набора по умолчанию
func String(length int) (string, error) {
	return StringWithCharset(length, charset)
}

// DeviceCode возвращает новый код устройства
func DeviceCode() (string, error) {
	return String(DeviceCodeLength)
}
