// Пакет token. Подписанные идентификаторы устройств
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken - идентификатор устройства не выдавался этим сервером
var ErrInvalidToken = errors.New("invalid voter device id")

// Claims - утверждения токена
type Claims struct {
	jwt.RegisteredClaims
	DeviceCode string `json:"device_code"`
}

// Issuer выдает и проверяет идентификаторы устройств
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Build подписывает код устройства алгоритмом HS256
func (i *Issuer) Build(deviceCode string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{DeviceCode: deviceCode})
	return token.SignedString(i.secret)
}

// DeviceCode проверяет подпись и возвращает код устройства
func (i *Issuer) DeviceCode(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.DeviceCode == "" {
		return "", ErrInvalidToken
	}
	return claims.DeviceCode, nil
}
