package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 10 * time.Minute
	EmailCodePrefix     = "email:code"
)

// EmailRepository stores one-shot verification codes per (scope, email).
// Scopes: "register", "reset".
type EmailRepository struct{}

func (e *EmailRepository) key(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

func (e *EmailRepository) SetEmailCode(scope, email, code string) error {
	return Client.Set(context.Background(), e.key(scope, email), code, DefaultEmailCodeTTL).Err()
}

func (e *EmailRepository) GetEmailCode(scope, email string) (string, error) {
	return Client.Get(context.Background(), e.key(scope, email)).Result()
}

func (e *EmailRepository) DeleteEmailCode(scope, email string) error {
	return Client.Del(context.Background(), e.key(scope, email)).Err()
}
