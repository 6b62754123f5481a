package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"

	// 两阶段键：邮件真正发出去之前验证码只在pending，发送成功后才confirmed可用
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
)

var (
	ErrEmailNotFound       = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

// EmailRepository 验证码存取，scope 为 register / reset
type EmailRepository struct{}

func (e *EmailRepository) pendingKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, PendingSuffix, email)
}

func (e *EmailRepository) confirmedKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, ConfirmedSuffix, email)
}

func (e *EmailRepository) SetCodePending(scope, email, code string) error {
	if err := Client.Set(context.Background(), e.pendingKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// ConfirmCode 将 pending 转为 confirmed。lua脚本原子执行：取值+写目标+设TTL+删源
func (e *EmailRepository) ConfirmCode(scope, email string) error {
	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultEmailCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script,
		[]string{e.pendingKey(scope, email), e.confirmedKey(scope, email)}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeleteCodePending 删除 pending 键（幂等）
func (e *EmailRepository) DeleteCodePending(scope, email string) error {
	if err := Client.Del(context.Background(), e.pendingKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

// GetCode 校验时读 confirmed 值
func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), e.confirmedKey(scope, email)).Result()
	if err != nil {
		return "", ErrEmailNotFound
	}
	return val, nil
}

// DeleteCode 验证码一次性使用，校验通过即删
func (e *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), e.confirmedKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
