package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ============================================================================
// 分布式锁实现
// ============================================================================
//
// 场景：同一账户同时发起两笔缴费请求（网络抖动导致重复提交，或并发请求）
//
// 没有锁时：
//   goroutine1: 读账户 prelim 欠费=6500 -> 缴 6500 -> 状态翻转 PAID
//   goroutine2: 读账户 prelim 欠费=6500 -> 缴 6500 -> total_paid 丢一笔更新
//
// 加锁后两笔缴费串行执行，配合事务内 SELECT ... FOR UPDATE 保证
// 每次读到的都是上一笔提交后的账户状态。
//
// 加锁：SET key value NX EX timeout
// 释放：Lua 脚本先验证持有者再删除，保证原子性
//
// ============================================================================

var (
	ErrLockFailed  = errors.New("获取分布式锁失败")
	ErrLockExpired = errors.New("锁已过期")
)

// DistributedLock 分布式锁
type DistributedLock struct {
	client     *redis.Client
	key        string        // 锁的 key
	value      string        // 锁的 value（用于验证锁的持有者）
	expiration time.Duration // 锁的过期时间
}

// NewDistributedLock 创建分布式锁
func NewDistributedLock(client *redis.Client, key, value string, expiration time.Duration) *DistributedLock {
	return &DistributedLock{
		client:     client,
		key:        key,
		value:      value,
		expiration: expiration,
	}
}

// TryLock 尝试获取锁（非阻塞）
// SetNX 保证同一时刻只有一个客户端能获取到锁，过期时间防止死锁
func (l *DistributedLock) TryLock(ctx context.Context) (bool, error) {
	success, err := l.client.SetNX(ctx, l.key, l.value, l.expiration).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

// Lock 阻塞式获取锁（带重试）
func (l *DistributedLock) Lock(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if success {
			return nil
		}
		// 等待一段时间后重试
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
			// 继续重试
		}
	}
	return ErrLockFailed
}

// Unlock 释放锁
// Lua 脚本保证"检查持有者+删除"的原子性，锁过期后不会误删他人的锁
func (l *DistributedLock) Unlock(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	_, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Result()
	return err
}

// NewPayLock 创建缴费锁（按账户维度）
//
// 账户是独立的并发单元：不同账户可以并发缴费，
// 同一账户的缴费必须串行，防止余额丢失更新
func NewPayLock(client *redis.Client, accountID int64, reference string) *DistributedLock {
	key := fmt.Sprintf("pay:lock:account:%d", accountID)
	// value 使用缴费参考号，便于追踪是哪笔缴费持有锁
	return NewDistributedLock(client, key, reference, 30*time.Second)
}
