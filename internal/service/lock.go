package service

import "sync"

// keyedLock 按实体 id 提供互斥锁，用于串行化同一实体上的并发级联操作。
// 原始行为是无锁的 last-write-wins；这里按实体 id 加锁，
// 不同 id 之间仍然完全并发。锁对象一旦创建不会回收，
// 数量上界是进程生命周期内出现过的实体 id 数。
type keyedLock struct {
	locks sync.Map // map[string]*sync.Mutex
}

// lock 锁住给定 id，返回对应的解锁函数。
func (l *keyedLock) lock(id string) func() {
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
