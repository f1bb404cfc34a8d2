// Package loop 提供单协程事件循环
// 对应浏览器的单线程调度模型：所有状态变更都在循环协程上执行，
// 网络请求在后台协程完成后把续延投回循环。
package loop

import "sync"

// Scheduler 调度接口
// Post 把任务投递到循环；Go 在后台执行 task 并把返回的续延投回循环。
type Scheduler interface {
	Post(fn func())
	Go(task func() func())
}

// Loop 事件循环
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New 创建事件循环
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), 256),
		done:  make(chan struct{}),
	}
}

// Post 投递任务到循环
// 循环停止后投递的任务被丢弃。
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Go 后台执行 task，完成后把续延按到达顺序投回循环
// 没有取消也没有去重：后发出的请求可能先返回，
// 晚到的响应仍会按到达顺序生效。
func (l *Loop) Go(task func() func()) {
	go func() {
		cont := task()
		if cont != nil {
			l.Post(cont)
		}
	}()
}

// Run 消费任务直到 Stop 被调用
func (l *Loop) Run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Stop 停止循环，幂等
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Sync 同步调度器：任务就地执行，用于测试中消除异步边界
type Sync struct{}

// NewSync 创建同步调度器
func NewSync() *Sync {
	return &Sync{}
}

// Post 就地执行
func (*Sync) Post(fn func()) {
	fn()
}

// Go 就地执行 task 及其续延
func (*Sync) Go(task func() func()) {
	if cont := task(); cont != nil {
		cont()
	}
}
