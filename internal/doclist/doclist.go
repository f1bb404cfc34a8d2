// Package doclist 实现文档列表模型
// 维护界面已知的文档有序集合（最新在前），每条记录独占一行渲染节点，
// 模型与渲染行保持严格一一对应，任何操作都不允许二者失同步。
package doclist

import (
	"doc-chat-cli/internal/logger"
	"doc-chat-cli/internal/ui"

	"go.uber.org/zap"
)

// EmptyPlaceholder 空列表占位文案
const EmptyPlaceholder = "No documents uploaded yet."

// DocumentEntry 列表中的一条文档记录
type DocumentEntry struct {
	ID          string
	DisplayName string
	Item        *ui.Item // 独占持有的渲染行，记录移除时一并销毁
}

// List 文档列表
// 插入时为条目接好两个交互：选中（进入聊天）与删除。
type List struct {
	entries     []*DocumentEntry
	placeholder bool
	onSelect    func(id, name string)
	onDelete    func(id string)
}

// New 创建列表，初始为空并显示占位
func New(onSelect func(id, name string), onDelete func(id string)) *List {
	return &List{
		placeholder: true,
		onSelect:    onSelect,
		onDelete:    onDelete,
	}
}

// InsertAtFront 头部插入一条文档
// 先移除空态占位（若在显示），再构造渲染行并前插。
// 文档 ID 在列表内唯一；重复插入按已有条目处理。
func (l *List) InsertAtFront(id, name string) *DocumentEntry {
	if existing := l.Find(id); existing != nil {
		logger.L().Warn("忽略重复的文档插入", zap.String("document_id", id))
		return existing
	}

	l.placeholder = false

	entry := &DocumentEntry{
		ID:          id,
		DisplayName: name,
		Item:        ui.NewItem(id, name),
	}
	l.entries = append([]*DocumentEntry{entry}, l.entries...)
	return entry
}

// Remove 按 ID 移除条目并销毁其渲染行
// 返回条目移除前所在的下标，未找到时返回 -1。
// 列表因此变空时恢复占位。
func (l *List) Remove(id string) int {
	for i, e := range l.entries {
		if e.ID == id {
			e.Item = nil
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			if len(l.entries) == 0 {
				l.placeholder = true
			}
			return i
		}
	}
	return -1
}

// SelectNext 删除后的重选策略
// 无论删除的是哪个位置，总是返回当前最前（最新）的一条。
// 这是刻意保留的简化策略，未经需求变更不得"改进"。
func (l *List) SelectNext(deletedIndex int) *DocumentEntry {
	_ = deletedIndex
	if len(l.entries) == 0 {
		return nil
	}
	return l.entries[0]
}

// IsEmpty 列表是否为空
func (l *List) IsEmpty() bool {
	return len(l.entries) == 0
}

// Len 当前条目数
func (l *List) Len() int {
	return len(l.entries)
}

// EntryAt 按下标取条目，越界返回 nil
func (l *List) EntryAt(i int) *DocumentEntry {
	if i < 0 || i >= len(l.entries) {
		return nil
	}
	return l.entries[i]
}

// Find 按 ID 查找条目
func (l *List) Find(id string) *DocumentEntry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Highlight 高亮指定条目并清除其余条目的选中态
// 同步执行，不依赖任何网络结果。
func (l *List) Highlight(id string) {
	for _, e := range l.entries {
		e.Item.SetActive(e.ID == id)
	}
}

// ClearActive 清除所有条目的选中态
func (l *List) ClearActive() {
	for _, e := range l.entries {
		e.Item.SetActive(false)
	}
}

// Select 触发第 i 条的选中交互（等价于点击文档名）
func (l *List) Select(i int) {
	e := l.EntryAt(i)
	if e == nil || l.onSelect == nil {
		return
	}
	l.onSelect(e.ID, e.DisplayName)
}

// Delete 触发第 i 条的删除交互（等价于提交删除表单）
func (l *List) Delete(i int) {
	e := l.EntryAt(i)
	if e == nil || l.onDelete == nil {
		return
	}
	l.onDelete(e.ID)
}

// RenderLines 渲染为文本行，空列表时只有占位行
func (l *List) RenderLines() []string {
	if l.placeholder {
		return []string{"  " + EmptyPlaceholder}
	}
	lines := make([]string, 0, len(l.entries))
	for i, e := range l.entries {
		lines = append(lines, e.Item.Render(i))
	}
	return lines
}
