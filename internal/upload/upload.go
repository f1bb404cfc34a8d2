// Package upload 实现上传管道
// 两个入口（主面板上传、"新对话"快捷上传）共用同一套契约：
// multipart 提交文件，成功后清洗文档名、前插列表并自动进入聊天。
package upload

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"doc-chat-cli/internal/api"
	"doc-chat-cli/internal/doclist"
	"doc-chat-cli/internal/logger"
	"doc-chat-cli/internal/loop"
	"doc-chat-cli/internal/ui"
)

// 快捷上传触发器的恢复延迟
const quickResetDelay = 2 * time.Second

// 存储名中位于 .pdf 前的去重后缀（形如 report_ab12cd34.pdf）
var uniqueSuffixRe = regexp.MustCompile(`_[^_]+\.pdf$`)

// CleanDocumentName 清洗服务端返回的存储名得到显示名
// 去掉 documents/ 前缀，再去掉扩展名前的去重后缀。
func CleanDocumentName(value string) string {
	value = strings.Replace(value, "documents/", "", 1)
	return uniqueSuffixRe.ReplaceAllString(value, ".pdf")
}

// Pipeline 上传管道
type Pipeline struct {
	api        *api.Client
	sched      loop.Scheduler
	list       *doclist.List
	screen     *ui.Screen
	alert      func(kind, title, message string)
	onUploaded func(id, name string) // 上传成功后交给控制器自动开启聊天

	quickBusy  bool
	resetDelay time.Duration
}

// NewPipeline 创建上传管道
func NewPipeline(
	apiClient *api.Client,
	sched loop.Scheduler,
	list *doclist.List,
	screen *ui.Screen,
	alert func(kind, title, message string),
	onUploaded func(id, name string),
) *Pipeline {
	return &Pipeline{
		api:        apiClient,
		sched:      sched,
		list:       list,
		screen:     screen,
		alert:      alert,
		onUploaded: onUploaded,
		resetDelay: quickResetDelay,
	}
}

// UploadPrimary 主面板上传
// 显示加载指示，完成或失败后由响应续延收起；失败只弹告警，列表不变。
func (p *Pipeline) UploadPrimary(path string) {
	p.screen.SetFileLabel(filepath.Base(path))
	p.screen.SetPreloader(true)
	p.screen.SetSuccess(false)

	p.sched.Go(func() func() {
		resp, err := p.api.UploadDocument(path)
		return func() {
			p.screen.SetPreloader(false)
			if err != nil || !resp.Success || resp.Document == nil {
				if err != nil {
					logger.L().Error("上传请求失败", zap.String("path", path), logger.Err(err))
				}
				p.alert("error", "Upload Failed", "Failed to upload document")
				return
			}
			p.screen.SetSuccess(true)
			p.finish(resp.Document)
		}
	})
}

// UploadQuick 快捷上传（"新对话"入口）
// 触发器进入禁用态并显示转圈，完成后经固定延迟自动恢复；
// 失败立即恢复并弹告警。
func (p *Pipeline) UploadQuick(path string) {
	if p.quickBusy {
		return
	}
	p.quickBusy = true
	p.screen.Hint("🔄 Uploading...")

	p.sched.Go(func() func() {
		resp, err := p.api.UploadDocument(path)
		return func() {
			if err != nil || !resp.Success || resp.Document == nil {
				if err != nil {
					logger.L().Error("快捷上传失败", zap.String("path", path), logger.Err(err))
				}
				p.alert("error", "Upload Failed", "Failed to upload document")
				p.quickBusy = false
				return
			}
			p.screen.Hint("✅ Uploaded!")
			p.finish(resp.Document)

			time.AfterFunc(p.resetDelay, func() {
				p.sched.Post(func() {
					p.quickBusy = false
				})
			})
		}
	})
}

// QuickBusy 快捷上传触发器是否处于禁用态
func (p *Pipeline) QuickBusy() bool {
	return p.quickBusy
}

// finish 上传成功后的公共收尾：清洗名称、前插列表、移交控制器
func (p *Pipeline) finish(doc *api.UploadedDocument) {
	name := CleanDocumentName(doc.Name)
	p.list.InsertAtFront(doc.ID, name)
	if p.onUploaded != nil {
		p.onUploaded(doc.ID, name)
	}
}
