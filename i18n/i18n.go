// Package i18n holds the user facing status texts in English and Chinese.
package i18n

import (
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// ParseLanguage maps a settings code onto a Language, anything unknown is English.
func ParseLanguage(code string) Language {
	if strings.EqualFold(strings.TrimSpace(code), string(Chinese)) {
		return Chinese
	}
	return English
}

// DisplayName is the language's name in that language.
func (l Language) DisplayName() string {
	if l == Chinese {
		return "中文"
	}
	return "English"
}

type I18n struct {
	Language Language
}

func New(code string) I18n {
	return I18n{Language: ParseLanguage(code)}
}

func (t I18n) text(zh, en string) string {
	if t.Language == Chinese {
		return zh
	}
	return en
}

func (t I18n) NoFilesSelected() string {
	return t.text("未选择文件", "No files selected")
}

func (t I18n) FilesSelected(count int) string {
	return t.text(fmt.Sprintf("已选择 %d 个文件", count), fmt.Sprintf("%d files selected", count))
}

func (t I18n) UserAPIKeyNotFound() string {
	return t.text("未找到选定用户的 API Key", "API Key not found for selected user")
}

func (t I18n) StartParallelUpload(total int) string {
	return t.text(fmt.Sprintf("开始并行上传%d个文件...", total), fmt.Sprintf("Starting upload of %d files ...", total))
}

func (t I18n) UploadSuccess(current, total int, filename string) string {
	return t.text(
		fmt.Sprintf("[%d/%d] 成功上传: %s", current, total, filename),
		fmt.Sprintf("[%d/%d] Successfully uploaded: %s", current, total, filename),
	)
}

func (t I18n) UploadFailed(filename, detail string) string {
	return t.text(fmt.Sprintf("上传 %s 失败: %s", filename, detail), fmt.Sprintf("Failed to upload %s: %s", filename, detail))
}

func (t I18n) AllFilesUploaded(total int) string {
	return t.text(fmt.Sprintf("成功上传全部 %d 个文件！", total), fmt.Sprintf("Successfully uploaded all %d files!", total))
}

func (t I18n) UploadCancelled(completed, total int) string {
	return t.text(
		fmt.Sprintf("上传已取消，已完成 %d/%d", completed, total),
		fmt.Sprintf("Upload cancelled after %d of %d files", completed, total),
	)
}

func (t I18n) InvalidConcurrency() string {
	return t.text("并发数必须在 1-16 之间", "Concurrency must be between 1 and 16")
}

func (t I18n) ServerURLSaved() string {
	return t.text("服务器URL已保存", "Server URL saved")
}

func (t I18n) ConcurrencySaved() string {
	return t.text("并发设置已保存", "Concurrency settings saved")
}

func (t I18n) LanguageSaved() string {
	return t.text("语言设置已保存", "Language settings saved")
}

func (t I18n) LogLevelSaved() string {
	return t.text("日志级别已保存", "Log level saved")
}

func (t I18n) SpeedLimitSaved() string {
	return t.text("限速设置已保存", "Speed limit saved")
}

func (t I18n) TLSVerifySaved() string {
	return t.text("证书校验设置已保存", "Certificate verification setting saved")
}

func (t I18n) SaveFailed(err error) string {
	return t.text(fmt.Sprintf("保存失败: %v", err), fmt.Sprintf("Save failed: %v", err))
}

func (t I18n) PleaseFillCompleteInfo() string {
	return t.text("请填写完整信息", "Please fill in complete information")
}

func (t I18n) UserAdded() string {
	return t.text("用户已添加", "User added")
}

func (t I18n) NoUsers() string {
	return t.text("暂无用户", "No users")
}

func (t I18n) DefaultUserChanged(username string) string {
	return t.text(fmt.Sprintf("默认用户已更改为: %s", username), fmt.Sprintf("Default user changed to: %s", username))
}

func (t I18n) UserDeleted(username string) string {
	return t.text(fmt.Sprintf("用户 %s 已删除", username), fmt.Sprintf("User %s deleted", username))
}

func (t I18n) ServerReachable(serverURL string) string {
	return t.text(fmt.Sprintf("服务器 %s 连接正常", serverURL), fmt.Sprintf("Server %s is reachable", serverURL))
}

func (t I18n) ServerUnreachable(serverURL string, err error) string {
	return t.text(fmt.Sprintf("无法连接服务器 %s: %v", serverURL, err), fmt.Sprintf("Cannot reach server %s: %v", serverURL, err))
}
