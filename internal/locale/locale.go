// Package locale holds the UI string tables and default practice texts.
package locale

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a supported UI language.
type Code string

const (
	// Chinese is the default language on a fresh start.
	Chinese Code = "zh"
	// English is the alternate language.
	English Code = "en"
)

// Default is the language selected when nothing else is configured.
const Default = Chinese

// ErrUnsupported is returned by Parse for unknown language codes.
var ErrUnsupported = errors.New("unsupported language")

// Supported lists the language codes in toggle order.
func Supported() []Code {
	return []Code{Chinese, English}
}

// Parse converts a user supplied code into a Code.
func Parse(s string) (Code, error) {
	switch Code(strings.ToLower(strings.TrimSpace(s))) {
	case Chinese:
		return Chinese, nil
	case English:
		return English, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: zh, en)", ErrUnsupported, s)
	}
}

// Next returns the other supported language.
func (c Code) Next() Code {
	if c == Chinese {
		return English
	}
	return Chinese
}

// Strings is the set of user-facing labels for one language.
type Strings struct {
	Title          string
	Pause          string
	Resume         string
	SwitchLanguage string
	TimerPrefix    string
	SecondsSuffix  string
	AccuracyPrefix string
	Placeholder    string
	Complete       string

	LoadPrompt string
	LoadFailed string
	Dismiss    string
	Help       string
	WeakHint   string
}

var tables = map[Code]Strings{
	Chinese: {
		Title:          "中文打字练习",
		Pause:          "暂停",
		Resume:         "继续",
		SwitchLanguage: "切换到英文",
		TimerPrefix:    "时间: ",
		SecondsSuffix:  "秒",
		AccuracyPrefix: "准确率: ",
		Placeholder:    "开始输入...",
		Complete:       "完成！",
		LoadPrompt:     "文件路径: ",
		LoadFailed:     "加载失败",
		Dismiss:        "按 enter 继续",
		WeakHint:       "薄弱字符: ",
		Help:           "ctrl+p 暂停/继续 · ctrl+l 切换语言 · ctrl+o 打开文件 · ctrl+v 粘贴文本 · ctrl+c 退出",
	},
	English: {
		Title:          "Typing Practice",
		Pause:          "Pause",
		Resume:         "Continue",
		SwitchLanguage: "Switch to Chinese",
		TimerPrefix:    "Time: ",
		SecondsSuffix:  "s",
		AccuracyPrefix: "Accuracy: ",
		Placeholder:    "Start typing...",
		Complete:       "Well done!",
		LoadPrompt:     "File path: ",
		LoadFailed:     "Failed to load",
		Dismiss:        "press enter to continue",
		WeakHint:       "Weakest: ",
		Help:           "ctrl+p pause/continue · ctrl+l language · ctrl+o open file · ctrl+v paste text · ctrl+c quit",
	},
}

// Table returns the string table for a language. Unknown codes fall back to
// the default language.
func Table(c Code) Strings {
	if t, ok := tables[c]; ok {
		return t
	}
	return tables[Default]
}
