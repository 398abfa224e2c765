// Package lang 提供界面文案与语音反馈的本地化
package lang

import (
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sjzsdu/speak/share"
	"golang.org/x/text/language"
)

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   language.Tag
	once      sync.Once
)

func setup() {
	bundle = i18n.NewBundle(language.English)
	for tag, messages := range catalogue {
		for id, other := range messages {
			_ = bundle.AddMessages(tag, &i18n.Message{ID: id, Other: other})
		}
	}
	locale := os.Getenv(share.PREFIX + "LANG")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	apply(locale)
}

// apply 调用方需持有写锁或处于 once 中
func apply(locale string) {
	tag := Parse(locale)
	current = tag
	localizer = i18n.NewLocalizer(bundle, tag.String())
}

// Parse 将 "zh_CN.UTF-8"、"en-US" 之类的区域字符串解析为语言标签，无法识别时回退到英文
func Parse(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	matcher := language.NewMatcher(supported)
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// SetLanguage 切换当前语言
func SetLanguage(locale string) {
	once.Do(setup)
	mu.Lock()
	defer mu.Unlock()
	apply(locale)
}

// Current 当前生效的语言标签
func Current() language.Tag {
	once.Do(setup)
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// T 翻译消息，找不到译文时原样返回
func T(msg string) string {
	once.Do(setup)
	mu.RLock()
	l := localizer
	mu.RUnlock()

	out, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: msg, Other: msg},
	})
	if err != nil || out == "" {
		return msg
	}
	return out
}
