// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "StudyCards"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultPageSize           = 20
	DefaultStudySetLimit      = 50
	DefaultSessionIdleTTL     = 2 * time.Hour
	DefaultAccessTokenTTL     = 7 * 24 * time.Hour
	DefaultGeneratorBaseURL   = "https://apps.abacus.ai/v1"
	DefaultGeneratorModel     = "gpt-4.1-mini"
	DefaultGeneratorMaxTokens = 4000
	DefaultGeneratorTimeout   = 120 * time.Second
)
