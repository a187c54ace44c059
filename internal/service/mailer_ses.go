package service

import (
	"context"
	"fmt"
	"log/slog"

	"go_4_study_cards/internal/config"
	"go_4_study_cards/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer は AWS SES 経由で確認メールやパスワードリセットメールを送信します。
type SESMailer struct {
	client *sesv2.Client
	from   string
}

// NewSESMailer はSESクライアントを初期化します。
// 認証情報の解決に失敗した場合は起動を止めたいのでpanicします。
func NewSESMailer(cfg *config.Config) Mailer {
	awsCfg, err := loadSESConfig(&cfg.SES)
	if err != nil {
		slog.Error("SESの初期化に失敗しました", "error", err)
		panic(err)
	}

	return &SESMailer{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.SES.From,
	}
}

// loadSESConfig は auth_type に応じた認証方法でAWS設定を組み立てます。
func loadSESConfig(cfg *config.SESConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	switch cfg.AuthType {
	case "static_credentials":
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return aws.Config{}, fmt.Errorf("ses: auth_type=static_credentials ですが access_key_id または secret_access_key が未設定です")
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	case "iam_role", "":
		// SDKのデフォルトチェーンに任せる
	default:
		slog.Warn("未知の ses.auth_type が指定されたためIAMロールにフォールバックします", "type", cfg.AuthType)
	}

	return awsconfig.LoadDefaultConfig(context.Background(), opts...)
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		logger.Error("SESでのメール送信に失敗しました", "error", err, "to", to)
		return err
	}

	logger.Info("SESでメールを送信しました", "to", to, "subject", subject)
	return nil
}
