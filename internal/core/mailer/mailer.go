package mailer

import (
	"context"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// google OAuth2 端点；access token 由 refresh token 滚动续期
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// Credentials Gmail OAuth2 凭据全集。AccessToken 可选（仅作首个 token 的种子），
// 其余四项缺一即视为未配置。
type Credentials struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccessToken  string
}

func (c Credentials) Complete() bool {
	return c.User != "" && c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Mailer Gmail XOAUTH2 出站邮件网关。
// Send 只返回 bool：发信失败记日志吞掉，绝不向调用方冒泡。
type Mailer struct {
	from       string
	user       string
	tokens     oauth2.TokenSource
	log        *zap.Logger
	configured bool
}

func New(appName string, creds Credentials, log *zap.Logger) *Mailer {
	m := &Mailer{
		from:       appName,
		user:       creds.User,
		log:        log,
		configured: creds.Complete(),
	}
	if !m.configured {
		return m
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     googleEndpoint,
	}
	seed := &oauth2.Token{RefreshToken: creds.RefreshToken}
	if creds.AccessToken != "" {
		// 静态 token 只在短窗口内直接用，过期后走 refresh
		seed.AccessToken = creds.AccessToken
		seed.Expiry = time.Now().Add(10 * time.Minute)
	}
	m.tokens = oauth2.ReuseTokenSource(seed, conf.TokenSource(context.Background(), seed))
	return m
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) bool {
	if !m.configured {
		m.log.Warn("email not configured, skipping send", zap.String("to", to))
		return false
	}

	token, err := m.tokens.Token()
	if err != nil {
		m.log.Error("email sending failed", zap.Error(err))
		return false
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.from, m.user); err != nil {
		m.log.Error("email sending failed", zap.Error(err))
		return false
	}
	if err := msg.To(to); err != nil {
		m.log.Error("email sending failed", zap.Error(err))
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient("smtp.gmail.com",
		gomail.WithPort(587),
		gomail.WithSMTPAuth(gomail.SMTPAuthXOAUTH2),
		gomail.WithUsername(m.user),
		gomail.WithPassword(token.AccessToken),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		m.log.Error("email sending failed", zap.Error(err))
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("email sending failed", zap.Error(err))
		return false
	}
	m.log.Info("email sent successfully", zap.String("to", to), zap.String("subject", subject))
	return true
}
