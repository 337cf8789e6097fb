package utils

import (
	"fmt"
	"net/smtp"
)

// Mailer sends transactional mail over SMTP. Credentials come from config;
// nothing here touches the environment.
type Mailer struct {
	From     string
	Password string
}

func NewMailer(from, password string) *Mailer {
	return &Mailer{From: from, Password: password}
}

// SendOTPEmail delivers the password-reset OTP. The code is valid for 10
// minutes.
func (m *Mailer) SendOTPEmail(toEmail, otp string) error {
	msg := fmt.Sprintf(`Subject: IkkatBazaar - Password Reset OTP

Hello,

You requested to reset your password. Here is your One-Time Password (OTP):

%s

This OTP is valid for 10 minutes.

If you didn't request this, please ignore this email.

Best regards,
IkkatBazaar Team
`, otp)

	return smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", m.From, m.Password, "smtp.gmail.com"),
		m.From,
		[]string{toEmail},
		[]byte(msg),
	)
}
