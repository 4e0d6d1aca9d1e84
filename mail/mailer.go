// Package mail delivers account mail. Delivery is an external effect the
// ledger never depends on: a failed send is reported to the caller but leaves
// no ledger state behind.
package mail

import (
	"fmt"
	"net/smtp"
)

// Mailer is the outgoing-mail port.
type Mailer interface {
	SendOTP(to, otp string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
}

func NewSMTPMailer(host, port, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass}
}

const otpBody = `<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f9fafb; color: #111; border: 1px solid #ddd; border-radius: 8px;">
  <h2 style="color: #e67e22;">&#128274; Email Verification</h2>
  <p>Hello,</p>
  <p>Thank you for signing up! Please use the following OTP to verify your email address:</p>
  <div style="font-size: 24px; font-weight: bold; color: #2ecc71; margin: 20px 0;">%s</div>
  <p>This code will expire in 10 minutes. Do not share it with anyone.</p>
  <hr style="margin-top: 30px;" />
  <p style="font-size: 12px; color: #666;">If you did not request this, you can safely ignore this email.</p>
</div>`

func (m *SMTPMailer) SendOTP(to, otp string) error {
	headers := fmt.Sprintf("From: \"Hisaab Support\" <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: Your OTP Code\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n", m.user, to)
	msg := headers + fmt.Sprintf(otpBody, otp)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, []byte(msg))
}
