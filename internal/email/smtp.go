package email

import (
	"fmt"
	"net/smtp"

	"puantaj-backend/internal/config"
)

func SendOTP(cfg config.Config, to string, code string) error {
	if cfg.SmtpHost == "" {
		// No SMTP configured; dev setups read the code from the log.
		fmt.Printf("[email] OTP for %s: %s\n", to, code)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.SmtpHost, cfg.SmtpPort)
	auth := smtp.PlainAuth("", cfg.SmtpUser, cfg.SmtpPass, cfg.SmtpHost)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Puantaj verification code\r\n\r\nYour verification code is %s. It expires in %d minutes.\r\n",
		cfg.SmtpFrom, to, code, cfg.OtpMinutes))

	return smtp.SendMail(addr, auth, cfg.SmtpFrom, []string{to}, msg)
}
