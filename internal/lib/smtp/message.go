package smtp

import (
	"fmt"
	"mime"
	"strings"
)

func buildMessage(from string, to []string, subject, body string) []byte {
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.QEncoding.Encode("UTF-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
	return []byte(msg)
}

// deliver проводит SMTP-транзакцию поверх уже подготовленного клиента.
// При ошибке соединение закрывается, при успехе его закрывает QUIT.
func deliver(client Client, from string, to []string, msg []byte) error {
	if err := transact(client, from, to, msg); err != nil {
		_ = client.Close()
		return err
	}
	return nil
}

func transact(client Client, from string, to []string, msg []byte) error {
	const op = "smtp.deliver"
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("%s: MAIL FROM %s: %w", op, from, err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("%s: RCPT TO %s: %w", op, addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: DATA: %w", op, err)
	}
	if _, err := wc.Write(msg); err != nil {
		return fmt.Errorf("%s: write body: %w", op, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("%s: close body: %w", op, err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%s: QUIT: %w", op, err)
	}
	return nil
}
