package notification

import (
	"context"
	"fmt"
	"strings"

	"go-rrhh/internal/events"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	NotifyLeaveResolved(ctx context.Context, event events.LeaveResolvedEvent) error
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type emailNotifier struct {
	sender Sender
	from   string
	logger *zap.Logger
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

func NewEmailNotifier(sender Sender, from string, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.email")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.email")
	}
	return &emailNotifier{sender: sender, from: from, logger: l}
}

// NotifyLeaveResolved is a no-op when the employee has no email on file.
func (n *emailNotifier) NotifyLeaveResolved(ctx context.Context, event events.LeaveResolvedEvent) error {
	if strings.TrimSpace(event.EmployeeEmail) == "" {
		n.logger.Warn("leave resolved notification skipped, employee has no email",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", event.EmployeeEmail)
	msg.SetHeader("Subject", leaveResolvedSubject(event))
	msg.SetBody("text/plain", leaveResolvedBody(event))

	if err := n.sender.DialAndSend(msg); err != nil {
		n.logger.Error("send leave resolved email failed",
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return err
	}

	n.logger.Info("leave resolved email sent",
		zap.String("leave_id", event.LeaveID),
		zap.String("outcome", event.Outcome),
	)
	return nil
}

func leaveResolvedSubject(event events.LeaveResolvedEvent) string {
	return fmt.Sprintf("Leave request %s", strings.ToLower(event.Outcome))
}

func leaveResolvedBody(event events.LeaveResolvedEvent) string {
	var b strings.Builder
	name := event.EmployeeName
	if name == "" {
		name = "colleague"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "Your %s leave from %s to %s has been %s.\n",
		strings.ToLower(event.LeaveType), event.StartDate, event.EndDate, strings.ToLower(event.Outcome))
	if event.RejectionReason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", event.RejectionReason)
	}
	return b.String()
}
