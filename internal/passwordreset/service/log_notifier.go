package service

import (
	"context"
	"log/slog"
)

// LogNotifier writes issued reset tokens to the application log. It is the
// delivery channel for deployments without an outbound mail or SMS provider;
// an operator relays the token to the account owner out of band.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier instance.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyResetRequested logs the plain token for the given email address.
func (n *LogNotifier) NotifyResetRequested(_ context.Context, email, token string) error {
	n.logger.Info("password reset token issued",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}
