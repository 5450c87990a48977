package delivery

import (
	"context"

	"gather.link/configs/configslog"
	"gather.link/models"

	"go.uber.org/zap"
)

// GatewayProvider fans one message out to the concrete channel senders.
type GatewayProvider struct {
	email *EmailSender
	sms   *SMSSender
}

func NewGatewayProvider(email *EmailSender, sms *SMSSender) *GatewayProvider {
	return &GatewayProvider{email: email, sms: sms}
}

// Send attempts each requested channel in turn. Channels fail
// independently; the result is successful when at least one requested
// channel delivered the message.
func (p *GatewayProvider) Send(ctx context.Context, msg Message, channels []models.Channel) Result {
	var res Result
	for _, ch := range channels {
		switch ch {
		case models.ChannelEmail:
			res.Email = p.attempt(ctx, "email", msg, func() (string, error) { return p.email.Send(ctx, msg) })
		case models.ChannelSMS:
			res.SMS = p.attempt(ctx, "sms", msg, func() (string, error) { return p.sms.Send(ctx, msg) })
		}
	}
	res.Success = (res.Email != nil && res.Email.Sent) || (res.SMS != nil && res.SMS.Sent)
	return res
}

func (p *GatewayProvider) attempt(_ context.Context, channel string, msg Message, send func() (string, error)) *ChannelResult {
	id, err := send()
	if err != nil {
		configslog.Log.Warn("Delivery attempt failed",
			zap.String("channel", channel),
			zap.String("guest", msg.GuestName),
			zap.Error(err))
		return &ChannelResult{Sent: false, Error: err.Error()}
	}
	return &ChannelResult{Sent: true, MessageID: id}
}

var _ Provider = (*GatewayProvider)(nil)
