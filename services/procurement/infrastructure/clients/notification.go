package clients

import "context"

// NotificationClient implements repositories.Notifier against the email
// notification service.
type NotificationClient struct {
	httpClient
}

// NewNotificationClient returns a notification façade rooted at baseURL.
func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{newHTTPClient(baseURL)}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send delivers one message. Failures are returned to the caller; this façade
// never swallows them.
func (c *NotificationClient) Send(ctx context.Context, to, subject, body string) error {
	return c.postJSON(ctx, "/email/send", sendRequest{To: to, Subject: subject, Body: body}, nil)
}
