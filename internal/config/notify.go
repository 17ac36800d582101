package config

import (
	"os"
	"time"
)

// MailSettings configures outbound SMTP. AdminEmail may hold several
// comma-separated recipients.
type MailSettings struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	SenderName   string
	AdminEmail   string
	EnableSSL    bool
	SiteBaseURL  string
	Timeout      time.Duration
}

func LoadMailSettings() MailSettings {
	return MailSettings{
		SMTPServer:   getenv("SMTP_SERVER", ""),
		SMTPPort:     atoi(os.Getenv("SMTP_PORT"), 587),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SenderEmail:  getenv("SMTP_SENDER_EMAIL", ""),
		SenderName:   getenv("SMTP_SENDER_NAME", "Imperial VIP Transfer"),
		AdminEmail:   getenv("ADMIN_EMAIL", ""),
		EnableSSL:    parseBool(os.Getenv("SMTP_ENABLE_SSL"), true),
		SiteBaseURL:  getenv("SITE_BASE_URL", ""),
		Timeout:      parseDur(os.Getenv("SMTP_TIMEOUT"), 30*time.Second),
	}
}

// WhatsAppSettings configures the Cloud API document channel.
type WhatsAppSettings struct {
	AccessToken    string
	PhoneNumberID  string
	RecipientPhone string
	Enabled        bool
	APIVersion     string
	BaseURL        string
	Timeout        time.Duration
}

func LoadWhatsAppSettings() WhatsAppSettings {
	return WhatsAppSettings{
		AccessToken:    getenv("WHATSAPP_ACCESS_TOKEN", ""),
		PhoneNumberID:  getenv("WHATSAPP_PHONE_NUMBER_ID", ""),
		RecipientPhone: getenv("WHATSAPP_RECIPIENT_PHONE", ""),
		Enabled:        parseBool(os.Getenv("WHATSAPP_ENABLED"), false),
		APIVersion:     getenv("WHATSAPP_API_VERSION", "v22.0"),
		BaseURL:        getenv("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
		Timeout:        parseDur(os.Getenv("WHATSAPP_TIMEOUT"), 30*time.Second),
	}
}

// Configured reports whether the channel is enabled and fully credentialed.
func (s WhatsAppSettings) Configured() bool {
	return s.Enabled && s.AccessToken != "" && s.PhoneNumberID != "" && s.RecipientPhone != ""
}

// QueueConfig points the notification log publisher at RabbitMQ. An empty URL
// means attempts are written straight to the log file.
type QueueConfig struct {
	URL       string
	QueueName string
}

func LoadQueueConfig() QueueConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return QueueConfig{
		URL:       url,
		QueueName: getenv("NOTIFY_LOG_QUEUE", "notification.attempts"),
	}
}
