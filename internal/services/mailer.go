package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"wastewatch-backend/internal/config"
	"wastewatch-backend/internal/models"

	"gopkg.in/gomail.v2"
)

// DeliveryResult records the outcome of one agent's notification.
type DeliveryResult struct {
	Agent string
	Err   error
}

// Mailer sends pickup-request emails to the configured field agents over
// SMTP. A nil *Mailer means dispatch is disabled; callers log and move on.
type Mailer struct {
	from    string
	agents  []string
	baseURL string
	send    func(messages ...*gomail.Message) error
}

// NewMailer builds a Mailer from the SMTP settings in cfg.
func NewMailer(cfg config.Config) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	if len(cfg.AgentEmails) == 0 {
		return nil, fmt.Errorf("AGENT_EMAILS is empty, nobody to notify")
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return &Mailer{
		from:    cfg.MailFrom,
		agents:  cfg.AgentEmails,
		baseURL: strings.TrimRight(cfg.ServiceBaseURL, "/"),
		send:    dialer.DialAndSend,
	}, nil
}

// Agents returns the configured recipient list.
func (m *Mailer) Agents() []string {
	return m.agents
}

// DispatchToAll emails every configured agent a pickup request for the given
// bin snapshot. Recipients are attempted independently and concurrently; a
// failed delivery is logged and reported in the result list, never returned
// as an error. Calling this twice for the same bin sends duplicate emails.
func (m *Mailer) DispatchToAll(bin models.Bin) []DeliveryResult {
	log.Printf("📧 Dispatching pickup alerts for %s to %d agents", bin.Name, len(m.agents))

	results := make([]DeliveryResult, len(m.agents))
	var wg sync.WaitGroup
	for i, agent := range m.agents {
		wg.Add(1)
		go func(i int, agent string) {
			defer wg.Done()
			err := m.sendPickupRequest(bin, agent)
			if err != nil {
				log.Printf("❌ Failed to send pickup email to %s: %v", agent, err)
			}
			results[i] = DeliveryResult{Agent: agent, Err: err}
		}(i, agent)
	}
	wg.Wait()

	sent := 0
	for _, result := range results {
		if result.Err == nil {
			sent++
		}
	}
	log.Printf("📤 Dispatch for %s: %d sent, %d failed", bin.Name, sent, len(results)-sent)
	return results
}

func (m *Mailer) sendPickupRequest(bin models.Bin, agent string) error {
	link := m.serviceLink(bin.ID, agent)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", agent)
	msg.SetHeader("Subject", fmt.Sprintf("Waste Pickup Request: %s", bin.Name))
	msg.SetBody("text/html", fmt.Sprintf(`
		<h1>Pickup Request</h1>
		<p>A dispatch request has been made for the bin: <strong>%s</strong> (Level: %d%%)</p>
		<p>After completing the pickup, please click the button below to mark the bin as serviced.</p>
		<br>
		<a href="%s"
		   style="background-color: #16a34a; color: white; padding: 12px 20px; text-decoration: none; border-radius: 5px; font-family: sans-serif;">
		   Mark as Serviced
		</a>
		<br>
		<p><small>If you cannot click the button, please copy and paste this link into your browser: %s</small></p>
	`, bin.Name, bin.Level, link, link))

	return m.send(msg)
}

// serviceLink builds the confirmation URL an agent clicks after a pickup.
// The agent query parameter is how the later confirmation gets attributed.
func (m *Mailer) serviceLink(binID, agent string) string {
	query := url.Values{}
	query.Set("binId", binID)
	query.Set("agent", agent)
	return m.baseURL + "/api/service?" + query.Encode()
}
