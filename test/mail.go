package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// MailSMTPPort is the SMTP port used by the mail test container.
	MailSMTPPort = "1025"
	// MailAPIPort is the API port used by the mail test container.
	MailAPIPort = "8025"
)

// StartMailService starts a MailHog container for testing email
// functionality. It returns the container and any error encountered during
// startup.
func StartMailService(ctx context.Context) (testcontainers.Container, error) {
	smtpPort := fmt.Sprintf("%s/tcp", MailSMTPPort)
	apiPort := fmt.Sprintf("%s/tcp", MailAPIPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mailhog/mailhog",
				ExposedPorts: []string{smtpPort, apiPort},
				WaitingFor:   wait.ForListeningPort(MailSMTPPort),
			},
			Started: true,
		})
}

// MailMessageCount queries the MailHog API of the given container and
// returns the number of captured messages.
func MailMessageCount(ctx context.Context, container testcontainers.Container) (int, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return 0, err
	}
	port, err := container.MappedPort(ctx, nat.Port(MailAPIPort))
	if err != nil {
		return 0, err
	}
	resp, err := http.Get(fmt.Sprintf("http://%s:%s/api/v2/messages", host, port.Port()))
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var body struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Total, nil
}
