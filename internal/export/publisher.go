package export

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/config"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
)

// Publisher uploads exported files to the results host via SSH/SCP
type Publisher struct {
	publishURL string
	keyPath    string
	retry      config.RetryConfig
	logger     zerolog.Logger
	client     *ssh.Client
}

// NewPublisher creates a publisher for the configured PUBLISH_URL destination
func NewPublisher(env *app.Context) *Publisher {
	return &Publisher{
		publishURL: env.Config.PublishURL,
		keyPath:    env.Config.PublishKeyFile,
		retry:      config.DefaultResilienceConfig.Publish,
		logger:     env.Named("publisher"),
	}
}

// parsePublishURL parses a publish destination in format: user@host:path
func parsePublishURL(url string) (user, host, remotePath string, err error) {
	if url == "" {
		return "", "", "", fmt.Errorf("publish URL is empty")
	}

	parts := strings.SplitN(url, "@", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("invalid publish URL format: expected user@host:path")
	}
	user = parts[0]

	hostParts := strings.SplitN(parts[1], ":", 2)
	if len(hostParts) != 2 {
		return "", "", "", fmt.Errorf("invalid publish URL format: expected user@host:path")
	}
	host = hostParts[0]
	remotePath = hostParts[1]

	return user, host, remotePath, nil
}

// Connect establishes the SSH connection
func (p *Publisher) Connect() error {
	if p.client != nil {
		return nil
	}

	user, host, _, err := parsePublishURL(p.publishURL)
	if err != nil {
		return fmt.Errorf("failed to parse publish URL: %w", err)
	}

	keyData, err := os.ReadFile(p.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", p.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	sshConfig := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // In production, use proper host key verification
		Timeout:         30 * time.Second,
	}

	p.client, err = ssh.Dial("tcp", net.JoinHostPort(host, "22"), sshConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", host, err)
	}

	p.logger.Info().
		Str("host", host).
		Str("user", user).
		Msg("Connected to publish host")

	return nil
}

// Disconnect closes the SSH connection
func (p *Publisher) Disconnect() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

// Publish uploads a local file to the configured destination, retrying
// transient failures under the publish resilience policy. A failed attempt
// drops the connection so the next attempt redials.
func (p *Publisher) Publish(ctx context.Context, localPath string) error {
	filename := path.Base(localPath)
	return p.retry.Run(ctx, p.logger, fmt.Sprintf("publish of %s", filename), func(ctx context.Context) error {
		if err := p.upload(ctx, localPath, filename); err != nil {
			_ = p.Disconnect()
			return err
		}
		return nil
	})
}

// upload pushes one file through an SCP session on the current connection
func (p *Publisher) upload(ctx context.Context, localPath, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Connect(); err != nil {
		return err
	}

	_, _, remotePath, err := parsePublishURL(p.publishURL)
	if err != nil {
		return fmt.Errorf("failed to parse publish URL: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := p.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	remoteFile := path.Join(remotePath, filename)
	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFile)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	header := fmt.Sprintf("C0644 %d %s\n", fileInfo.Size(), filename)
	if _, err := stdin.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}
	if _, err := io.Copy(stdin, localFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if _, err := stdin.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}
	stdin.Close()

	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	p.logger.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFile).
		Int64("size", fileInfo.Size()).
		Msg("Published file")

	return nil
}
