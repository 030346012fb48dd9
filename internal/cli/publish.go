package cli

import (
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/export"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a file to the configured publish destination",
	Long: `Uploads a file over SSH/SCP to the PUBLISH_URL destination
(user@host:path), authenticating with the PUBLISH_KEY_FILE private key.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	if _, err := env.Config.RequirePublishURL(); err != nil {
		return err
	}

	p := export.NewPublisher(env)
	defer p.Disconnect()

	if err := p.Publish(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Printf("Published %s to %s\n", args[0], env.Config.PublishURL)
	return nil
}
