package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/jenkins-mcp/diagnose"
	"github.com/s0up4200/jenkins-mcp/jenkins"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test connection and credentials against Jenkins",
	Long:  `Request the Jenkins root page and the whoAmI endpoint to confirm the server is reachable and the credentials are accepted.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "overall timeout for the check")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	fmt.Printf("Testing connection to Jenkins at %s...\n", jenkinsClient.BaseURL())

	var (
		ping *jenkins.Response
		who  *jenkins.WhoAmI
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ping, err = jenkinsClient.Ping(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		who, err = jenkinsClient.WhoAmI(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		fmt.Println(diagnose.Classify(err).Format(true))
		return fmt.Errorf("connection check failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("- Response code: %d\n", ping.StatusCode)
	fmt.Printf("- User: %s\n", who.Name)
	fmt.Printf("- Authenticated: %t\n", who.Authenticated && !who.Anonymous)
	if len(who.Authorities) > 0 {
		fmt.Printf("- Authorities: %d\n", len(who.Authorities))
	}

	return nil
}
