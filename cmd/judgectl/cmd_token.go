package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/config"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an HS256 bearer token signed with JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "judgectl", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", crypto.DefaultTokenTTL, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	svc := crypto.NewJWTService(config.NewJwtConfig())
	now := time.Now()
	tok, err := svc.GenerateTokenHMAC(cmd.Context(), "HS256", map[string]interface{}{
		"sub": tokenSubject,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
