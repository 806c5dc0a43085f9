package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fiori/inventory-api/internal/core/service"
	"github.com/fiori/inventory-api/pkg/logger"
)

var (
	// Passwd flags
	newPassword string
)

// passwdCmd sets the password of an existing user
var passwdCmd = &cobra.Command{
	Use:   "passwd <user-id>",
	Short: "Set the password of a user",
	Long: `Replace the stored password hash of an existing user. This is the only way
to change the administrator's password, which the API never resets.

The password is read from --password or, when the flag is absent, from the
first line of standard input.

Examples:
  inventory passwd 1 --password 's3cret!'
  echo 's3cret!' | inventory passwd 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || id == 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		password := newPassword
		if password == "" {
			if password, err = readPassword(cmd.InOrStdin()); err != nil {
				return err
			}
		}
		return runPasswd(cmd.Context(), uint(id), password)
	},
}

func init() {
	passwdCmd.Flags().StringVarP(&newPassword, "password", "p", "", "New password (read from stdin when omitted)")
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("empty password")
	}
	return line, nil
}

func runPasswd(ctx context.Context, userID uint, password string) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	auth := service.NewAuthService(a.store.Users(), a.store.Permissions(), nil, nil, logger.Component("auth"))
	if err := auth.SetCredential(ctx, userID, password); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "password of user %d updated\n", userID)
	return nil
}
