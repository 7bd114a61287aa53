package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jask/rushcargo/internal/secrets"
)

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage the stored postgres password",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store the postgres password (read from the terminal or stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			if pw == "" {
				return fmt.Errorf("password required")
			}
			if err := secrets.SavePassword(pw); err != nil {
				return err
			}
			cmd.Println("password stored")
			return nil
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored postgres password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.ClearPassword(); err != nil {
				return err
			}
			cmd.Println("password cleared")
			return nil
		},
	})
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("Password: ")
		b, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
