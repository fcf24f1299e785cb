package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hnguyen/codeassist/internal/credential"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the OpenAI API key in the system keyring",
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key (read from stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "API key: ")

		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading key: %w", err)
		}

		key := strings.TrimSpace(line)
		if key == "" {
			return fmt.Errorf("no key provided")
		}

		if err := credential.Set(credential.APIKeyName, key); err != nil {
			return err
		}
		fmt.Println("API key stored.")
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(credential.APIKeyName); err != nil {
			return err
		}
		fmt.Println("API key removed.")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
}
