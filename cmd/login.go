package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/internal/state"
	"github.com/caseops/casectl/pkg/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = viper.GetString("auth.username")
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = viper.GetString("auth.password")
		}
		if username == "" || password == "" {
			return fmt.Errorf("username and password are required (flags or auth.* config keys)")
		}

		client := api.NewClient(viper.GetString("api.url"), "")
		sess, err := client.Login(context.Background(), username, password)
		if err != nil {
			return err
		}

		userJSON, err := json.Marshal(sess.User)
		if err != nil {
			return err
		}
		st := openState()
		defer st.Close()
		st.SaveSession(&state.Session{
			Token:     sess.Token,
			User:      userJSON,
			ExpiresAt: sess.ExpiresAt,
		})

		fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, sess.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := openState()
		defer st.Close()
		st.ClearSession()
		fmt.Println("Logged out")
		return nil
	},
}

// sessionRole digs the role out of the stored user profile.
func sessionRole(sess *state.Session) string {
	return gjson.GetBytes(sess.User, "role").String()
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Account username")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
