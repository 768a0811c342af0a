package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/caseops/casectl/internal/state"
	"github.com/caseops/casectl/internal/utils"
	"github.com/caseops/casectl/pkg/api"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "casectl",
	Short: "A terminal console for case-record backends.",
	Long: `casectl talks to a case-record management backend: browse and edit
records, pull cached dossiers, export lists and tail the audit log, right
from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.casectl.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("api", "a", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "API token (overrides config and stored session)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".casectl")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.casectl.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("api.url", "http://127.0.0.1:8080")
	viper.SetDefault("api.token", "")
	viper.SetDefault("auth.username", "")
	viper.SetDefault("auth.password", "")
	home, _ := homedir.Dir()
	viper.SetDefault("state.path", home+"/.casectl.sqlite")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// openState opens the client-state store. A nil store is fine: every state
// read then falls back to defaults, matching the non-fatal-storage policy.
func openState() *state.Store {
	st, err := state.Open(viper.GetString("state.path"))
	if err != nil {
		utils.Log.Debug("state store unavailable: ", err)
		return nil
	}
	return st
}

// newClient builds the shared API client, preferring an explicit token flag
// or config over the stored session.
func newClient() *api.Client {
	baseURL, _ := rootCmd.PersistentFlags().GetString("api")
	if baseURL == "" {
		baseURL = viper.GetString("api.url")
	}
	token, _ := rootCmd.PersistentFlags().GetString("token")
	if token == "" {
		token = viper.GetString("api.token")
	}

	role := ""
	st := openState()
	defer st.Close()
	if sess := st.LoadSession(); sess != nil {
		if token == "" {
			token = sess.Token
		}
		role = sessionRole(sess)
	}

	client := api.NewClient(baseURL, token)
	client.Role = role
	return client
}
