package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the bot process.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for the ops HTTP server
	Addr string
	// Port is the binding port for the ops HTTP server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where genkabot stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the bot
	Version string

	// BotToken is the Telegram bot API token. Required.
	BotToken string
	// AdminChatID is the chat that receives finished reports. Required.
	AdminChatID int64
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads the Telegram credentials from environment variables.
// GENKABOT_* keys take precedence over the legacy BOT_TOKEN/ADMIN_CHAT_ID
// names used by earlier deployments.
func (p *Profile) FromEnv() {
	if p.BotToken == "" {
		p.BotToken = getEnvOrDefault("GENKABOT_BOT_TOKEN", os.Getenv("BOT_TOKEN"))
	}
	if p.AdminChatID == 0 {
		raw := getEnvOrDefault("GENKABOT_ADMIN_CHAT_ID", os.Getenv("ADMIN_CHAT_ID"))
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				p.AdminChatID = id
			}
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and rejects it when a required value is
// missing. The bot cannot start without a Telegram token and an admin chat.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.BotToken == "" {
		return errors.New("bot token is required (set GENKABOT_BOT_TOKEN)")
	}
	if p.AdminChatID == 0 {
		return errors.New("admin chat id is required (set GENKABOT_ADMIN_CHAT_ID)")
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("reports_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	return nil
}
