package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramToken string

	// chats allowed to issue change instructions without logging in
	AdminChatIDs map[int64]bool

	// static credential for /login; the historical default is admin/admin
	AdminUser     string
	AdminPassword string

	HTTPAddr string
	DbName   string

	// empty means the local deterministic authority
	AuthorityURL string
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN"))
	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_TOKEN is empty")
	}

	c.AdminChatIDs = parseChatIDs(os.Getenv("ADMIN_CHAT_IDS"))

	c.AdminUser = strings.TrimSpace(os.Getenv("ADMIN_USER"))
	if c.AdminUser == "" {
		c.AdminUser = "admin"
	}
	c.AdminPassword = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if c.AdminPassword == "" {
		c.AdminPassword = "admin"
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("WEBSERVER_ADDRESS"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.DbName = strings.TrimSpace(os.Getenv("DB_NAME"))

	c.AuthorityURL = strings.TrimSpace(os.Getenv("AUTHORITY_URL"))

	return c, nil
}

func parseChatIDs(raw string) map[int64]bool {
	m := map[int64]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		m[v] = true
	}
	return m
}
