package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the driver-specific connection string.
// An explicit dsn wins; otherwise MySQL DSNs are assembled from the discrete
// fields and SQLite uses the file path.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if c.Driver == DriverSQLite {
		return c.Path
	}

	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	// Timestamps are naive server-local values; parse them back in the same zone.
	mc.ParseTime = true
	mc.Loc = resolveLocation(c.Loc)
	// RowsAffected counts matched rows, so re-ending a session is not a miss.
	mc.ClientFoundRows = true

	params := map[string]string{}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params[k] = v
		}
	}
	if _, ok := params["charset"]; !ok && c.Charset != "" {
		params["charset"] = c.Charset
	}
	if len(params) > 0 {
		mc.Params = params
	}
	return mc.FormatDSN()
}

func resolveLocation(raw string) *time.Location {
	name := strings.TrimSpace(raw)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// URLValue returns a redis:// or rediss:// URL for go-redis ParseURL.
func (c RedisRuntimeConfig) URLValue() string {
	if u := normalizeRedisRawURL(c.URL); u != "" {
		return u
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = neturl.UserPassword(c.Username, c.Password)
		} else {
			u.User = neturl.User(c.Username)
		}
	} else if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
