package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds the values of the configuration flags registered on a
// command's flag set.
type Flags struct {
	cfg           StructuredConfig
	serverAddress NetAddress
}

// RegisterFlags registers the configuration flags on fs and returns the
// holder that receives their values once fs is parsed.
//
// Flags:
//
//	-a/--address         local host surface address in format [host]:[port]
//	-d/--dsn             SQLite DSN of the local store
//	-u/--api-url         remote API base URL
//	--token              remote API bearer token
//	--request-timeout    remote API request timeout (e.g. "10s")
//	--cache-version      cache generation tag
//	--sync-interval      periodic drain interval, 0 disables
//	--probe-interval     connectivity probe interval, 0 disables
//	--offline            start in the offline state
//	--log-file           client log file path
//	-c/--config          JSON or TOML config file path
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.serverAddress, "address", "a", "Local host surface address host:port")
	fs.StringVarP(&f.cfg.Storage.DB.DSN, "dsn", "d", "", "SQLite DSN of the local store")
	fs.StringVarP(&f.cfg.Adapter.BaseURL, "api-url", "u", "", "Remote API base URL")
	fs.StringVar(&f.cfg.Adapter.Token, "token", "", "Remote API bearer token")
	fs.DurationVar(&f.cfg.Adapter.RequestTimeout, "request-timeout", 0, "Remote API request timeout (e.g. 10s)")
	fs.StringVar(&f.cfg.Interceptor.CacheVersion, "cache-version", "", "Cache generation tag")
	fs.DurationVar(&f.cfg.Workers.SyncInterval, "sync-interval", 0, "Periodic drain interval, 0 disables")
	fs.DurationVar(&f.cfg.Connectivity.ProbeInterval, "probe-interval", 0, "Connectivity probe interval, 0 disables")
	fs.BoolVar(&f.cfg.Connectivity.StartOffline, "offline", false, "Start in the offline state")
	fs.StringVar(&f.cfg.App.LogFile, "log-file", "", "Client log file path")
	fs.StringVarP(&f.cfg.FilePath, "config", "c", "", "JSON or TOML config file path")

	return f
}

func (f *Flags) structured() *StructuredConfig {
	cfg := f.cfg
	cfg.Server.HTTPAddress = f.serverAddress.String()
	return &cfg
}

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
