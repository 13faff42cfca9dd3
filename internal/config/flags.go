package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

var (
	errAddressFormat = errors.New("need address in a form `host:port`")
	errAddressPort   = errors.New("port must be in range 1..65535")
	errAddressHost   = errors.New("host must be localhost or an IP address")
)

// NetAddress is a host:port pair usable as a [flag.Value].
type NetAddress struct {
	Host string
	Port int
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port", ":port" and "[ipv6]:port". Hosts other than
// localhost must be literal IPs.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errAddressFormat, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return errAddressPort
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errAddressHost
	}

	a.Host, a.Port = host, port
	return nil
}

// ParseFlags reads the server command line (without the program name).
// Unset flags leave zero values so that lower layers are not overridden.
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg         StructuredConfig
		httpAddress NetAddress
		grpcAddress NetAddress
	)

	fs := flag.NewFlagSet("six-notes-server", flag.ContinueOnError)
	fs.Var(&httpAddress, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC health listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "JWT signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "JWT issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "JWT lifetime, e.g. 720h")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "HMAC key for the HashSHA256 header")
	fs.IntVar(&cfg.App.MaxContentBytes, "max-content-bytes", 0, "per-record content quota in bytes")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout, e.g. 30s")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = httpAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	return &cfg, nil
}
