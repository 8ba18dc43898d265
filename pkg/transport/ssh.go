package transport

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// SSHExecutor executes commands over SSH, one client per switch, one session
// per command (NX-OS closes the channel after each exec). Clients are opened
// lazily on first use and reused for the rest of the invocation.
type SSHExecutor struct {
	User     string
	Password string
	Timeout  time.Duration

	mu      sync.Mutex
	clients map[string]*ssh.Client
}

// NewSSHExecutor creates an executor with the given default credentials.
// A switch given as "user@host" overrides the default user for that host.
func NewSSHExecutor(user, password string) *SSHExecutor {
	return &SSHExecutor{
		User:     user,
		Password: password,
		Timeout:  30 * time.Second,
		clients:  make(map[string]*ssh.Client),
	}
}

// Execute runs a command on the switch and returns its filtered output.
func (e *SSHExecutor) Execute(ctx context.Context, sw, command string) (string, error) {
	client, err := e.client(ctx, sw)
	if err != nil {
		return "", util.NewTransportError(sw, command, err)
	}

	session, err := client.NewSession()
	if err != nil {
		return "", util.NewTransportError(sw, command, err)
	}
	defer session.Close()

	util.WithSwitch(sw).Debugf("exec: %s", command)
	output, err := session.CombinedOutput(command)
	if err != nil {
		return "", util.NewTransportError(sw, command, err)
	}

	return FilterNoise(string(output)), nil
}

// Close closes all open SSH clients.
func (e *SSHExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for sw, client := range e.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing SSH client for %s: %w", sw, err)
		}
	}
	e.clients = make(map[string]*ssh.Client)
	return firstErr
}

func (e *SSHExecutor) client(ctx context.Context, sw string) (*ssh.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if client, ok := e.clients[sw]; ok {
		return client, nil
	}

	user, host := splitConnString(sw, e.User)
	if user == "" {
		return nil, fmt.Errorf("no SSH user for %s (use -u or user@host)", sw)
	}

	config := &ssh.ClientConfig{
		User:    user,
		Auth:    []ssh.AuthMethod{ssh.Password(e.Password)},
		Timeout: e.Timeout,
		// Operator tooling on a management network; host keys are not pinned.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	addr := host
	if _, _, err := net.SplitHostPort(host); err != nil {
		addr = net.JoinHostPort(host, "22")
	}

	dialer := net.Dialer{Timeout: e.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SSH handshake %s: %w", addr, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)
	e.clients[sw] = client
	util.WithSwitch(sw).Debug("SSH connected")
	return client, nil
}

// splitConnString splits an optional "user@host" form, falling back to the
// default user when no prefix is present.
func splitConnString(sw, defaultUser string) (user, host string) {
	if i := strings.IndexByte(sw, '@'); i >= 0 {
		return sw[:i], sw[i+1:]
	}
	return defaultUser, sw
}
