package backend

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"
	"golang.org/x/crypto/ssh"
)

// SSHConfig names the connection and auth material for an SSH backend, the
// Go-native equivalent of the original's address/user/identity-file trio.
type SSHConfig struct {
	Address         string
	User            string
	SSHIdentityFile string
	HostKeyCallback ssh.HostKeyCallback
}

// SSH fetches remote files by executing `cat` over an SSH session, reading
// the private key named in its SSHConfig once at construction time.
type SSH struct {
	cfg    SSHConfig
	signer ssh.Signer
}

// NewSSH loads cfg's identity file and returns a backend ready to dial.
func NewSSH(cfg SSHConfig) (*SSH, error) {
	key, err := os.ReadFile(cfg.SSHIdentityFile)
	if err != nil {
		return nil, fmt.Errorf("backend.NewSSH: could not read %q: %w", cfg.SSHIdentityFile, err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("backend.NewSSH: could not parse private key: %w", err)
	}
	if cfg.HostKeyCallback == nil {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}
	return &SSH{cfg: cfg, signer: signer}, nil
}

func (b *SSH) Name() string { return "ssh" }

func (b *SSH) dial() (*ssh.Client, error) {
	clientCfg := &ssh.ClientConfig{
		User:            b.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(b.signer)},
		HostKeyCallback: b.cfg.HostKeyCallback,
	}
	return ssh.Dial("tcp", b.cfg.Address, clientCfg)
}

// Fetch runs `cat <remotePath>` over a fresh SSH session and returns
// stdout. remotePath is shell-escaped so paths with spaces or quotes
// round-trip correctly.
func (b *SSH) Fetch(_ context.Context, remotePath string) ([]byte, error) {
	client, err := b.dial()
	if err != nil {
		return nil, fmt.Errorf("backend.SSH.Fetch: dial %s: %w", b.cfg.Address, err)
	}
	defer client.Close()
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("backend.SSH.Fetch: session: %w", err)
	}
	defer session.Close()
	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr
	cmd := "cat " + shellescape.Quote(remotePath)
	if err := session.Run(cmd); err != nil {
		return nil, fmt.Errorf("backend.SSH.Fetch: %s: %w: %s", cmd, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// List runs `find <folderPath>` over SSH and filters its output to entries
// whose name ends with one of extensions.
func (b *SSH) List(_ context.Context, folderPath string, extensions []string) ([]string, error) {
	client, err := b.dial()
	if err != nil {
		return nil, fmt.Errorf("backend.SSH.List: dial %s: %w", b.cfg.Address, err)
	}
	defer client.Close()
	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("backend.SSH.List: session: %w", err)
	}
	defer session.Close()
	var stdout bytes.Buffer
	session.Stdout = &stdout
	cmd := "find " + shellescape.Quote(folderPath)
	if err := session.Run(cmd); err != nil {
		return nil, fmt.Errorf("backend.SSH.List: %s: %w", cmd, err)
	}
	var out []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line == "" || !hasSupportedExtension(line, extensions) {
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(line, folderPath), "/")
		out = append(out, rel)
	}
	return out, nil
}
