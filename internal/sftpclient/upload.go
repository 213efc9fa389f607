// Package sftpclient uploads generated artifacts (approved birthday lists,
// monthly contact books) to the archive drop.
package sftpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool

	// Compress brotli-encodes the blob and appends ".br" to the remote name.
	Compress bool
}

// Archiver is the narrow edge the approval flow depends on.
type Archiver interface {
	Upload(ctx context.Context, remoteName string, content []byte) error
}

type Drop struct {
	Cfg Config
}

// Upload writes one in-memory artifact to the drop, creating the remote
// directory if needed.
func (d Drop) Upload(ctx context.Context, remoteName string, content []byte) error {
	cfg := d.Cfg
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	var src io.Reader = bytes.NewReader(content)
	if cfg.Compress {
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("sftp: compress: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("sftp: compress: %w", err)
		}
		src = &buf
		remoteName += ".br"
	}

	// TODO: replace with a known_hosts callback once the drop host gets a
	// stable key.
	if !cfg.InsecureIgnoreHostKey {
		return fmt.Errorf("sftp: strict host key checking is not supported yet, set SFTP_INSECURE_IGNORE_HOSTKEY=true")
	}
	cb := ssh.InsecureIgnoreHostKey()

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		return fmt.Errorf("sftp: new client: %w", err)
	}
	defer cli.Close()

	if err := cli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", cfg.RemoteDir, err)
	}

	remotePath := path.Join(cfg.RemoteDir, remoteName)
	dst, err := cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}
	return nil
}
