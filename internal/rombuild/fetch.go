package rombuild

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"lukechampine.com/blake3"
)

func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Raise the handshake timeout for slow manifest hosts. Default is 10s.
	transport.TLSHandshakeTimeout = 30 * time.Second
	return &http.Client{
		Transport: transport,
		Timeout:   300 * time.Second,
	}
}

// downloadTool is the fetch seam; tests swap it for a stub so no network
// traffic happens.
var downloadTool = downloadFile

// downloadFile fetches url into destFile. curl is preferred, wget is the
// fallback, and a native HTTP client with a progress bar is the last resort,
// so the tool works on hosts with neither downloader installed.
func downloadFile(runner Runner, url, destFile string) error {
	if err := os.MkdirAll(filepath.Dir(destFile), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", destFile, err)
	}

	debugf("Downloading %s -> %s\n", url, destFile)

	if _, err := exec.LookPath("curl"); err == nil {
		if err := runner.Run("curl", []string{"-L", "--fail", "-sS", "-o", destFile, url}, ""); err == nil {
			return nil
		}
		debugf("curl failed, falling back to wget\n")
	} else {
		debugf("curl not found, trying wget\n")
	}

	if _, err := exec.LookPath("wget"); err == nil {
		if err := runner.Run("wget", []string{"-nv", "-O", destFile, url}, ""); err == nil {
			return nil
		}
		debugf("wget failed, falling back to native Go HTTP client\n")
	} else {
		debugf("wget not found, using native Go HTTP client\n")
	}

	out, err := os.Create(destFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", destFile, err)
	}
	defer out.Close()

	resp, err := newHTTPClient().Get(url)
	if err != nil {
		return fmt.Errorf("native http get failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s", resp.Status)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(destFile))
	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		return fmt.Errorf("failed to write to destination file: %w", err)
	}
	return nil
}

// fileBlake3 returns the hex blake3 digest of a file.
func fileBlake3(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
