package rombuild

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/term"
)

// releaseFiles lists the uploadable files in a release directory, sorted for
// deterministic processing.
func releaseFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read release directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// uploadMenu offers the three upload destinations and dispatches. Upload
// problems are returned so the caller can log them; they never abort a run.
func uploadMenu(ctx context.Context, cfg *Config, runner Runner, dir string) error {
	files, err := releaseFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("nothing to upload in %s", dir)
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Found %d file(s) in %s\n", len(files), dir)

	dest, err := promptMenu("Select upload destination:", []string{"drive", "filehost", "scp"}, func(id string) string {
		switch id {
		case "drive":
			return "cloud drive bucket"
		case "filehost":
			return "file hosting service, returns links"
		default:
			return "secure copy to a remote host"
		}
	}, stdinReader)
	if err != nil {
		return err
	}

	switch dest {
	case "drive":
		return uploadToDrive(ctx, cfg, filepath.Base(dir), files)
	case "filehost":
		return uploadToFileHost(cfg, files)
	default:
		return uploadViaScp(runner, files)
	}
}

// uploadToDrive puts every file under a per-release key prefix, then reports
// bucket usage.
func uploadToDrive(ctx context.Context, cfg *Config, prefix string, files []string) error {
	drive, err := NewDriveClient(cfg)
	if err != nil {
		return err
	}

	for _, file := range files {
		key := prefix + "/" + filepath.Base(file)
		colArrow.Print("-> ")
		colSuccess.Printf("Uploading to drive: %s\n", key)
		if err := drive.UploadLocalFile(ctx, key, file); err != nil {
			return fmt.Errorf("failed to upload %s: %w", filepath.Base(file), err)
		}
	}

	objects, err := drive.ListObjects(ctx, "")
	if err == nil {
		var totalSize int64
		for _, obj := range objects {
			totalSize += obj.Size
		}
		colArrow.Print("-> ")
		colSuccess.Printf("Drive storage used: ")
		colNote.Printf("%s\n", humanReadableSize(totalSize))
	}
	return nil
}

// fileHostResponse is the small JSON body the hosting service answers with.
type fileHostResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
	Message string `json:"message"`
}

// uploadToFileHost POSTs each file as multipart form data and prints the
// retrievable link from the JSON response.
func uploadToFileHost(cfg *Config, files []string) error {
	endpoint := cfg.Values["FILEHOST_URL"]
	if endpoint == "" {
		return fmt.Errorf("FILEHOST_URL is not set in the configuration")
	}

	token := cfg.Values["FILEHOST_TOKEN"]
	if token == "" {
		fmt.Fprint(os.Stderr, "File host API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading API token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	client := newHTTPClient()
	for _, file := range files {
		link, err := postFile(client, endpoint, token, file)
		if err != nil {
			return fmt.Errorf("upload of %s failed: %w", filepath.Base(file), err)
		}
		colArrow.Print("-> ")
		colSuccess.Printf("%s: ", filepath.Base(file))
		colNote.Printf("%s\n", link)
	}
	return nil
}

func postFile(client *http.Client, endpoint, token, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(file))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequest(http.MethodPost, endpoint, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed fileHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("unexpected response (%s): %w", resp.Status, err)
	}
	if !parsed.Success {
		return "", fmt.Errorf("service refused the upload: %s", parsed.Message)
	}
	return parsed.Link, nil
}

// uploadViaScp copies the files to a user-supplied host over a secure
// transfer session. scp handles its own authentication on the TTY.
func uploadViaScp(runner Runner, files []string) error {
	readLine := func(prompt string) (string, error) {
		fmt.Print(prompt)
		line, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	host, err := readLine("Remote host: ")
	if err != nil || host == "" {
		return fmt.Errorf("no remote host given")
	}
	user, err := readLine("Remote user: ")
	if err != nil || user == "" {
		return fmt.Errorf("no remote user given")
	}
	remotePath, err := readLine("Remote path: ")
	if err != nil || remotePath == "" {
		return fmt.Errorf("no remote path given")
	}

	args := append([]string{}, files...)
	args = append(args, fmt.Sprintf("%s@%s:%s", user, host, remotePath))
	colArrow.Print("-> ")
	colSuccess.Printf("Copying %d file(s) to %s@%s:%s\n", len(files), user, host, remotePath)
	if err := runner.Run("scp", args, ""); err != nil {
		return fmt.Errorf("scp failed: %w", err)
	}
	return nil
}
