package doccenter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the document-center site. Calls are best-effort: the
// caller fires them off the request path and only logs failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type ensureFolderRequest struct {
	Path string `json:"path"`
}

// EnsureFolder asks the document center to create the library folder path a
// saved row points at, if it does not exist yet.
func (c *Client) EnsureFolder(ctx context.Context, libraryPath string) error {
	payload := ensureFolderRequest{Path: libraryPath}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/internal/folders/ensure", c.baseURL)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf(
			"doc center ensure-folder error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	return nil
}

type notifyMailRequest struct {
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
	FormURL    string `json:"formUrl"`
}

// NotifySummaryMail asks the document center's mailer to send the summary
// link to the collected recipients.
func (c *Client) NotifySummaryMail(ctx context.Context, recipients, subject, formURL string) error {
	payload := notifyMailRequest{
		Recipients: recipients,
		Subject:    subject,
		FormURL:    formURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/internal/mail/summary", c.baseURL)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf(
			"doc center mail error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	return nil
}
