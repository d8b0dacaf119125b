package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// UploadAttachment uploads a local file as an attachment on the task.
func (c *Client) UploadAttachment(ctx context.Context, taskID, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	path := "/api/tasks/" + taskID + "/attachments"
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), nil)
}

// DeleteAttachment removes an attachment from the task.
func (c *Client) DeleteAttachment(ctx context.Context, taskID, attachmentID string) error {
	path := "/api/tasks/" + taskID + "/attachments/" + attachmentID
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

// AttachmentURL returns the direct download link for an attachment.
func (c *Client) AttachmentURL(taskID, attachmentID string) string {
	return c.baseURL + "/api/tasks/" + taskID + "/attachments/" + attachmentID
}

// DownloadAttachment writes the attachment's bytes to dst.
func (c *Client) DownloadAttachment(ctx context.Context, taskID, attachmentID, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AttachmentURL(taskID, attachmentID), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}
