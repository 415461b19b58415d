package backend

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
)

// ProgressFunc receives upload progress events: bytes sent so far and the
// total size, or -1 when the total is unknown.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// upload streams a multipart form with one file field plus optional extra
// fields. The body is piped so large audio files never sit in memory whole.
func (c *Client) upload(ctx context.Context, path, field, filename string, file io.Reader, size int64, extra map[string]string, progress ProgressFunc, out any) error {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, &progressReader{r: file, total: size, progress: progress}); err != nil {
			pw.CloseWithError(err)
			return
		}
		for key, value := range extra {
			if err := writer.WriteField(key, value); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), pr)
	if err != nil {
		// Unblock the writer goroutine; it is parked on the pipe.
		pr.CloseWithError(err)
		return apperrors.Wrap(apperrors.ErrCodeInternal, "build upload request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := c.authorize(ctx, req, false); err != nil {
		pr.CloseWithError(err)
		return err
	}

	return c.execute(c.uploads, req, out)
}
