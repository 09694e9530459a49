package httpapi

import (
	"errors"
	"net/http"

	blobPort "contenthub/internal/ports/blob"

	"github.com/gin-gonic/gin"
)

// formFile opens the multipart file under field. A missing file, or a
// request that is not multipart at all, yields a nil File and a no-op closer.
func formFile(c *gin.Context, field string) (*blobPort.File, func(), error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &blobPort.File{Filename: header.Filename, Reader: f}, func() { _ = f.Close() }, nil
}
