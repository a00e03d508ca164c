package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// Brotli compresses response bodies for clients that accept br.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")
		bw := &brotliWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		if bw.enc == nil {
			return
		}
		bw.enc.Close()
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.TrimSpace(coding) != "br" {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

// brotliWriter starts the compressed stream on the first body write so that
// empty responses go out without a Content-Encoding header.
type brotliWriter struct {
	gin.ResponseWriter
	enc *brotli.Writer
}

func (w *brotliWriter) Write(b []byte) (int, error) {
	if w.enc == nil {
		h := w.ResponseWriter.Header()
		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
		w.enc = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
	}
	return w.enc.Write(b)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
