package handlers

import (
	"goalTracker/internal/handlers/dto"
	"mime"
	"net/http"
	"time"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// parseDateParam читает query-параметр date (YYYY-MM-DD).
// Пустое значение означает сегодня.
func parseDateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(dto.DateLayout, raw)
}
