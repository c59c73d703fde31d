package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/handler/http/response"
)

const ScannerKeyHeader = "X-Scanner-Key"

// ScannerKey authenticates gate RFID readers by a shared key.
func ScannerKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(ScannerKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				response.HandleError(w, attendance.ErrInvalidScannerKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
